package client

import (
	"time"

	"todoapp"
)

// AuthStatus is the client-local auth flag. It is independent of any
// server-verified session: the server keeps none.
type AuthStatus int

const (
	// AuthUnknown is the initial state before the local store is read.
	AuthUnknown AuthStatus = iota
	// AuthAuthenticated means a user record is present and a login (or a
	// stored token) backs it.
	AuthAuthenticated
	// AuthGuest means no stored user was found at load.
	AuthGuest
	// AuthUnauthenticated means the user explicitly logged out.
	AuthUnauthenticated
	// AuthFailed means the last login attempt was rejected.
	AuthFailed
)

// AuthState pairs the status with the user it refers to, when any.
type AuthState struct {
	Status AuthStatus
	User   *StoredUser
}

// Session owns the auth state and exposes a narrow update interface.
// Views receive it explicitly rather than through shared ambient
// context.
type Session struct {
	api   *API
	store *UserStore
	state AuthState
}

func NewSession(api *API, store *UserStore) *Session {
	return &Session{api: api, store: store, state: AuthState{Status: AuthUnknown}}
}

// State returns the current auth state.
func (s *Session) State() AuthState { return s.state }

// LoadStored resolves Unknown from the local store: a saved user means
// Authenticated (and its token is reused), none means Guest.
func (s *Session) LoadStored() error {
	if s.state.Status != AuthUnknown {
		return nil
	}
	u, err := s.store.Load()
	if err != nil {
		return err
	}
	if u == nil {
		s.state = AuthState{Status: AuthGuest}
		return nil
	}
	s.api.SetToken(u.Token)
	s.state = AuthState{Status: AuthAuthenticated, User: u}
	return nil
}

// Login exchanges credentials for a token. On success the user is
// persisted locally and the state becomes Authenticated; on rejection
// the state becomes Failed and the error carries the server's text.
func (s *Session) Login(creds todoapp.Credentials) error {
	resp, err := s.api.Login(creds)
	if err != nil {
		s.state = AuthState{Status: AuthFailed}
		return err
	}

	u := StoredUser{Username: creds.Username, Token: resp.Token, SavedAt: time.Now().UTC()}
	if err := s.store.Save(u); err != nil {
		return err
	}
	s.api.SetToken(resp.Token)
	s.state = AuthState{Status: AuthAuthenticated, User: &u}
	return nil
}

// Register creates an account and then behaves like Login.
func (s *Session) Register(creds todoapp.Credentials) error {
	resp, err := s.api.Register(creds)
	if err != nil {
		s.state = AuthState{Status: AuthFailed}
		return err
	}

	u := StoredUser{Username: creds.Username, Token: resp.Token, SavedAt: time.Now().UTC()}
	if err := s.store.Save(u); err != nil {
		return err
	}
	s.api.SetToken(resp.Token)
	s.state = AuthState{Status: AuthAuthenticated, User: &u}
	return nil
}

// Logout clears the local user and token. The server call is
// best-effort: logout is a no-op there anyway.
func (s *Session) Logout() error {
	_ = s.api.Logout()
	if err := s.store.Clear(); err != nil {
		return err
	}
	s.api.SetToken("")
	s.state = AuthState{Status: AuthUnauthenticated}
	return nil
}
