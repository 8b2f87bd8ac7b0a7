package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"todoapp"
	"todoapp/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Domain errors for auth flows.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidToken       = errors.New("invalid token")
)

// AuthService handles user registration and credential verification.
// Passwords are stored as bcrypt hashes and tokens are signed JWTs;
// the prototype this replaces kept plaintext passwords and a constant
// placeholder token.
type AuthService struct {
	users      repository.Users
	signingKey []byte
	tokenTTL   time.Duration
}

func NewAuthService(users repository.Users, signingKey string, tokenTTL time.Duration) *AuthService {
	return &AuthService{users: users, signingKey: []byte(signingKey), tokenTTL: tokenTTL}
}

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// Register hashes the password, creates the user row, and returns a token.
// Username uniqueness is left to the storage constraint.
func (s *AuthService) Register(ctx context.Context, username, password string) (string, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return "", fmt.Errorf("invalid password: %w", err)
	}

	u := todoapp.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return "", err
	}
	return s.issueToken(u.ID)
}

// Login verifies credentials and returns a signed token.
// Unknown username and wrong password are distinct failures.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.issueToken(u.ID)
}

// ParseToken parses a JWT and returns the user id it was issued for.
func (s *AuthService) ParseToken(accessToken string) (string, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}

	return claims.UserID, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: issue a signed JWT for a user
func (s *AuthService) issueToken(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	return token.SignedString(s.signingKey)
}
