package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"todoapp"
	"todoapp/internal/client"
	"todoapp/internal/logger"
)

const defaultBaseURL = "http://localhost:8080/api"

func main() {
	log := logger.Get(logger.InfoLevel)

	baseURL := os.Getenv("TODO_API_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	api := client.NewAPI(baseURL)

	store, err := client.NewUserStore()
	if err != nil {
		log.Fatalw("failed to open user store", "err", err)
	}

	session := client.NewSession(api, store)
	if err := session.LoadStored(); err != nil {
		log.Infow("could not load stored user", "err", err)
	}

	screen := client.NewListScreen(api)
	if err := screen.Refresh(); err != nil {
		log.Fatalw("failed to fetch todos", "err", err, "url", baseURL)
	}

	app := &app{session: session, screen: screen}
	app.printAuth()
	app.printList()

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		if !app.dispatch(scanner.Text()) {
			return
		}
		fmt.Print("> ")
	}
}

type app struct {
	session *client.Session
	screen  *client.ListScreen
}

// dispatch runs one command; it returns false when the user quits.
func (a *app) dispatch(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}
	cmd, args := fields[0], fields[1:]

	var err error
	switch cmd {
	case "quit", "exit":
		return false
	case "help":
		a.printHelp()
	case "list":
		if err = a.screen.Refresh(); err == nil {
			a.printList()
		}
	case "filter":
		err = a.setFilter(args)
	case "add":
		err = a.add(strings.Join(args, " "))
	case "edit":
		err = a.edit(args)
	case "toggle":
		err = a.withID(args, a.screen.Toggle)
	case "rm":
		err = a.withID(args, a.screen.Delete)
	case "login":
		err = a.login(args, a.session.Login)
	case "register":
		err = a.login(args, a.session.Register)
	case "logout":
		if err = a.session.Logout(); err == nil {
			a.printAuth()
		}
	default:
		fmt.Printf("unknown command %q; try help\n", cmd)
	}

	if err != nil {
		fmt.Println("error:", err)
	}
	return true
}

func (a *app) setFilter(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: filter all|active|completed")
	}
	switch args[0] {
	case "all":
		a.screen.SetFilter(client.FilterAll)
	case "active":
		a.screen.SetFilter(client.FilterActive)
	case "completed":
		a.screen.SetFilter(client.FilterCompleted)
	default:
		return fmt.Errorf("usage: filter all|active|completed")
	}
	a.printList()
	return nil
}

func (a *app) add(title string) error {
	if err := a.screen.OpenAdd(); err != nil {
		return err
	}
	form := client.NewTodoForm()
	form.Title = title
	if err := a.screen.Submit(form); err != nil {
		// leave the form open as a browser would; here we just reset
		_ = a.screen.Cancel()
		return err
	}
	a.printList()
	return nil
}

func (a *app) edit(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: edit <id> <new title>")
	}
	if err := a.screen.OpenEdit(args[0]); err != nil {
		return err
	}
	form, err := a.screen.EditDraft()
	if err != nil {
		_ = a.screen.Cancel()
		return err
	}
	form.Title = strings.Join(args[1:], " ")
	if err := a.screen.Submit(form); err != nil {
		_ = a.screen.Cancel()
		return err
	}
	a.printList()
	return nil
}

func (a *app) withID(args []string, fn func(string) error) error {
	if len(args) != 1 {
		return fmt.Errorf("expected exactly one todo id")
	}
	if err := fn(args[0]); err != nil {
		return err
	}
	a.printList()
	return nil
}

func (a *app) login(args []string, fn func(todoapp.Credentials) error) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: login|register <username> <password>")
	}
	err := fn(todoapp.Credentials{Username: args[0], Password: args[1]})
	a.printAuth()
	if err != nil {
		return err
	}
	return a.screen.Refresh()
}

func (a *app) printAuth() {
	switch st := a.session.State(); st.Status {
	case client.AuthAuthenticated:
		fmt.Printf("signed in as %s\n", st.User.Username)
	case client.AuthFailed:
		fmt.Println("login failed")
	case client.AuthUnauthenticated:
		fmt.Println("signed out")
	default:
		fmt.Println("browsing as guest")
	}
}

func (a *app) printList() {
	todos := a.screen.Visible()
	fmt.Printf("-- %s (%d) --\n", a.screen.Filter(), len(todos))
	for _, t := range todos {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		fmt.Printf("[%s] %-8s %s  %s\n", mark, t.Priority, t.ID, t.Title)
	}
}

func (a *app) printHelp() {
	fmt.Println(`commands:
  list                       refetch and show todos
  filter all|active|completed  switch the visible subset
  add <title>                create a todo
  edit <id> <new title>      retitle a todo
  toggle <id>                flip completion
  rm <id>                    delete a todo
  login <user> <pass>        sign in
  register <user> <pass>     create an account
  logout                     sign out
  quit`)
}
