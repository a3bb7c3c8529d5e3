// Package main runs the terminal front end. It renders the state the
// client core hands it and forwards the user's intents; every decision
// about screens, validation and submission lives in internal/client.
package main

import (
	"bufio"
	"cmp"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/parshpawar/ezoCodingTask/internal/client/app"
	"github.com/parshpawar/ezoCodingTask/internal/client/form"
	"github.com/parshpawar/ezoCodingTask/internal/client/listflow"
	"github.com/parshpawar/ezoCodingTask/internal/client/nav"
	"github.com/parshpawar/ezoCodingTask/internal/config"
	"github.com/parshpawar/ezoCodingTask/internal/logger"
)

var (
	version   string
	buildDate string
)

// render prints the active screen's state.
func render(a *app.App) {
	switch a.Navigator().Active() {
	case nav.ScreenNone:
		// Session still unknown: render nothing.
	case nav.ScreenLogin:
		renderForm("Login", a.SignInForm())
		fmt.Println("Don't have an account? Type 'signup'.")
	case nav.ScreenSignUp:
		renderForm("Sign Up", a.SignUpForm())
		fmt.Println("Already have an account? Type 'back'.")
	case nav.ScreenList:
		renderList(a.List())
	}
}

func renderForm(title string, f *form.Flow) {
	if f == nil {
		return
	}
	st := f.State()
	fmt.Printf("== %s ==\n", title)
	fmt.Printf("Email:    %s\n", st.Email)
	if st.EmailError != "" {
		fmt.Printf("  ! %s\n", st.EmailError)
	}
	fmt.Printf("Password: %s\n", strings.Repeat("*", len(st.Password)))
	if st.PasswordError != "" {
		fmt.Printf("  ! %s\n", st.PasswordError)
	}
	if st.Submitting {
		fmt.Println("Submitting...")
	}
	if st.FailureVisible {
		fmt.Printf("[!] %s (type 'dismiss' to close)\n", st.FailureMessage)
	}
	if st.Submittable {
		fmt.Println("Type 'submit' to continue.")
	}
}

func renderList(l *listflow.Flow) {
	if l == nil {
		return
	}
	st := l.State()
	fmt.Println("== User List ==")
	switch {
	case st.Loading:
		fmt.Println("Loading...")
	case st.Empty():
		fmt.Println("No Records Found")
	default:
		for _, r := range st.Records {
			fmt.Printf("%s, %d | %s, %s (%s, %s)\n", r.Name, r.Age, r.Phone, r.Email, r.City, r.Country)
		}
	}
	if st.Refreshing {
		fmt.Println("Refreshing...")
	}
	if st.FetchError != "" {
		fmt.Printf("[!] %s\n", st.FetchError)
	}
	if st.LogoutVisible {
		fmt.Println("Log out? Type 'confirm' or 'cancel'.")
	}
	if st.LogoutError != "" {
		fmt.Printf("[!] %s\n", st.LogoutError)
	}
}

// repl reads commands and forwards them to the active screen's flow.
func repl(ctx context.Context, a *app.App) {
	scanner := bufio.NewScanner(os.Stdin)
	render(a)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		args := strings.SplitN(line, " ", 2)
		if args[0] == "" {
			continue
		}

		active := a.Navigator().Active()
		switch args[0] {
		case "exit":
			fmt.Println("Bye")
			return
		case "email":
			if f := activeForm(a, active); f != nil && len(args) == 2 {
				f.SetEmail(args[1])
			}
		case "password":
			if f := activeForm(a, active); f != nil && len(args) == 2 {
				f.SetPassword(args[1])
			}
		case "submit":
			if f := activeForm(a, active); f != nil {
				f.Submit(ctx)
			}
		case "dismiss":
			if f := activeForm(a, active); f != nil {
				f.DismissFailure()
			}
		case "signup":
			a.Navigator().GoTo(nav.ScreenSignUp)
		case "back":
			a.Navigator().Back()
		case "refresh":
			if l := a.List(); l != nil {
				l.Refresh(ctx)
			}
		case "logout":
			if l := a.List(); l != nil {
				l.RequestLogout()
			}
		case "confirm":
			if l := a.List(); l != nil {
				l.ConfirmLogout(ctx)
			}
		case "cancel":
			if l := a.List(); l != nil {
				l.CancelLogout()
			}
		default:
			fmt.Println("Commands: email <addr>, password <pw>, submit, dismiss, signup, back, refresh, logout, confirm, cancel, exit")
		}
		render(a)
	}
}

func activeForm(a *app.App, screen nav.Screen) *form.Flow {
	switch screen {
	case nav.ScreenLogin:
		return a.SignInForm()
	case nav.ScreenSignUp:
		return a.SignUpForm()
	default:
		return nil
	}
}

func main() {
	options := config.Parse()

	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	a := app.New(options.ServerURL, options.TokenFile, log.Log, nil)
	defer a.Close()

	a.Start(ctx)
	repl(ctx, a)
}
