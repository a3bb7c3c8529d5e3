// Package app is the client composition root: it wires the credential
// gateway, the session and navigation controllers, and mounts the screen
// flows as the active screen changes.
package app

import (
	"context"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/parshpawar/ezoCodingTask/internal/client/form"
	"github.com/parshpawar/ezoCodingTask/internal/client/gateway"
	"github.com/parshpawar/ezoCodingTask/internal/client/listflow"
	"github.com/parshpawar/ezoCodingTask/internal/client/nav"
	"github.com/parshpawar/ezoCodingTask/internal/client/records"
	"github.com/parshpawar/ezoCodingTask/internal/client/session"
)

// App owns the client core for one process.
type App struct {
	gateway  *gateway.Client
	records  *records.Client
	sessions *session.Controller
	nav      *nav.Controller
	log      *zap.Logger

	mu     sync.Mutex
	signIn *form.Flow
	signUp *form.Flow
	list   *listflow.Flow
}

// New wires the client core against the given server. httpClient may be
// nil to use defaults.
func New(serverURL, tokenFile string, log *zap.Logger, httpClient *http.Client) *App {
	a := &App{log: log}
	a.gateway = gateway.NewClient(serverURL, gateway.NewTokenStore(tokenFile), httpClient)
	a.records = records.NewClient(serverURL, a.gateway, httpClient)
	a.sessions = session.NewController(a.gateway)
	a.nav = nav.NewController(a.sessions)
	a.nav.OnChange(func(s nav.Screen) { a.mount(s) })
	return a
}

// Start resolves the initial session state. Until it completes the
// navigator stays on ScreenNone.
func (a *App) Start(ctx context.Context) {
	a.gateway.Start(ctx)
}

// Navigator returns the navigation controller.
func (a *App) Navigator() *nav.Controller { return a.nav }

// Sessions returns the session controller.
func (a *App) Sessions() *session.Controller { return a.sessions }

// SignInForm returns the sign-in flow, or nil when that screen is not
// mounted.
func (a *App) SignInForm() *form.Flow {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.signIn
}

// SignUpForm returns the sign-up flow, or nil when that screen is not
// mounted.
func (a *App) SignUpForm() *form.Flow {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.signUp
}

// List returns the list flow, or nil when the list screen is not mounted.
func (a *App) List() *listflow.Flow {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.list
}

// mount creates the flow backing the newly active screen and tears down
// the flows of screens that left.
func (a *App) mount(screen nav.Screen) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if screen != nav.ScreenLogin && a.signIn != nil {
		a.signIn.Close()
		a.signIn = nil
	}
	if screen != nav.ScreenSignUp && a.signUp != nil {
		a.signUp.Close()
		a.signUp = nil
	}
	if screen != nav.ScreenList && a.list != nil {
		a.list.Close()
		a.list = nil
	}

	switch screen {
	case nav.ScreenLogin:
		if a.signIn == nil {
			a.signIn = form.New(form.SignIn, a.gateway.SignIn, func() {
				a.nav.Replace(nav.ScreenList)
			})
		}
	case nav.ScreenSignUp:
		if a.signUp == nil {
			a.signUp = form.New(form.SignUp, a.gateway.SignUp, func() {
				a.nav.Replace(nav.ScreenList)
			})
		}
	case nav.ScreenList:
		if a.list == nil {
			a.list = listflow.New(a.records.FetchAll, a.gateway.SignOut, func() {
				a.nav.Replace(nav.ScreenLogin)
			})
			flow := a.list
			go flow.Load(context.Background())
		}
	}
	a.log.Debug("screen mounted", zap.String("screen", string(screen)))
}

// Close tears down the client core.
func (a *App) Close() {
	a.mu.Lock()
	if a.signIn != nil {
		a.signIn.Close()
	}
	if a.signUp != nil {
		a.signUp.Close()
	}
	if a.list != nil {
		a.list.Close()
	}
	a.mu.Unlock()

	a.nav.Close()
	a.sessions.Close()
}
