// Package nav decides which screen is active. The reachable screen set is
// derived from the session status and enforced here in code: an
// authenticated session can never display Login or SignUp and vice versa.
// This is the client's sole access-control mechanism.
package nav

import (
	"sync"

	"github.com/parshpawar/ezoCodingTask/internal/client/session"
)

// Screen identifies one of the client screens.
type Screen string

const (
	// ScreenNone renders nothing; active while the session is unknown.
	ScreenNone Screen = "none"
	// ScreenLogin is the sign-in screen.
	ScreenLogin Screen = "login"
	// ScreenSignUp is the sign-up screen.
	ScreenSignUp Screen = "signup"
	// ScreenList is the authenticated record list.
	ScreenList Screen = "list"
)

// SessionSource is the session controller surface the navigator consumes.
type SessionSource interface {
	Current() session.Session
	OnChange(fn func(session.Session)) func()
}

// Controller maps the session to the active screen and applies explicit
// navigation intents on top of the derived reachable set.
type Controller struct {
	sessions SessionSource

	mu          sync.Mutex
	stack       []Screen
	closed      bool
	unsubscribe func()
	nextSub     int
	subs        map[int]func(Screen)
}

// NewController builds a navigator bound to the given session source and
// aligns it with the current session state.
func NewController(sessions SessionSource) *Controller {
	c := &Controller{
		sessions: sessions,
		subs:     make(map[int]func(Screen)),
	}
	c.applySession(sessions.Current())
	c.unsubscribe = sessions.OnChange(c.applySession)
	return c
}

// Reachable returns the set of screens the navigator will permit for the
// given session status.
func Reachable(status session.Status) map[Screen]bool {
	switch status {
	case session.StatusAnonymous:
		return map[Screen]bool{ScreenLogin: true, ScreenSignUp: true}
	case session.StatusAuthenticated:
		return map[Screen]bool{ScreenList: true}
	default:
		return map[Screen]bool{}
	}
}

// applySession realigns the stack with the session's reachable set.
func (c *Controller) applySession(s session.Session) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	before := c.activeLocked()

	switch s.Status {
	case session.StatusUnknown:
		c.stack = nil
	case session.StatusAuthenticated:
		// The list is the only authenticated screen; wipe any anonymous
		// history so Back cannot cross the auth boundary.
		c.stack = []Screen{ScreenList}
	case session.StatusAnonymous:
		if !c.stackWithinLocked(Reachable(session.StatusAnonymous)) {
			c.stack = []Screen{ScreenLogin}
		}
	}

	notify := c.changeLocked(before)
	c.mu.Unlock()
	notify()
}

// stackWithinLocked reports whether the non-empty stack only contains
// screens from the allowed set.
func (c *Controller) stackWithinLocked(allowed map[Screen]bool) bool {
	if len(c.stack) == 0 {
		return false
	}
	for _, s := range c.stack {
		if !allowed[s] {
			return false
		}
	}
	return true
}

// Active returns the screen to render; ScreenNone while the session is
// unknown.
func (c *Controller) Active() Screen {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeLocked()
}

func (c *Controller) activeLocked() Screen {
	if len(c.stack) == 0 {
		return ScreenNone
	}
	return c.stack[len(c.stack)-1]
}

// GoTo pushes a screen onto the history. The intent is honored only while
// the target is in the current reachable set; anything else is ignored.
func (c *Controller) GoTo(screen Screen) {
	c.mu.Lock()
	if c.closed || !Reachable(c.sessions.Current().Status)[screen] || c.activeLocked() == screen {
		c.mu.Unlock()
		return
	}
	before := c.activeLocked()
	c.stack = append(c.stack, screen)
	notify := c.changeLocked(before)
	c.mu.Unlock()
	notify()
}

// Replace makes screen the only entry in the history, so Back cannot
// return to what was shown before. Used right after a successful
// credential operation to short-circuit the wait for the gateway feed.
// The reachable-set invariant still applies.
func (c *Controller) Replace(screen Screen) {
	c.mu.Lock()
	if c.closed || !Reachable(c.sessions.Current().Status)[screen] {
		c.mu.Unlock()
		return
	}
	before := c.activeLocked()
	c.stack = []Screen{screen}
	notify := c.changeLocked(before)
	c.mu.Unlock()
	notify()
}

// Back pops the history. With a single entry it is a no-op. It returns
// the screen active afterwards.
func (c *Controller) Back() Screen {
	c.mu.Lock()
	if c.closed || len(c.stack) <= 1 {
		after := c.activeLocked()
		c.mu.Unlock()
		return after
	}
	before := c.activeLocked()
	c.stack = c.stack[:len(c.stack)-1]
	after := c.activeLocked()
	notify := c.changeLocked(before)
	c.mu.Unlock()
	notify()
	return after
}

// OnChange registers fn to be called when the active screen changes.
// It returns an unsubscribe function.
func (c *Controller) OnChange(fn func(Screen)) func() {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// changeLocked returns the notification to run after the lock is
// released; a no-op when the active screen did not move.
func (c *Controller) changeLocked(before Screen) func() {
	after := c.activeLocked()
	if after == before {
		return func() {}
	}
	fns := make([]func(Screen), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	return func() {
		for _, fn := range fns {
			fn(after)
		}
	}
}

// Close releases the session subscription.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	unsub := c.unsubscribe
	c.mu.Unlock()

	if unsub != nil {
		unsub()
	}
}
