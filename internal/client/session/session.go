// Package session owns the process-wide authentication state. The
// controller is the single writer: it subscribes once to the gateway's
// identity feed and every callback overwrites the session. Everything
// else only reads.
package session

import (
	"sync"

	"github.com/parshpawar/ezoCodingTask/internal/models"
)

// Status is the authentication state of the process.
type Status string

const (
	// StatusUnknown is the startup state, before the gateway has reported.
	// While unknown, no screen may be rendered.
	StatusUnknown Status = "unknown"
	// StatusAuthenticated means an identity is present.
	StatusAuthenticated Status = "authenticated"
	// StatusAnonymous means the gateway reported no identity.
	StatusAnonymous Status = "anonymous"
)

// Session is the current authentication state and, when authenticated,
// the account identity.
type Session struct {
	Status   Status
	Identity *models.Identity
}

// Feed is the subscription primitive of the credential gateway.
type Feed interface {
	// OnIdentityChange registers fn and returns an unsubscribe function.
	OnIdentityChange(fn func(*models.Identity)) func()
}

// Controller holds the session and notifies listeners when it changes.
type Controller struct {
	mu          sync.Mutex
	current     Session
	closed      bool
	unsubscribe func()
	nextSub     int
	subs        map[int]func(Session)
}

// NewController subscribes to the feed and returns the controller. The
// session starts as unknown and transitions only via feed callbacks.
func NewController(feed Feed) *Controller {
	c := &Controller{
		current: Session{Status: StatusUnknown},
		subs:    make(map[int]func(Session)),
	}
	c.unsubscribe = feed.OnIdentityChange(c.apply)
	return c
}

// apply is the only writer of the session value.
func (c *Controller) apply(ident *models.Identity) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if ident != nil {
		c.current = Session{Status: StatusAuthenticated, Identity: ident}
	} else {
		c.current = Session{Status: StatusAnonymous}
	}
	session := c.current
	fns := make([]func(Session), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(session)
	}
}

// Current returns the session as last reported by the gateway.
func (c *Controller) Current() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// OnChange registers fn to be called after every session transition.
// It returns an unsubscribe function.
func (c *Controller) OnChange(fn func(Session)) func() {
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

// Close releases the gateway subscription. Feed callbacks arriving after
// Close are dropped instead of mutating a torn-down controller.
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
