// Package listflow manages the record list screen: initial load,
// pull-to-refresh, the empty-state signal, and the logout confirmation
// gate in front of sign-out.
package listflow

import (
	"context"
	"sync"

	"github.com/parshpawar/ezoCodingTask/internal/client/gateway"
	"github.com/parshpawar/ezoCodingTask/internal/models"
)

const fetchFailedMessage = "Could not load records. Pull to refresh to try again."

// FetchFunc fetches the complete record batch, typically
// records.Client.FetchAll.
type FetchFunc func(ctx context.Context) ([]models.Record, error)

// SignOutFunc revokes the session, typically gateway.Client.SignOut.
type SignOutFunc func(ctx context.Context) error

// State is a snapshot of the list screen for rendering.
type State struct {
	Records []models.Record
	// Loading is true only before the first load completes.
	Loading bool
	// Refreshing is true only during a user-initiated re-fetch.
	Refreshing bool
	// FetchError is a non-fatal message after a failed fetch, "" otherwise.
	FetchError string
	// LogoutVisible gates the sign-out confirmation dialog.
	LogoutVisible bool
	// LogoutError is set when a confirmed sign-out failed.
	LogoutError string
}

// Empty reports the explicit "no records" signal, distinct from loading.
func (s State) Empty() bool {
	return !s.Loading && len(s.Records) == 0
}

// Flow owns the list screen's state.
type Flow struct {
	fetch       FetchFunc
	signOut     SignOutFunc
	onSignedOut func()

	mu       sync.Mutex
	state    State
	loaded   bool
	closed   bool
	onChange func(State)
}

// New constructs a Flow. onSignedOut fires after a successful sign-out so
// the caller can replace the screen immediately; it may be nil.
func New(fetch FetchFunc, signOut SignOutFunc, onSignedOut func()) *Flow {
	return &Flow{fetch: fetch, signOut: signOut, onSignedOut: onSignedOut}
}

// SetOnChange registers the render callback invoked after every state
// change.
func (f *Flow) SetOnChange(fn func(State)) {
	f.mu.Lock()
	f.onChange = fn
	f.mu.Unlock()
}

// State returns a snapshot of the list screen.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Load performs the initial fetch. It runs at most once per flow; later
// calls are ignored.
func (f *Flow) Load(ctx context.Context) {
	f.mu.Lock()
	if f.closed || f.loaded {
		f.mu.Unlock()
		return
	}
	f.loaded = true
	f.state.Loading = true
	f.notifyAndUnlock()

	records, err := f.fetch(ctx)

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.state.Loading = false
	if err != nil {
		// Records stay as they were (empty on first load).
		f.state.FetchError = fetchFailedMessage
		f.notifyAndUnlock()
		return
	}
	f.state.Records = records
	f.state.FetchError = ""
	f.notifyAndUnlock()
}

// Refresh re-fetches the records. A pull while the initial load or
// another refresh is outstanding is ignored, so responses cannot arrive
// out of request order.
func (f *Flow) Refresh(ctx context.Context) {
	f.mu.Lock()
	if f.closed || f.state.Loading || f.state.Refreshing {
		f.mu.Unlock()
		return
	}
	f.state.Refreshing = true
	f.notifyAndUnlock()

	records, err := f.fetch(ctx)

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.state.Refreshing = false
	if err != nil {
		f.state.FetchError = fetchFailedMessage
		f.notifyAndUnlock()
		return
	}
	f.state.Records = records
	f.state.FetchError = ""
	f.notifyAndUnlock()
}

// RequestLogout shows the sign-out confirmation dialog.
func (f *Flow) RequestLogout() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.state.LogoutVisible = true
	f.notifyAndUnlock()
}

// CancelLogout hides the confirmation dialog without signing out.
func (f *Flow) CancelLogout() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.state.LogoutVisible = false
	f.notifyAndUnlock()
}

// ConfirmLogout invokes sign-out. A failure is surfaced on the state and
// the authenticated screen stays active; only the gateway feed moves the
// session, so a failed sign-out leaves the user signed in.
func (f *Flow) ConfirmLogout(ctx context.Context) {
	f.mu.Lock()
	if f.closed || !f.state.LogoutVisible {
		f.mu.Unlock()
		return
	}
	f.state.LogoutVisible = false
	f.state.LogoutError = ""
	f.notifyAndUnlock()

	err := f.signOut(ctx)

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	if err != nil {
		f.state.LogoutError = gateway.Message(err)
		f.notifyAndUnlock()
		return
	}
	f.notifyAndUnlock()

	if f.onSignedOut != nil {
		f.onSignedOut()
	}
}

// Close marks the flow as unmounted. Results of outstanding operations
// are dropped.
func (f *Flow) Close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
}

// notifyAndUnlock snapshots the state, releases the lock and invokes the
// render callback.
func (f *Flow) notifyAndUnlock() {
	fn := f.onChange
	snapshot := f.state
	f.mu.Unlock()
	if fn != nil {
		fn(snapshot)
	}
}
