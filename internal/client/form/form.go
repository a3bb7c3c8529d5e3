// Package form implements the validation and submission state machine
// backing a credential screen. One Flow instance exists per mounted
// sign-in or sign-up screen.
package form

import (
	"context"
	"sync"

	"github.com/parshpawar/ezoCodingTask/internal/client/gateway"
	"github.com/parshpawar/ezoCodingTask/internal/models"
	"github.com/parshpawar/ezoCodingTask/internal/validate"
)

// Variant selects which credential operation the flow submits to.
type Variant string

const (
	// SignIn submits to the gateway's sign-in operation.
	SignIn Variant = "signin"
	// SignUp submits to the gateway's sign-up operation.
	SignUp Variant = "signup"
)

// Inline field guidance. Validation rejections are never errors; they are
// rendered next to the field.
const (
	emailGuidance    = "Please enter a valid email address."
	passwordGuidance = "Password must be 8+ characters with an uppercase letter and a symbol."
)

// SubmitFunc is the credential operation the flow invokes, typically
// gateway.Client.SignIn or SignUp.
type SubmitFunc func(ctx context.Context, email, password string) (models.Identity, error)

// State is a snapshot of the form for rendering.
type State struct {
	Email          string
	Password       string
	EmailError     string
	PasswordError  string
	Submittable    bool
	Submitting     bool
	FailureMessage string
	FailureVisible bool
}

// Flow owns one credential form's state.
type Flow struct {
	variant   Variant
	submit    SubmitFunc
	onSuccess func()

	mu       sync.Mutex
	state    State
	closed   bool
	onChange func(State)
}

// New constructs a Flow. onSuccess fires after a successful submit so the
// caller can replace the screen without waiting for the gateway feed; it
// may be nil.
func New(variant Variant, submit SubmitFunc, onSuccess func()) *Flow {
	return &Flow{variant: variant, submit: submit, onSuccess: onSuccess}
}

// SetOnChange registers the render callback invoked after every state
// change.
func (f *Flow) SetOnChange(fn func(State)) {
	f.mu.Lock()
	f.onChange = fn
	f.mu.Unlock()
}

// State returns a snapshot of the form.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// SetEmail updates the email field and recomputes guidance and
// submittability. Empty fields show no guidance.
func (f *Flow) SetEmail(text string) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.state.Email = text
	f.state.EmailError = ""
	if text != "" && !validate.Email(text) {
		f.state.EmailError = emailGuidance
	}
	f.recomputeLocked()
	f.notifyAndUnlock()
}

// SetPassword updates the password field and recomputes guidance and
// submittability. Empty fields show no guidance.
func (f *Flow) SetPassword(text string) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.state.Password = text
	f.state.PasswordError = ""
	if text != "" && !validate.Password(text) {
		f.state.PasswordError = passwordGuidance
	}
	f.recomputeLocked()
	f.notifyAndUnlock()
}

// Submit invokes the credential operation with the current field values.
// It is a no-op unless the form is submittable, and while a submit is
// already in flight. The submitting flag is set before the operation
// starts and cleared on every exit path.
func (f *Flow) Submit(ctx context.Context) {
	f.mu.Lock()
	if f.closed || f.state.Submitting || !f.state.Submittable {
		f.mu.Unlock()
		return
	}
	f.state.Submitting = true
	email, password := f.state.Email, f.state.Password
	f.notifyAndUnlock()

	_, err := f.submit(ctx, email, password)

	f.mu.Lock()
	if f.closed {
		// The screen unmounted while the operation was in flight; its
		// result must not touch torn-down state.
		f.mu.Unlock()
		return
	}
	f.state.Submitting = false
	if err != nil {
		f.state.FailureMessage = gateway.Message(err)
		f.state.FailureVisible = true
		if f.variant == SignIn {
			// Force the user to retype the password instead of retrying
			// a typo, and drop the now-stale guidance.
			f.state.Password = ""
			f.state.PasswordError = ""
		}
		f.recomputeLocked()
		f.notifyAndUnlock()
		return
	}
	// Fields are left as is: the navigator replaces this screen next.
	f.notifyAndUnlock()

	if f.onSuccess != nil {
		f.onSuccess()
	}
}

// DismissFailure hides the failure modal. The message is kept; it cannot
// be re-shown without a new failed submit.
func (f *Flow) DismissFailure() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.state.FailureVisible = false
	f.notifyAndUnlock()
}

// Close marks the flow as unmounted. In-flight submit results arriving
// afterwards are dropped.
func (f *Flow) Close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
}

// recomputeLocked derives Submittable: both fields must be non-empty and
// pass validation.
func (f *Flow) recomputeLocked() {
	f.state.Submittable = validate.Email(f.state.Email) && validate.Password(f.state.Password)
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
