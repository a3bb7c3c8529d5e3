package gateway

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed gateway operation. The UI renders the
// fixed message for the kind, never the raw server text.
type ErrorKind string

const (
	// KindUnknown covers failures the client cannot classify.
	KindUnknown ErrorKind = "unknown"
	// KindInvalidCredentials means the email/password pair was rejected.
	KindInvalidCredentials ErrorKind = "invalid_credentials"
	// KindEmailInUse means sign-up was rejected because the address is taken.
	KindEmailInUse ErrorKind = "email_in_use"
	// KindWeakPassword means the server rejected the password policy-wise.
	KindWeakPassword ErrorKind = "weak_password"
	// KindRateLimited means the server throttled the operation.
	KindRateLimited ErrorKind = "rate_limited"
	// KindNetwork means the request never produced a server verdict.
	KindNetwork ErrorKind = "network"
)

// messages holds the reviewed user-facing text per kind.
var messages = map[ErrorKind]string{
	KindInvalidCredentials: "Invalid email or password.",
	KindEmailInUse:         "An account with this email already exists.",
	KindWeakPassword:       "The password does not meet the requirements.",
	KindRateLimited:        "Too many attempts. Please try again later.",
	KindNetwork:            "Could not reach the server. Check your connection.",
	KindUnknown:            "Something went wrong. Please try again.",
}

// Error is a classified gateway failure wrapping the underlying cause.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Message returns the fixed user-facing message for the error's kind.
func (e *Error) Message() string {
	if m, ok := messages[e.Kind]; ok {
		return m
	}
	return messages[KindUnknown]
}

// KindOf extracts the ErrorKind from err, falling back to KindUnknown.
func KindOf(err error) ErrorKind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return KindUnknown
}

// Message returns the user-facing message for err.
func Message(err error) string {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Message()
	}
	return messages[KindUnknown]
}
