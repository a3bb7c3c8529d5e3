// Package models defines the core data structures shared between the
// client and the server.
package models

// User represents an application user with credentials.
type User struct {
	// ID is the unique identifier for the user.
	ID string
	// Email is the address the user registered with.
	Email string
	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string
}

// Identity is an opaque reference to an authenticated account as granted
// by the credential gateway.
type Identity struct {
	// ID is the unique identifier of the account.
	ID string `json:"id"`
	// Email is the address the account was registered with.
	Email string `json:"email"`
}

// Record is a single roster entry shown on the list screen. The client
// treats everything except ID as opaque payload for rendering.
type Record struct {
	// ID is the stable unique key of the record.
	ID string `json:"id"`
	// Name is the person's full name.
	Name string `json:"name"`
	// Age in years.
	Age int `json:"age"`
	// Phone number as stored.
	Phone string `json:"phone"`
	// Email address of the person.
	Email string `json:"email"`
	// City of residence.
	City string `json:"city"`
	// Country of residence.
	Country string `json:"country"`
}

// CredentialRequest is the JSON payload for sign-in and sign-up.
type CredentialRequest struct {
	// Email is the account address.
	Email string `json:"email"`
	// Password is the plaintext password.
	Password string `json:"password"`
}

// AuthResponse is the JSON body returned by successful sign-in and sign-up.
type AuthResponse struct {
	// Token is the bearer token for subsequent requests.
	Token string `json:"token"`
	// Identity describes the authenticated account.
	Identity Identity `json:"identity"`
}

// RecordsResponse is the JSON body returned by the records endpoint.
type RecordsResponse struct {
	// Records is the complete batch, ordered by name.
	Records []Record `json:"records"`
}
