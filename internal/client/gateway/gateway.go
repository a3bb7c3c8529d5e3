// Package gateway implements the client side of the credential gateway:
// sign-in, sign-up, sign-out over HTTP/JSON, a persisted bearer token, and
// a subscription feed reporting the current authenticated identity.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/parshpawar/ezoCodingTask/internal/models"
)

const (
	apiSignUp  = "/api/signup"
	apiSignIn  = "/api/signin"
	apiSignOut = "/api/signout"
	apiSession = "/api/session"
)

// Gateway is the credential-operations contract the client core depends on.
type Gateway interface {
	SignIn(ctx context.Context, email, password string) (models.Identity, error)
	SignUp(ctx context.Context, email, password string) (models.Identity, error)
	SignOut(ctx context.Context) error
	// OnIdentityChange registers fn to be called with the current identity
	// (nil when signed out) once the state is known and after every change.
	// The returned function unsubscribes fn.
	OnIdentityChange(fn func(*models.Identity)) func()
}

// Client talks to the reference backend and implements Gateway.
type Client struct {
	baseURL string
	http    *http.Client
	store   *TokenStore

	mu       sync.Mutex
	token    string
	identity *models.Identity
	resolved bool
	nextSub  int
	subs     map[int]func(*models.Identity)
}

// NewClient constructs a Client against baseURL persisting its token via
// store. If httpClient is nil a default client with a 10s timeout is used.
func NewClient(baseURL string, store *TokenStore, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: baseURL,
		http:    httpClient,
		store:   store,
		subs:    make(map[int]func(*models.Identity)),
	}
}

// Start resolves the initial session state: it loads a persisted token and
// validates it against the server. Until Start completes, subscribers see
// nothing (the session stays unknown). A missing, rejected or unverifiable
// token resolves to signed out.
func (c *Client) Start(ctx context.Context) {
	token, err := c.store.Load()
	if err != nil || token == "" {
		c.publish(nil)
		return
	}

	c.mu.Lock()
	c.token = token
	c.mu.Unlock()

	var ident models.Identity
	if err := c.do(ctx, http.MethodGet, apiSession, nil, &ident, http.StatusOK, opSession); err != nil {
		c.mu.Lock()
		c.token = ""
		c.mu.Unlock()
		_ = c.store.Clear()
		c.publish(nil)
		return
	}
	c.publish(&ident)
}

// OnIdentityChange implements Gateway. If the state is already resolved,
// fn is invoked immediately with the current identity.
func (c *Client) OnIdentityChange(fn func(*models.Identity)) func() {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	resolved := c.resolved
	current := c.identity
	c.mu.Unlock()

	if resolved {
		fn(current)
	}
	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// SignIn authenticates with the given credentials. On success the token is
// persisted and subscribers are notified of the new identity.
func (c *Client) SignIn(ctx context.Context, email, password string) (models.Identity, error) {
	return c.authenticate(ctx, apiSignIn, email, password, opSignIn, http.StatusOK)
}

// SignUp creates an account and signs it in. On success the token is
// persisted and subscribers are notified of the new identity.
func (c *Client) SignUp(ctx context.Context, email, password string) (models.Identity, error) {
	return c.authenticate(ctx, apiSignUp, email, password, opSignUp, http.StatusCreated)
}

func (c *Client) authenticate(ctx context.Context, path, email, password string, op operation, wantStatus int) (models.Identity, error) {
	req := models.CredentialRequest{Email: email, Password: password}
	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, path, req, &resp, wantStatus, op); err != nil {
		return models.Identity{}, err
	}

	c.mu.Lock()
	c.token = resp.Token
	c.mu.Unlock()
	_ = c.store.Save(resp.Token)

	c.publish(&resp.Identity)
	return resp.Identity, nil
}

// SignOut revokes the current session. On failure the session is left as
// is and subscribers are not notified; the caller must surface the error.
func (c *Client) SignOut(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, apiSignOut, nil, nil, http.StatusNoContent, opSignOut); err != nil {
		return err
	}

	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
	_ = c.store.Clear()

	c.publish(nil)
	return nil
}

// Token returns the current bearer token, or "" when signed out.
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// publish records the new identity and notifies every subscriber.
func (c *Client) publish(ident *models.Identity) {
	c.mu.Lock()
	c.identity = ident
	c.resolved = true
	fns := make([]func(*models.Identity), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(ident)
	}
}

// operation tags a request so HTTP statuses map to the right ErrorKind.
type operation int

const (
	opSignIn operation = iota
	opSignUp
	opSignOut
	opSession
)

// do performs one JSON round trip and maps failures to *Error.
func (c *Client) do(ctx context.Context, method, path string, body, out any, wantStatus int, op operation) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindUnknown, Err: err}
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Kind: KindUnknown, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return &Error{Kind: kindForStatus(op, resp.StatusCode), Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &Error{Kind: KindUnknown, Err: err}
		}
	}
	return nil
}

// kindForStatus classifies an HTTP status for the given operation.
func kindForStatus(op operation, status int) ErrorKind {
	switch status {
	case http.StatusUnauthorized:
		if op == opSignIn {
			return KindInvalidCredentials
		}
		return KindUnknown
	case http.StatusConflict:
		if op == opSignUp {
			return KindEmailInUse
		}
		return KindUnknown
	case http.StatusBadRequest:
		if op == opSignUp {
			return KindWeakPassword
		}
		return KindUnknown
	case http.StatusTooManyRequests:
		return KindRateLimited
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return KindNetwork
	default:
		return KindUnknown
	}
}
