// Package records implements the client of the record source: a bulk
// fetch of the roster shown on the list screen.
package records

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/parshpawar/ezoCodingTask/internal/models"
)

const apiRecords = "/api/records"

// TokenProvider supplies the current bearer token, or "" when signed out.
type TokenProvider interface {
	Token() string
}

// Client fetches records from the backend.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenProvider
}

// NewClient constructs a record source client. If httpClient is nil a
// default client with a 10s timeout is used.
func NewClient(baseURL string, tokens TokenProvider, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: baseURL, http: httpClient, tokens: tokens}
}

// FetchAll returns the complete record batch, ordered by the server.
func (c *Client) FetchAll(ctx context.Context) ([]models.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+apiRecords, nil)
	if err != nil {
		return nil, err
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch records: unexpected status %d", resp.StatusCode)
	}

	var body models.RecordsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}
	return body.Records, nil
}
