// Package client talks to the passworld REST API and keeps the local vault view.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when the API answers 404.
	ErrNotFound = errors.New("not found")
	// ErrBadRequest is returned when the API answers 400.
	ErrBadRequest = errors.New("bad request")
	// ErrUnauthorized is returned when the API answers 401.
	ErrUnauthorized = errors.New("unauthorized")
)

const defaultTimeout = 10 * time.Second

// Credential is a saved login as exchanged with the API.
type Credential struct {
	ID       string `json:"id,omitempty"`
	Site     string `json:"site"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Session is a bearer token issued by the API.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Backup describes an uploaded snapshot.
type Backup struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// APIError carries the message of a failed API call.
type APIError struct {
	StatusCode int
	Message    string
	kind       error
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: %s (status %d)", e.Message, e.StatusCode)
}

func (e *APIError) Unwrap() error {
	return e.kind
}

// Client is an HTTP client for the credential API.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

// WithToken sets the session token sent with every request.
func WithToken(token string) Option {
	return func(cl *Client) { cl.token = token }
}

// New creates a Client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the session token.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token returns the current session token.
func (c *Client) Token() string {
	return c.token
}

// List returns every stored credential.
func (c *Client) List(ctx context.Context) ([]Credential, error) {
	var out []Credential
	if err := c.do(ctx, http.MethodGet, "/", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to list credentials: %w", err)
	}
	return out, nil
}

// Create stores a new credential. Any ID on cred is ignored.
func (c *Client) Create(ctx context.Context, cred Credential) (Credential, error) {
	cred.ID = ""
	var out Credential
	if err := c.do(ctx, http.MethodPost, "/", cred, &out); err != nil {
		return Credential{}, fmt.Errorf("failed to create credential: %w", err)
	}
	return out, nil
}

// Update replaces the credential with cred.ID.
func (c *Client) Update(ctx context.Context, cred Credential) (Credential, error) {
	var out Credential
	if err := c.do(ctx, http.MethodPut, "/", cred, &out); err != nil {
		return Credential{}, fmt.Errorf("failed to update credential: %w", err)
	}
	return out, nil
}

// Delete removes the credential with id.
func (c *Client) Delete(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/", map[string]string{"id": id}, nil); err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}
	return nil
}

// OpenSession exchanges pin for a token and starts sending it.
func (c *Client) OpenSession(ctx context.Context, pin string) (Session, error) {
	var out Session
	if err := c.do(ctx, http.MethodPost, "/session", map[string]string{"pin": pin}, &out); err != nil {
		return Session{}, fmt.Errorf("failed to open session: %w", err)
	}
	c.token = out.Token
	return out, nil
}

// Backup uploads a snapshot of the vault.
func (c *Client) Backup(ctx context.Context) (Backup, error) {
	var out Backup
	if err := c.do(ctx, http.MethodPost, "/backups", nil, &out); err != nil {
		return Backup{}, fmt.Errorf("failed to back up: %w", err)
	}
	return out, nil
}

// Restore upserts every credential of the snapshot stored under key.
func (c *Client) Restore(ctx context.Context, key string) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	if err := c.do(ctx, http.MethodPost, "/backups/restore", map[string]string{"key": key}, &out); err != nil {
		return 0, fmt.Errorf("failed to restore: %w", err)
	}
	return out.Count, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&payload); err == nil {
		apiErr.Message = payload.Error
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		apiErr.kind = ErrNotFound
	case http.StatusBadRequest:
		apiErr.kind = ErrBadRequest
	case http.StatusUnauthorized:
		apiErr.kind = ErrUnauthorized
	}
	return apiErr
}
