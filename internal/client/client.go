// Package client talks to a wordmath server over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/mod/semver"

	"github.com/abhisek/wordmath/internal/practice"
)

// DefaultTimeout bounds one request. It leaves room for the server's own
// oracle timeout.
const DefaultTimeout = 60 * time.Second

// Client calls the problem endpoints of a wordmath server.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// New creates a client for the server at baseURL, e.g. http://localhost:8080.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError is a non-2xx response. It unwraps to the matching practice
// error kind so callers can test it with errors.Is.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusBadRequest:
		return practice.ErrInvalidInput
	case http.StatusNotFound:
		return practice.ErrSessionNotFound
	}
	return nil
}

// NewProblem asks the server for a fresh problem.
func (c *Client) NewProblem(ctx context.Context) (*practice.GeneratedProblem, error) {
	var out practice.GeneratedProblem
	if err := c.post(ctx, "/problem", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Submit sends an answer for grading.
func (c *Client) Submit(ctx context.Context, sessionID, answer string) (*practice.GradeResult, error) {
	body := map[string]string{"sessionId": sessionID, "userAnswer": answer}
	var out practice.GradeResult
	if err := c.post(ctx, "/problem/submit", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Version returns the server's reported version.
func (c *Client) Version(ctx context.Context) (string, error) {
	var out struct {
		Version string `json:"version"`
	}
	if err := c.do(ctx, http.MethodGet, "/version", nil, &out); err != nil {
		return "", err
	}
	return out.Version, nil
}

// CheckCompatible reports an error when both versions are valid semver and
// their major versions differ. Development builds are always compatible.
func CheckCompatible(clientVersion, serverVersion string) error {
	cv, sv := canonical(clientVersion), canonical(serverVersion)
	if !semver.IsValid(cv) || !semver.IsValid(sv) {
		return nil
	}
	if semver.Major(cv) != semver.Major(sv) {
		return fmt.Errorf("client %s is not compatible with server %s", clientVersion, serverVersion)
	}
	return nil
}

func canonical(v string) string {
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, in, out)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		if json.Unmarshal(raw, &e) != nil || e.Error == "" {
			e.Error = strings.TrimSpace(string(raw))
		}
		if e.Error == "" {
			e.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
