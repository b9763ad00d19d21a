// Package gateway is the one chokepoint between the client and the backend.
// Every request passes through it: it attaches the bearer token, normalizes
// every failure into the closed Error taxonomy, and forces a logout when the
// backend rejects the session. It never retries and never queues.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"ob-go/internal/session"
)

// errorBody is the error shape the backend produces.
type errorBody struct {
	Message string            `json:"message"`
	Details map[string]string `json:"details"`
}

// Client issues JSON requests against the backend API.
type Client struct {
	baseURL  string
	http     *http.Client
	sessions *session.Store
}

// NewClient creates a Client rooted at baseURL. httpClient may be nil, in
// which case http.DefaultClient is used. No client-side timeout is set; the
// transport's own failure signaling is relied on.
func NewClient(baseURL string, sessions *session.Store, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     httpClient,
		sessions: sessions,
	}
}

// Get issues a GET and decodes the response into out (may be nil).
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST with a JSON body (may be nil) and decodes into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT with a JSON body (may be nil) and decodes into out.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE and decodes the response into out (may be nil).
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

// isAuthPath reports whether the path belongs to the auth endpoints, which
// never carry a bearer token and whose 401s must not clear the session
// (a failed login is not a session expiry).
func isAuthPath(path string) bool {
	return strings.Contains(path, "/auth/")
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if cur := c.sessions.Current(); cur != nil && !isAuthPath(path) {
		req.Header.Set("Authorization", "Bearer "+cur.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindUnreachable, Status: 0, Message: fallbackMessage(0)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindUnreachable, Status: 0, Message: fallbackMessage(0)}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out != nil && len(data) > 0 {
			if err := json.Unmarshal(data, out); err != nil {
				return fmt.Errorf("decoding response body: %w", err)
			}
		}
		return nil
	}

	gwErr := normalize(resp.StatusCode, data)

	if gwErr.Kind == KindUnauthorized && !isAuthPath(path) {
		// The backend no longer accepts the session. Forced logout: the
		// gateway is the only writer of auth state besides the auth flows.
		c.sessions.Clear()
	}

	return gwErr
}

// normalize maps a non-2xx response into the closed Error taxonomy,
// preferring a server message, then a field-level detail, then a generic
// fallback keyed by status.
func normalize(status int, body []byte) *Error {
	var parsed errorBody
	// A non-JSON error body falls through to the status fallback.
	_ = json.Unmarshal(body, &parsed)

	msg := parsed.Message
	if msg == "" && len(parsed.Details) > 0 {
		fields := make([]string, 0, len(parsed.Details))
		for f := range parsed.Details {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		msg = parsed.Details[fields[0]]
	}
	fromServer := msg != ""
	if msg == "" {
		msg = fallbackMessage(status)
	}

	e := &Error{Status: status, Message: msg, Details: parsed.Details, FromServer: fromServer}
	switch {
	case status == 400 && len(parsed.Details) > 0:
		e.Kind = KindValidation
	case status == 401:
		e.Kind = KindUnauthorized
	case status == 403:
		e.Kind = KindForbidden
	case status == 404:
		e.Kind = KindNotFound
	default:
		e.Kind = KindServer
	}
	return e
}
