// Package client is the Go SDK for the studylist sync service. It wraps the
// REST API with typed calls, attaches a fresh bearer token to every request,
// auto-provisions accounts on first fetch and keeps an optional local mirror
// of the topic tree in step with server responses.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/studylist/studylist-sync/identity"
	"github.com/studylist/studylist-sync/internal/model"
)

// Client talks to one studylist server on behalf of one signed-in account.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  identity.TokenSource
	mirror  *Mirror
	profile Profile

	closedOnce uint32
}

// Profile is the identity the client provisions accounts with.
type Profile struct {
	Email string
	Name  string
}

// New constructs a Client for baseURL using tokens for authentication.
// Additional options can be provided via functional arguments.
func New(baseURL string, tokens identity.TokenSource, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL cannot be empty")
	}
	if tokens == nil {
		return nil, fmt.Errorf("token source cannot be nil")
	}

	c := &Client{
		baseURL: baseURL,
		tokens:  tokens,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Close releases the local mirror if one is attached. Idempotent.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	if c.mirror != nil {
		return c.mirror.Close()
	}
	return nil
}

// do performs one authenticated round trip. The token is fetched from the
// source per call, so refreshes in the source are picked up immediately.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	op := method + " " + path

	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindValidation, Op: op, Message: err.Error()}
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return &Error{Kind: KindTransport, Op: op, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	tok, err := c.tokens.Token(ctx)
	if err != nil {
		return &Error{Kind: KindAuth, Op: op, Message: "cannot obtain token: " + err.Error()}
	}
	req.Header.Set("Authorization", "Bearer "+tok)

	resp, err := c.http.Do(req)
	if err != nil {
		requestsFailedTotal.WithLabelValues(op).Inc()
		return &Error{Kind: KindTransport, Op: op, Message: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		requestsFailedTotal.WithLabelValues(op).Inc()
		apiErr := c.errorFromResponse(op, resp)
		if apiErr.Kind == KindAuth && c.mirror != nil {
			// The session is no longer valid server side; drop the local
			// sign-in record so the caller re-authenticates.
			_ = c.mirror.ClearSignIn()
		}
		return apiErr
	}

	requestsTotal.WithLabelValues(op).Inc()
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindTransport, Op: op, Message: "decode response: " + err.Error()}
	}
	return nil
}

func (c *Client) errorFromResponse(op string, resp *http.Response) *Error {
	// The server writes {error: <status text>, code, message: <detail>};
	// the detail is the part worth surfacing.
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	detail := body.Message
	if detail == "" {
		detail = body.Error
	}

	e := &Error{Status: resp.StatusCode, Op: op, Message: detail}
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		e.Kind = KindAuth
	case http.StatusNotFound:
		e.Kind = KindNotFound
	case http.StatusConflict:
		e.Kind = KindConflict
	case http.StatusBadRequest:
		// The create-user endpoint reports duplicates as a 400.
		if detail == "User already exists" {
			e.Kind = KindConflict
		} else {
			e.Kind = KindValidation
		}
	default:
		e.Kind = KindTransport
	}
	return e
}

// MaterialInput mirrors the wire shape of a clipped material. DateAdded may
// be set to backfill older clips; when omitted the server stamps it.
type MaterialInput struct {
	Type      model.MaterialType `json:"type"`
	Title     string             `json:"title"`
	URL       string             `json:"url"`
	Rating    float64            `json:"rating,omitempty"`
	Completed bool               `json:"completed,omitempty"`
	DateAdded time.Time          `json:"dateAdded,omitempty"`
}
