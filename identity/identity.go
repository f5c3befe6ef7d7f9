// Package identity signs users in against the Google Identity Toolkit REST
// API and keeps the resulting session tokens fresh.
package identity

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultIdentityBaseURL    = "https://identitytoolkit.googleapis.com/v1"
	defaultSecureTokenBaseURL = "https://securetoken.googleapis.com/v1"

	// Refresh this far before the reported expiry so a token is never
	// presented in its final seconds.
	refreshSlack = 2 * time.Minute
)

// TokenSource yields a bearer token valid at call time. Implementations
// refresh expired tokens before returning.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client talks to the identity provider's REST endpoints.
type Client struct {
	http           *resty.Client
	apiKey         string
	identityBase   string
	secureTokenURL string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURLs overrides the provider endpoints, used by tests and
// emulator setups.
func WithBaseURLs(identityBase, secureTokenBase string) Option {
	return func(c *Client) {
		c.identityBase = identityBase
		c.secureTokenURL = secureTokenBase
	}
}

// WithHTTPTimeout bounds each provider call.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.SetTimeout(d) }
}

// NewClient creates an identity client for the given API key.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		http:           resty.New().SetTimeout(10 * time.Second),
		apiKey:         apiKey,
		identityBase:   defaultIdentityBaseURL,
		secureTokenURL: defaultSecureTokenBaseURL,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type signInResponse struct {
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
}

type refreshResponse struct {
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    string `json:"expires_in"`
	UserID       string `json:"user_id"`
}

type providerError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// SignIn exchanges email and password for a session.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	return c.credentialCall(ctx, "/accounts:signInWithPassword", email, password)
}

// SignUp registers a new account and returns its session.
func (c *Client) SignUp(ctx context.Context, email, password string) (*Session, error) {
	return c.credentialCall(ctx, "/accounts:signUp", email, password)
}

func (c *Client) credentialCall(ctx context.Context, path, email, password string) (*Session, error) {
	var out signInResponse
	var provErr providerError
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(map[string]interface{}{
			"email":             email,
			"password":          password,
			"returnSecureToken": true,
		}).
		SetResult(&out).
		SetError(&provErr).
		Post(c.identityBase + path)
	if err != nil {
		return nil, fmt.Errorf("identity provider unreachable: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("identity provider rejected credentials: %s", provErr.Error.Message)
	}

	return &Session{
		client:       c,
		uid:          out.LocalID,
		email:        out.Email,
		idToken:      out.IDToken,
		refreshToken: out.RefreshToken,
		expiresAt:    time.Now().Add(parseExpiry(out.ExpiresIn)),
	}, nil
}

// refresh exchanges a refresh token for a new id token.
func (c *Client) refresh(ctx context.Context, refreshToken string) (*refreshResponse, error) {
	var out refreshResponse
	var provErr providerError
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetFormData(map[string]string{
			"grant_type":    "refresh_token",
			"refresh_token": refreshToken,
		}).
		SetResult(&out).
		SetError(&provErr).
		Post(c.secureTokenURL + "/token")
	if err != nil {
		return nil, fmt.Errorf("token refresh unreachable: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("token refresh rejected: %s", provErr.Error.Message)
	}
	return &out, nil
}

func parseExpiry(s string) time.Duration {
	var secs int64
	if _, err := fmt.Sscanf(s, "%d", &secs); err != nil || secs <= 0 {
		return time.Hour
	}
	return time.Duration(secs) * time.Second
}

// Session holds the tokens of one signed-in account. Token refreshes
// transparently when the id token nears expiry. Safe for concurrent use.
type Session struct {
	client *Client

	mu           sync.Mutex
	uid          string
	email        string
	idToken      string
	refreshToken string
	expiresAt    time.Time
}

// UID returns the provider-assigned account id.
func (s *Session) UID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uid
}

// Email returns the signed-in account's email.
func (s *Session) Email() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.email
}

// Token returns a currently valid id token, refreshing first if the cached
// one is within the expiry slack.
func (s *Session) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.idToken != "" && time.Now().Add(refreshSlack).Before(s.expiresAt) {
		return s.idToken, nil
	}

	out, err := s.client.refresh(ctx, s.refreshToken)
	if err != nil {
		return "", err
	}
	s.idToken = out.IDToken
	if out.RefreshToken != "" {
		s.refreshToken = out.RefreshToken
	}
	if out.UserID != "" {
		s.uid = out.UserID
	}
	s.expiresAt = time.Now().Add(parseExpiry(out.ExpiresIn))
	return s.idToken, nil
}

// Restore rebuilds a session from persisted tokens, forcing a refresh on
// first use.
func (c *Client) Restore(uid, email, refreshToken string) *Session {
	return &Session{
		client:       c,
		uid:          uid,
		email:        email,
		refreshToken: refreshToken,
	}
}

// RefreshToken exposes the current refresh token for persistence.
func (s *Session) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshToken
}
