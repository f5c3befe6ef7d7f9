package client

// Functional options applied by New. Options must be deterministic and
// side-effect free.

import (
	"fmt"
	"time"
)

// Option configures a Client during construction in New.
type Option func(*Client) error

// WithHTTPTimeout sets the underlying http.Client Timeout used by the SDK.
// The value must be greater than zero.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be > 0")
		}
		c.http.Timeout = d
		return nil
	}
}

// WithMirror attaches a local mirror that is refreshed from every server
// response carrying the topic tree. The client takes ownership and closes
// the mirror on Close.
func WithMirror(m *Mirror) Option {
	return func(c *Client) error {
		if m == nil {
			return fmt.Errorf("mirror cannot be nil")
		}
		c.mirror = m
		return nil
	}
}

// WithProfile sets the email and display name used when the client has to
// provision the account on first fetch.
func WithProfile(email, name string) Option {
	return func(c *Client) error {
		c.profile = Profile{Email: email, Name: name}
		return nil
	}
}
