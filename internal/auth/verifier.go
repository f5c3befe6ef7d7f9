package auth

import "context"

// Identity describes the authenticated caller as reported by the identity
// provider.
type Identity struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

// Verifier validates bearer tokens. The server never mints tokens itself;
// it only checks what the identity provider issued.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}
