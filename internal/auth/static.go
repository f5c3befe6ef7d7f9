package auth

import (
	"context"
	"fmt"
)

const (
	// LocalDevToken is the hardcoded bearer token for local development only.
	LocalDevToken = "sk_local_studylist_dev_key"

	localDevUID   = "studylist-dev"
	localDevEmail = "dev@localhost"
)

// StaticVerifier accepts a single preconfigured token. It stands in for the
// identity provider in development and tests.
type StaticVerifier struct {
	Token string
	UID   string
	Email string
}

// NewStaticVerifier returns a verifier recognizing only LocalDevToken.
func NewStaticVerifier() *StaticVerifier {
	return &StaticVerifier{Token: LocalDevToken, UID: localDevUID, Email: localDevEmail}
}

func (v *StaticVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	if token != v.Token {
		return nil, fmt.Errorf("static verifier: %w", ErrInvalidToken)
	}
	return &Identity{UID: v.UID, Email: v.Email}, nil
}
