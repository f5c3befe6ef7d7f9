package auth

import "errors"

var (
	// ErrMissingToken is returned when the Authorization header is absent or
	// not in "Bearer <token>" form.
	ErrMissingToken = errors.New("no token provided")

	// ErrInvalidToken is returned when the identity provider rejects a token.
	ErrInvalidToken = errors.New("invalid token")
)
