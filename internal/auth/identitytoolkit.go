package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultIdentityToolkitURL is the Google identitytoolkit REST base.
const DefaultIdentityToolkitURL = "https://identitytoolkit.googleapis.com/v1"

// IdentityToolkitVerifier checks tokens against the identitytoolkit
// accounts:lookup endpoint. One round trip per verification; the provider
// does its own caching.
type IdentityToolkitVerifier struct {
	client *resty.Client
	apiKey string
}

// NewIdentityToolkitVerifier builds a verifier for the given project API key.
// baseURL is overridable for tests; pass "" for the Google endpoint.
func NewIdentityToolkitVerifier(apiKey, baseURL string) *IdentityToolkitVerifier {
	if baseURL == "" {
		baseURL = DefaultIdentityToolkitURL
	}
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(10 * time.Second)
	return &IdentityToolkitVerifier{client: c, apiKey: apiKey}
}

type lookupResponse struct {
	Users []struct {
		LocalID string `json:"localId"`
		Email   string `json:"email"`
	} `json:"users"`
}

func (v *IdentityToolkitVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	var out lookupResponse
	resp, err := v.client.R().
		SetContext(ctx).
		SetQueryParam("key", v.apiKey).
		SetBody(map[string]string{"idToken": token}).
		SetResult(&out).
		Post("/accounts:lookup")
	if err != nil {
		return nil, fmt.Errorf("identitytoolkit lookup: %w", err)
	}
	if resp.StatusCode() != http.StatusOK || len(out.Users) == 0 {
		return nil, fmt.Errorf("identitytoolkit lookup status %d: %w", resp.StatusCode(), ErrInvalidToken)
	}
	return &Identity{UID: out.Users[0].LocalID, Email: out.Users[0].Email}, nil
}
