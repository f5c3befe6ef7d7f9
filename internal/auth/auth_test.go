package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestExtractBearer(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	if _, err := ExtractBearer(r); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("missing header: got %v", err)
	}

	r.Header.Set("Authorization", "Basic abc")
	if _, err := ExtractBearer(r); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("wrong scheme: got %v", err)
	}

	r.Header.Set("Authorization", "Bearer tok123")
	tok, err := ExtractBearer(r)
	if err != nil || tok != "tok123" {
		t.Fatalf("got %q, %v", tok, err)
	}
}

func TestStaticVerifier(t *testing.T) {
	v := NewStaticVerifier()
	id, err := v.Verify(context.Background(), LocalDevToken)
	if err != nil || id.UID == "" {
		t.Fatalf("dev token rejected: %v", err)
	}
	if _, err := v.Verify(context.Background(), "nope"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("bad token: got %v", err)
	}
}

func TestIdentityToolkitVerifier(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path != "/accounts:lookup" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var body struct {
			IDToken string `json:"idToken"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.IDToken != "good" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"message":"INVALID_ID_TOKEN"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"users":[{"localId":"uid1","email":"a@b.c"}]}`))
	}))
	defer srv.Close()

	v := NewIdentityToolkitVerifier("key", srv.URL)

	id, err := v.Verify(context.Background(), "good")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if id.UID != "uid1" || id.Email != "a@b.c" {
		t.Fatalf("identity: %+v", id)
	}

	if _, err := v.Verify(context.Background(), "bad"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
