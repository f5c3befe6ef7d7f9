package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProvider(t *testing.T, refreshCount *int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/accounts:signInWithPassword", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "hunter2" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"error": map[string]string{"message": "INVALID_PASSWORD"},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"idToken":      "tok-1",
			"refreshToken": "refresh-1",
			"expiresIn":    "3600",
			"localId":      "uid-1",
			"email":        body["email"].(string),
		})
	})
	mux.HandleFunc("/accounts:signUp", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"idToken":      "tok-new",
			"refreshToken": "refresh-new",
			"expiresIn":    "3600",
			"localId":      "uid-new",
			"email":        "new@example.com",
		})
	})
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		atomic.AddInt32(refreshCount, 1)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "refresh_token", r.Form.Get("grant_type"))
		_ = json.NewEncoder(w).Encode(map[string]string{
			"id_token":      "tok-2",
			"refresh_token": "refresh-2",
			"expires_in":    "3600",
			"user_id":       "uid-1",
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, refreshCount *int32) *Client {
	srv := newProvider(t, refreshCount)
	return NewClient("test-key", WithBaseURLs(srv.URL, srv.URL))
}

func TestSignInAndCachedToken(t *testing.T) {
	var refreshes int32
	c := newTestClient(t, &refreshes)

	sess, err := c.SignIn(context.Background(), "a@b.c", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", sess.UID())
	assert.Equal(t, "a@b.c", sess.Email())

	// Fresh token is served from cache without a refresh call.
	tok, err := sess.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)
	assert.EqualValues(t, 0, atomic.LoadInt32(&refreshes))
}

func TestSignInBadPassword(t *testing.T) {
	var refreshes int32
	c := newTestClient(t, &refreshes)

	_, err := c.SignIn(context.Background(), "a@b.c", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_PASSWORD")
}

func TestSignUp(t *testing.T) {
	var refreshes int32
	c := newTestClient(t, &refreshes)

	sess, err := c.SignUp(context.Background(), "new@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "uid-new", sess.UID())
}

func TestRestoredSessionRefreshesOnFirstUse(t *testing.T) {
	var refreshes int32
	c := newTestClient(t, &refreshes)

	sess := c.Restore("uid-1", "a@b.c", "refresh-1")
	tok, err := sess.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-2", tok)
	assert.Equal(t, "refresh-2", sess.RefreshToken())
	assert.EqualValues(t, 1, atomic.LoadInt32(&refreshes))

	// Second call reuses the refreshed token.
	tok, err = sess.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-2", tok)
	assert.EqualValues(t, 1, atomic.LoadInt32(&refreshes))
}
