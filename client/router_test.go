package client

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studylist/studylist-sync/internal/api"
	"github.com/studylist/studylist-sync/internal/auth"
	"github.com/studylist/studylist-sync/internal/model"
	"github.com/studylist/studylist-sync/internal/store/memory"
)

// These tests run the SDK against the real router so the error body shape
// the server writes is what the SDK decodes.

func newRouterClient(t *testing.T) *Client {
	t.Helper()
	srv := httptest.NewServer(api.NewRouter(memory.New(), auth.NewStaticVerifier()))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, &staticTokens{token: auth.LocalDevToken}, WithProfile("a@b.c", "Tester"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestRouterDuplicateCreateIsConflict(t *testing.T) {
	c := newRouterClient(t)

	_, err := c.CreateUser(context.Background(), "uid1")
	require.NoError(t, err)

	_, err = c.CreateUser(context.Background(), "uid1")
	require.Error(t, err)
	assert.True(t, IsConflict(err))
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "User already exists", apiErr.Message)
}

func TestRouterNotFoundCarriesDetail(t *testing.T) {
	c := newRouterClient(t)

	_, err := c.getUser(context.Background(), "nobody")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "User not found", apiErr.Message)
}

func TestRouterSuppliedDateAddedPreserved(t *testing.T) {
	c := newRouterClient(t)

	_, err := c.FetchUser(context.Background(), "uid1")
	require.NoError(t, err)

	added := time.Date(2023, 4, 5, 6, 7, 8, 0, time.UTC)
	topics, err := c.AddMaterial(context.Background(), "uid1", model.DefaultTopicName,
		MaterialInput{Type: model.TypeBook, Title: "SICP", DateAdded: added})
	require.NoError(t, err)
	require.Len(t, topics[0].Categories.Book, 1)
	assert.True(t, topics[0].Categories.Book[0].DateAdded.Equal(added))
}

func TestRouterFetchUserProvisions(t *testing.T) {
	c := newRouterClient(t)

	u, err := c.FetchUser(context.Background(), "uid1")
	require.NoError(t, err)
	assert.Equal(t, "uid1", u.ExternalID)
	assert.Equal(t, "a@b.c", u.Email)
	require.Len(t, u.Topics, 1)
	assert.Equal(t, model.DefaultTopicName, u.Topics[0].Name)
}
