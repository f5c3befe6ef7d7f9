package client

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studylist/studylist-sync/internal/model"
)

func newMirror(t *testing.T) *Mirror {
	t.Helper()
	m, err := OpenMirror(filepath.Join(t.TempDir(), "mirror.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestMirrorTopicsRoundTrip(t *testing.T) {
	m := newMirror(t)

	topics, err := m.Topics()
	require.NoError(t, err)
	assert.Empty(t, topics)

	topic := model.NewTopic("Go", time.Now().UTC())
	topic.ID = "t1"
	topic.Categories.Book = append(topic.Categories.Book, model.Material{Type: model.TypeBook, Title: "TGPL"})
	require.NoError(t, m.ReplaceTopics([]model.Topic{topic}))

	topics, err = m.Topics()
	require.NoError(t, err)
	require.Len(t, topics, 1)
	assert.Equal(t, "Go", topics[0].Name)
	require.Len(t, topics[0].Categories.Book, 1)
	assert.Equal(t, "TGPL", topics[0].Categories.Book[0].Title)
}

func TestMirrorReplaceOverwrites(t *testing.T) {
	m := newMirror(t)

	require.NoError(t, m.ReplaceTopics([]model.Topic{model.NewTopic("A", time.Now())}))
	require.NoError(t, m.ReplaceTopics([]model.Topic{model.NewTopic("B", time.Now())}))

	topics, err := m.Topics()
	require.NoError(t, err)
	require.Len(t, topics, 1)
	assert.Equal(t, "B", topics[0].Name)
}

func TestMirrorSelectedTopic(t *testing.T) {
	m := newMirror(t)

	name, err := m.SelectedTopic()
	require.NoError(t, err)
	assert.Empty(t, name)

	require.NoError(t, m.SetSelectedTopic("Jazz"))
	name, err = m.SelectedTopic()
	require.NoError(t, err)
	assert.Equal(t, "Jazz", name)
}

func TestMirrorSignInLifecycle(t *testing.T) {
	m := newMirror(t)

	rec, err := m.SignIn()
	require.NoError(t, err)
	assert.Nil(t, rec)

	var save SignInRecord
	save.AuthToken = "tok"
	save.User.Email = "a@b.c"
	save.User.UID = "uid1"
	require.NoError(t, m.SaveSignIn(save))

	rec, err = m.SignIn()
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "uid1", rec.User.UID)

	require.NoError(t, m.ClearSignIn())
	rec, err = m.SignIn()
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestMirrorClear(t *testing.T) {
	m := newMirror(t)
	require.NoError(t, m.ReplaceTopics([]model.Topic{model.NewTopic("A", time.Now())}))
	require.NoError(t, m.SetSelectedTopic("A"))
	require.NoError(t, m.Clear())

	topics, err := m.Topics()
	require.NoError(t, err)
	assert.Empty(t, topics)
	name, err := m.SelectedTopic()
	require.NoError(t, err)
	assert.Empty(t, name)
}
