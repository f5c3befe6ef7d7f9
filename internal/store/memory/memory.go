// Package memory provides an in-process Store used by unit tests and
// as a zero-dependency fallback for local experiments.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/studylist/studylist-sync/internal/model"
	"github.com/studylist/studylist-sync/internal/store"
)

type memStore struct {
	mu    sync.Mutex
	users map[string]*model.User
}

// New returns an empty in-memory store.
func New() store.Store {
	return &memStore{users: make(map[string]*model.User)}
}

func (s *memStore) Users() store.Users                   { return (*users)(s) }
func (s *memStore) HealthPing(ctx context.Context) error { return ctx.Err() }

type users memStore

// clone round-trips through JSON so callers never alias stored state.
func clone(u *model.User) *model.User {
	data, err := json.Marshal(u)
	if err != nil {
		panic(err)
	}
	var out model.User
	if err := json.Unmarshal(data, &out); err != nil {
		panic(err)
	}
	return &out
}

func (s *users) Create(ctx context.Context, u *model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ExternalID]; ok {
		return nil, fmt.Errorf("user %s: %w", u.ExternalID, model.ErrConflict)
	}
	s.users[u.ExternalID] = clone(u)
	return clone(u), nil
}

func (s *users) GetByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[externalID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", externalID, model.ErrNotFound)
	}
	return clone(u), nil
}

func (s *users) ReplaceTopics(ctx context.Context, externalID string, topics []model.Topic) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[externalID]
	if !ok {
		return fmt.Errorf("user %s: %w", externalID, model.ErrNotFound)
	}
	cp := clone(u)
	cp.Topics = nil
	tmp := clone(&model.User{Topics: topics})
	cp.Topics = tmp.Topics
	s.users[externalID] = cp
	return nil
}

func (s *users) UpdateProfile(ctx context.Context, externalID, name, bio string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[externalID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", externalID, model.ErrNotFound)
	}
	if name != "" {
		u.Name = name
	}
	if bio != "" {
		u.Bio = bio
	}
	return clone(u), nil
}
