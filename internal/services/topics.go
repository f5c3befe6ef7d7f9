package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/studylist/studylist-sync/internal/model"
	"github.com/studylist/studylist-sync/internal/store"
)

func newTopicID() string { return uuid.New().String() }

// TopicService resolves clips onto the topic tree. Each call performs a
// single read-modify-write cycle against the whole aggregate; the write in
// the store is atomic but the cycle itself is not serialized against other
// writers (see DESIGN.md).
type TopicService struct {
	store store.Store
	now   func() time.Time
}

func NewTopicService(s store.Store) *TopicService {
	return &TopicService{store: s, now: func() time.Time { return time.Now().UTC() }}
}

// AddMaterial appends one material to the bucket matching its type inside the
// located topic, creating the topic first when the locator is a name with no
// match. An id locator with no match fails; that asymmetry is deliberate.
// Returns the full updated topic sequence.
func (s *TopicService) AddMaterial(ctx context.Context, externalID string, loc model.TopicLocator, in model.MaterialInput) ([]model.Topic, error) {
	m, err := model.NewMaterial(in, s.now())
	if err != nil {
		return nil, err
	}

	user, err := s.store.Users().GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}

	idx := loc.Resolve(user.Topics)
	if idx < 0 {
		if loc.ByID() {
			return nil, fmt.Errorf("topic %s: %w", loc.Value(), model.ErrNotFound)
		}
		t := model.NewTopic(loc.Value(), s.now())
		t.ID = newTopicID()
		user.Topics = append(user.Topics, t)
		idx = len(user.Topics) - 1
	}

	// Older aggregates may be missing buckets; initialize lazily.
	user.Topics[idx].Categories.Normalize()
	bucket := user.Topics[idx].Categories.Bucket(m.Type)
	*bucket = append(*bucket, m)

	if err := s.store.Users().ReplaceTopics(ctx, externalID, user.Topics); err != nil {
		return nil, err
	}
	return user.Topics, nil
}

// AddTopic appends an empty topic with the given name. Duplicate names are
// rejected so name-based locators stay unambiguous.
func (s *TopicService) AddTopic(ctx context.Context, externalID, name string) ([]model.Topic, error) {
	if name == "" {
		return nil, fmt.Errorf("topic name required: %w", model.ErrValidation)
	}
	user, err := s.store.Users().GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if model.LocatorByName(name).Resolve(user.Topics) >= 0 {
		return nil, fmt.Errorf("topic %q: %w", name, model.ErrConflict)
	}
	t := model.NewTopic(name, s.now())
	t.ID = newTopicID()
	user.Topics = append(user.Topics, t)
	if err := s.store.Users().ReplaceTopics(ctx, externalID, user.Topics); err != nil {
		return nil, err
	}
	return user.Topics, nil
}

// RenameTopic changes a topic's name, located strictly by id.
func (s *TopicService) RenameTopic(ctx context.Context, externalID, topicID, name string) ([]model.Topic, error) {
	if name == "" {
		return nil, fmt.Errorf("topic name required: %w", model.ErrValidation)
	}
	user, err := s.store.Users().GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	idx := model.LocatorByID(topicID).Resolve(user.Topics)
	if idx < 0 {
		return nil, fmt.Errorf("topic %s: %w", topicID, model.ErrNotFound)
	}
	user.Topics[idx].Name = name
	if err := s.store.Users().ReplaceTopics(ctx, externalID, user.Topics); err != nil {
		return nil, err
	}
	return user.Topics, nil
}
