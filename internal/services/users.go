package services

import (
	"context"
	"time"

	"github.com/studylist/studylist-sync/internal/model"
	"github.com/studylist/studylist-sync/internal/store"
)

// UserService handles aggregate lifecycle and profile operations.
type UserService struct {
	store store.Store
	now   func() time.Time
}

func NewUserService(s store.Store) *UserService {
	return &UserService{store: s, now: func() time.Time { return time.Now().UTC() }}
}

// CreateUser persists a new aggregate. Exactly one aggregate may exist per
// external id; the store rejects duplicates with model.ErrConflict. A user
// created without topics is seeded with one default topic so the account is
// usable immediately after first sign-in.
func (s *UserService) CreateUser(ctx context.Context, u *model.User) (*model.User, error) {
	now := s.now()
	if u.Bio == "" {
		u.Bio = model.DefaultBio
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if len(u.Topics) == 0 {
		u.Topics = []model.Topic{model.NewTopic(model.DefaultTopicName, now)}
	}
	for i := range u.Topics {
		if u.Topics[i].ID == "" {
			u.Topics[i].ID = newTopicID()
		}
		if u.Topics[i].CreatedAt.IsZero() {
			u.Topics[i].CreatedAt = now
		}
		u.Topics[i].Categories.Normalize()
	}
	return s.store.Users().Create(ctx, u)
}

func (s *UserService) GetUser(ctx context.Context, externalID string) (*model.User, error) {
	return s.store.Users().GetByExternalID(ctx, externalID)
}

func (s *UserService) UpdateProfile(ctx context.Context, externalID, name, bio string) (*model.User, error) {
	return s.store.Users().UpdateProfile(ctx, externalID, name, bio)
}
