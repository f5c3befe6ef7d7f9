package store

import (
	"context"

	"github.com/studylist/studylist-sync/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (postgres, sqlite,
// memory). The user aggregate is the unit of consistency: each user row holds
// the full topic tree and every write replaces it atomically.
type Store interface {
	Users() Users
	// HealthPing verifies the backing store is reachable.
	HealthPing(ctx context.Context) error
}

type Users interface {
	// Create persists a new aggregate. Returns model.ErrConflict when an
	// aggregate with the same external id already exists; there is no merge.
	Create(ctx context.Context, u *model.User) (*model.User, error)

	// GetByExternalID looks an aggregate up by the identity-provider subject
	// id. Returns model.ErrNotFound when absent.
	GetByExternalID(ctx context.Context, externalID string) (*model.User, error)

	// ReplaceTopics writes the entire topic sequence back to the aggregate as
	// one atomic mutation. Returns model.ErrNotFound when the user is absent.
	ReplaceTopics(ctx context.Context, externalID string, topics []model.Topic) error

	// UpdateProfile mutates the profile scalars only.
	UpdateProfile(ctx context.Context, externalID, name, bio string) (*model.User, error)
}
