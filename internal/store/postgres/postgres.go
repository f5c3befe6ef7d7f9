package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/studylist/studylist-sync/internal/model"
	"github.com/studylist/studylist-sync/internal/store"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies
// connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs a Postgres store backed directly by database/sql.
// Each user aggregate is a single row; the topic tree lives in a JSONB column
// so ReplaceTopics is one atomic UPDATE.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Users() store.Users { return &users{db: s.db} }

func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// EnsureSchema creates the users table if it does not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
        CREATE TABLE IF NOT EXISTS users (
            external_id TEXT PRIMARY KEY,
            email       TEXT NOT NULL,
            name        TEXT NOT NULL,
            bio         TEXT NOT NULL,
            topics      JSONB NOT NULL DEFAULT '[]',
            created_at  TIMESTAMPTZ NOT NULL
        )`)
	return err
}

type users struct{ db *sql.DB }

func (u *users) Create(ctx context.Context, m *model.User) (*model.User, error) {
	topics, err := json.Marshal(m.Topics)
	if err != nil {
		return nil, err
	}
	created := m.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	res, err := u.db.ExecContext(ctx, `
        INSERT INTO users (external_id, email, name, bio, topics, created_at)
        VALUES ($1,$2,$3,$4,$5,$6)
        ON CONFLICT (external_id) DO NOTHING
    `, m.ExternalID, m.Email, m.Name, m.Bio, topics, created)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("user %s: %w", m.ExternalID, model.ErrConflict)
	}
	out := *m
	out.CreatedAt = created
	return &out, nil
}

func (u *users) GetByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	var out model.User
	var topics []byte
	row := u.db.QueryRowContext(ctx, `
        SELECT external_id, email, name, bio, topics, created_at
        FROM users WHERE external_id=$1
    `, externalID)
	if err := row.Scan(&out.ExternalID, &out.Email, &out.Name, &out.Bio, &topics, &out.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", externalID, model.ErrNotFound)
		}
		return nil, err
	}
	if err := json.Unmarshal(topics, &out.Topics); err != nil {
		return nil, err
	}
	return &out, nil
}

func (u *users) ReplaceTopics(ctx context.Context, externalID string, topics []model.Topic) error {
	data, err := json.Marshal(topics)
	if err != nil {
		return err
	}
	res, err := u.db.ExecContext(ctx, `UPDATE users SET topics=$2 WHERE external_id=$1`, externalID, data)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("user %s: %w", externalID, model.ErrNotFound)
	}
	return nil
}

func (u *users) UpdateProfile(ctx context.Context, externalID, name, bio string) (*model.User, error) {
	_, err := u.db.ExecContext(ctx, `
        UPDATE users
        SET name = CASE WHEN $2 <> '' THEN $2 ELSE name END,
            bio  = CASE WHEN $3 <> '' THEN $3 ELSE bio END
        WHERE external_id=$1
    `, externalID, name, bio)
	if err != nil {
		return nil, err
	}
	return u.GetByExternalID(ctx, externalID)
}
