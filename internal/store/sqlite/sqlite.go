package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/studylist/studylist-sync/internal/model"
	"github.com/studylist/studylist-sync/internal/store"
)

// Open opens (or creates) a SQLite database at the given path and enables WAL
// journal mode.
func Open(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the users table if it does not exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS users (
            external_id TEXT PRIMARY KEY,
            email       TEXT NOT NULL,
            name        TEXT NOT NULL,
            bio         TEXT NOT NULL,
            topics      TEXT NOT NULL DEFAULT '[]',
            created_at  TIMESTAMP NOT NULL
        )`)
	return err
}

// NewWithDB constructs a SQLite store. Aggregates are stored the same way as
// in the Postgres driver: one row per user with the topic tree as JSON.
func NewWithDB(db *sql.DB) store.Store { return &sqliteStore{db: db} }

type sqliteStore struct{ db *sql.DB }

func (s *sqliteStore) Users() store.Users { return &users{db: s.db} }

func (s *sqliteStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
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
        VALUES (?,?,?,?,?,?)
        ON CONFLICT (external_id) DO NOTHING
    `, m.ExternalID, m.Email, m.Name, m.Bio, string(topics), created)
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
	var topics string
	row := u.db.QueryRowContext(ctx, `
        SELECT external_id, email, name, bio, topics, created_at
        FROM users WHERE external_id=?
    `, externalID)
	if err := row.Scan(&out.ExternalID, &out.Email, &out.Name, &out.Bio, &topics, &out.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", externalID, model.ErrNotFound)
		}
		return nil, err
	}
	if err := json.Unmarshal([]byte(topics), &out.Topics); err != nil {
		return nil, err
	}
	return &out, nil
}

func (u *users) ReplaceTopics(ctx context.Context, externalID string, topics []model.Topic) error {
	data, err := json.Marshal(topics)
	if err != nil {
		return err
	}
	res, err := u.db.ExecContext(ctx, `UPDATE users SET topics=? WHERE external_id=?`, string(data), externalID)
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
        SET name = CASE WHEN ? <> '' THEN ? ELSE name END,
            bio  = CASE WHEN ? <> '' THEN ? ELSE bio END
        WHERE external_id=?
    `, name, name, bio, bio, externalID)
	if err != nil {
		return nil, err
	}
	return u.GetByExternalID(ctx, externalID)
}
