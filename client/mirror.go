package client

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/studylist/studylist-sync/internal/model"
)

// Mirror is a SQLite-backed local copy of the signed-in account's state:
// the topic tree, the selected topic and the sign-in record. It stands in
// for the server's answers while offline and survives restarts.
type Mirror struct {
	db *sql.DB
}

// SignInRecord is the persisted sign-in state of one account.
type SignInRecord struct {
	AuthToken string `json:"authToken"`
	User      struct {
		Email string `json:"email"`
		UID   string `json:"uid"`
	} `json:"user"`
}

// OpenMirror opens (or creates) the mirror database at path.
func OpenMirror(path string) (*Mirror, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS kv (
            key        TEXT PRIMARY KEY,
            value      TEXT NOT NULL,
            updated_at TIMESTAMP NOT NULL
        )`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Mirror{db: db}, nil
}

const (
	keyTopics        = "topics"
	keySelectedTopic = "selectedTopic"
	keySignIn        = "signIn"
)

func (m *Mirror) put(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	_, err = m.db.Exec(`
        INSERT INTO kv (key, value, updated_at) VALUES (?,?,?)
        ON CONFLICT (key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at
    `, key, string(data), time.Now().UTC())
	return err
}

func (m *Mirror) get(key string, out interface{}) (bool, error) {
	var value string
	err := m.db.QueryRow(`SELECT value FROM kv WHERE key=?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal([]byte(value), out)
}

func (m *Mirror) delete(key string) error {
	_, err := m.db.Exec(`DELETE FROM kv WHERE key=?`, key)
	return err
}

// ReplaceTopics overwrites the mirrored topic tree.
func (m *Mirror) ReplaceTopics(topics []model.Topic) error {
	return m.put(keyTopics, topics)
}

// Topics returns the mirrored topic tree, or an empty slice when nothing
// has been mirrored yet.
func (m *Mirror) Topics() ([]model.Topic, error) {
	var topics []model.Topic
	ok, err := m.get(keyTopics, &topics)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []model.Topic{}, nil
	}
	return topics, nil
}

// SetSelectedTopic remembers the topic the user last targeted.
func (m *Mirror) SetSelectedTopic(name string) error {
	return m.put(keySelectedTopic, name)
}

// SelectedTopic returns the remembered topic name, empty when unset.
func (m *Mirror) SelectedTopic() (string, error) {
	var name string
	ok, err := m.get(keySelectedTopic, &name)
	if err != nil || !ok {
		return "", err
	}
	return name, nil
}

// SaveSignIn persists the sign-in record.
func (m *Mirror) SaveSignIn(rec SignInRecord) error {
	return m.put(keySignIn, rec)
}

// SignIn returns the persisted sign-in record, nil when signed out.
func (m *Mirror) SignIn() (*SignInRecord, error) {
	var rec SignInRecord
	ok, err := m.get(keySignIn, &rec)
	if err != nil || !ok {
		return nil, err
	}
	return &rec, nil
}

// ClearSignIn drops the sign-in record but keeps mirrored data.
func (m *Mirror) ClearSignIn() error {
	return m.delete(keySignIn)
}

// Clear wipes everything the mirror holds.
func (m *Mirror) Clear() error {
	_, err := m.db.Exec(`DELETE FROM kv`)
	return err
}

// Close closes the underlying database.
func (m *Mirror) Close() error {
	return m.db.Close()
}
