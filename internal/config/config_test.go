package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveDefaultsSQLite(t *testing.T) {
	cfg := &Config{DBDriver: "sqlite", AuthMode: "static"}
	require.NoError(t, cfg.ResolveDefaults())
	require.NotEmpty(t, cfg.SQLitePath)
}

func TestResolveDefaultsPostgresRequiresDSN(t *testing.T) {
	cfg := &Config{DBDriver: "postgres", AuthMode: "static"}
	require.Error(t, cfg.ResolveDefaults())

	cfg.PostgresDSN = "postgres://localhost/studylist"
	require.NoError(t, cfg.ResolveDefaults())
}

func TestResolveDefaultsRejectsUnknownDriver(t *testing.T) {
	cfg := &Config{DBDriver: "mongo", AuthMode: "static"}
	require.Error(t, cfg.ResolveDefaults())
}

func TestResolveDefaultsIdentityToolkitRequiresKey(t *testing.T) {
	cfg := &Config{DBDriver: "sqlite", AuthMode: "identitytoolkit"}
	require.Error(t, cfg.ResolveDefaults())

	cfg.FirebaseAPIKey = "k"
	require.NoError(t, cfg.ResolveDefaults())
}

func TestNewReadsEnvironment(t *testing.T) {
	t.Setenv("STUDYLIST_HTTP_PORT", "9191")
	t.Setenv("STUDYLIST_DB_DRIVER", "sqlite")
	t.Setenv("STUDYLIST_SQLITE_PATH", t.TempDir()+"/s.db")

	cfg, err := New()
	require.NoError(t, err)
	require.Equal(t, 9191, cfg.HTTPPort)
	require.Equal(t, ":9191", cfg.GetHTTPAddr())
}
