package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/studylist/studylist-sync/client"
	"github.com/studylist/studylist-sync/identity"
	"github.com/studylist/studylist-sync/internal/auth"
)

var (
	apiFlag string
	devFlag bool
	uidFlag string
	rootCmd = &cobra.Command{
		Use:   "studylistctl",
		Short: "CLI client for the studylist sync REST API",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:8080", "Sync service base URL")
	rootCmd.PersistentFlags().BoolVar(&devFlag, "dev", false, "Use the local development token instead of a signed-in session")
	rootCmd.PersistentFlags().StringVarP(&uidFlag, "uid", "u", "", "Account id (required with --dev, otherwise taken from the saved sign-in)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func mirrorPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".studylist", "mirror.db"), nil
}

func openMirror() (*client.Mirror, error) {
	path, err := mirrorPath()
	if err != nil {
		return nil, err
	}
	return client.OpenMirror(path)
}

// devTokens satisfies identity.TokenSource with the shared dev token.
type devTokens struct{}

func (devTokens) Token(ctx context.Context) (string, error) { return auth.LocalDevToken, nil }

// newSDK builds a client from either the dev token or the saved sign-in,
// and resolves the account id the commands should operate on.
func newSDK(m *client.Mirror) (*client.Client, string, error) {
	if devFlag {
		if uidFlag == "" {
			return nil, "", fmt.Errorf("--uid is required with --dev")
		}
		c, err := client.New(apiFlag, devTokens{}, client.WithMirror(m))
		return c, uidFlag, err
	}

	rec, err := m.SignIn()
	if err != nil {
		return nil, "", err
	}
	if rec == nil {
		return nil, "", fmt.Errorf("not signed in; run studylistctl login first")
	}
	apiKey := os.Getenv("STUDYLIST_FIREBASE_API_KEY")
	if apiKey == "" {
		return nil, "", fmt.Errorf("STUDYLIST_FIREBASE_API_KEY is required")
	}
	sess := identity.NewClient(apiKey).Restore(rec.User.UID, rec.User.Email, rec.AuthToken)

	uid := uidFlag
	if uid == "" {
		uid = rec.User.UID
	}
	c, err := client.New(apiFlag, sess,
		client.WithMirror(m),
		client.WithProfile(rec.User.Email, rec.User.Email))
	return c, uid, err
}
