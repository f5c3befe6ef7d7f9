package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/studylist/studylist-sync/client"
	"github.com/studylist/studylist-sync/identity"
)

func init() {
	var email, password string
	var signup bool

	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || password == "" {
				return fmt.Errorf("--email and --password required")
			}
			apiKey := os.Getenv("STUDYLIST_FIREBASE_API_KEY")
			if apiKey == "" {
				return fmt.Errorf("STUDYLIST_FIREBASE_API_KEY is required")
			}

			idc := identity.NewClient(apiKey)
			var sess *identity.Session
			var err error
			if signup {
				sess, err = idc.SignUp(cmd.Context(), email, password)
			} else {
				sess, err = idc.SignIn(cmd.Context(), email, password)
			}
			if err != nil {
				return err
			}

			m, err := openMirror()
			if err != nil {
				return err
			}
			defer func() { _ = m.Close() }()

			var rec client.SignInRecord
			rec.AuthToken = sess.RefreshToken()
			rec.User.Email = sess.Email()
			rec.User.UID = sess.UID()
			if err := m.SaveSignIn(rec); err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "signed in as %s (%s)\n", sess.Email(), sess.UID())
			return nil
		},
	}
	loginCmd.Flags().StringVarP(&email, "email", "e", "", "Account email (required)")
	loginCmd.Flags().StringVarP(&password, "password", "p", "", "Account password (required)")
	loginCmd.Flags().BoolVar(&signup, "signup", false, "Register a new account instead of signing in")
	rootCmd.AddCommand(loginCmd)

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Drop the saved session and wipe the local mirror",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := openMirror()
			if err != nil {
				return err
			}
			defer func() { _ = m.Close() }()
			// Sign-out drops everything, not just the session: mirrored
			// topics belong to the account that just left.
			return m.Clear()
		},
	}
	rootCmd.AddCommand(logoutCmd)
}
