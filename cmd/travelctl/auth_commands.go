package main

import (
	"fmt"

	"github.com/jrsteele09/go-travel-client/internal/utils"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newLoginCmd(d *deps) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := d.session.SignIn(cmd.Context(), email, password)
			if err != nil {
				return errors.Wrap(err, "sign-in failed")
			}
			fmt.Printf("Signed in as %s\n", session.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newSignupCmd(d *deps) *cobra.Command {
	var email, password, fullName string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			var namePtr *string
			if fullName != "" {
				namePtr = utils.Ptr(fullName)
			}
			session, err := d.session.SignUp(cmd.Context(), email, password, namePtr)
			if err != nil {
				return errors.Wrap(err, "sign-up failed")
			}
			fmt.Printf("Account created for %s\n", session.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().StringVar(&fullName, "name", "", "full name (optional)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			d.session.SignOut(cmd.Context())
			fmt.Println("Signed out")
			return nil
		},
	}
}

func newWhoamiCmd(d *deps) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			session := d.session.Resume(cmd.Context())
			if !session.Authenticated {
				fmt.Println("Not signed in")
				return nil
			}
			fmt.Printf("Signed in as %s (%s)\n", session.User.Email, utils.Value(session.User.FullName))
			if expiry, err := d.client.AccessTokenExpiry(); err == nil {
				fmt.Printf("Access token expires at %s\n", expiry.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
}

// requireSession resumes the persisted session and fails the command when it
// cannot be restored.
func requireSession(d *deps, cmd *cobra.Command) error {
	if session := d.session.Resume(cmd.Context()); !session.Authenticated {
		return errors.New("not signed in, run 'travelctl login' first")
	}
	return nil
}
