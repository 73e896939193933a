package cli

import (
	"fmt"

	"github.com/dmitrijs2005/taskhub/internal/client/session"
	"github.com/spf13/cobra"
)

// getPassword is swapped in tests.
var getPassword = GetPassword

func newRegisterCommand(app *App) *cobra.Command {
	var name, email string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if name, err = app.prompt(name, "Enter name"); err != nil {
				return err
			}
			if email, err = app.prompt(email, "Enter email"); err != nil {
				return err
			}
			password, err := getPassword(app.out)
			if err != nil {
				return err
			}

			resp, err := app.api.Register(cmd.Context(), name, email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(app.out, "Registered %s <%s>\n", resp.User.Name, resp.User.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	return cmd
}

func newLoginCommand(app *App) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if email, err = app.prompt(email, "Enter email"); err != nil {
				return err
			}
			password, err := getPassword(app.out)
			if err != nil {
				return err
			}

			sess, value, err := app.bridge.SignIn(cmd.Context(), session.Credentials{Email: email, Password: password})
			if err != nil {
				return err
			}
			if err := writeSession(app.config.SessionFile, value); err != nil {
				return err
			}
			fmt.Fprintf(app.out, "Logged in as %s <%s>\n", sess.User.Name, sess.User.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	return cmd
}

func newWhoamiCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			sess, err := app.resume()
			if err != nil {
				return err
			}
			fmt.Fprintf(app.out, "%s <%s>\nid:      %s\nrole:    %s\nexpires: %s\n",
				sess.User.Name, sess.User.Email, sess.User.ID, sess.User.Role,
				sess.Expires.UTC().Format("2006-01-02 15:04:05 MST"))
			return nil
		},
	}
}

func newLogoutCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if err := removeSession(app.config.SessionFile); err != nil {
				return err
			}
			fmt.Fprintln(app.out, "Logged out")
			return nil
		},
	}
}
