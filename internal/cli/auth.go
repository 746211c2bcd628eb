package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"cinequiz/internal/backend"
)

func newLoginCmd() *cobra.Command {
	var username string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(configPath)
			if err != nil {
				return err
			}
			if username == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Username: ")
				if _, err := fmt.Fscanln(cmd.InOrStdin(), &username); err != nil {
					return err
				}
			}
			password, err := readPassword(cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}

			resp, err := app.Backend.Login(cmd.Context(), backend.Credentials{
				Username: username,
				Password: password,
			})
			if err != nil {
				// Rejected credentials surface inline, never as a forced logout.
				var apiErr *backend.APIError
				if errors.As(err, &apiErr) {
					app.Notifier.Error("Login failed: " + apiErr.Error())
					return err
				}
				return err
			}
			app.Dedup.Reset(sessionExpiredKey)
			app.Notifier.Success("Logged in as " + resp.User.Username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(configPath)
			if err != nil {
				return err
			}
			app.Session.Logout()
			app.Notifier.Info("Logged out")
			return nil
		},
	}
}

func newRegisterCmd() *cobra.Command {
	var username, email string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(configPath)
			if err != nil {
				return err
			}
			password, err := readPassword(cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := app.Backend.Register(cmd.Context(), backend.Registration{
				Username: username,
				Email:    email,
				Password: password,
			}); err != nil {
				var apiErr *backend.APIError
				if errors.As(err, &apiErr) {
					app.Notifier.Error("Registration failed: " + apiErr.Error())
				}
				return err
			}
			app.Notifier.Success("Account created, you can log in now")
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&email, "email", "e", "", "email address")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newPasswordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Password recovery",
	}

	var email string
	forgot := &cobra.Command{
		Use:   "forgot",
		Short: "Request a reset email",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(configPath)
			if err != nil {
				return err
			}
			if err := app.Backend.ForgotPassword(cmd.Context(), email); err != nil {
				return err
			}
			app.Notifier.Info("If that address exists, a reset email is on its way")
			return nil
		},
	}
	forgot.Flags().StringVarP(&email, "email", "e", "", "account email")
	_ = forgot.MarkFlagRequired("email")

	var token string
	reset := &cobra.Command{
		Use:   "reset",
		Short: "Set a new password with a reset token",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(configPath)
			if err != nil {
				return err
			}
			password, err := readPassword(cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if err := app.Backend.ResetPassword(cmd.Context(), backend.PasswordReset{
				Token:    token,
				Password: password,
			}); err != nil {
				return err
			}
			app.Notifier.Success("Password updated")
			return nil
		},
	}
	reset.Flags().StringVarP(&token, "token", "t", "", "reset token from the email")
	_ = reset.MarkFlagRequired("token")

	cmd.AddCommand(forgot, reset)
	return cmd
}

func readPassword(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "Password: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
