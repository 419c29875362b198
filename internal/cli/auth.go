package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roxiler/storerating-client/internal/core/domain"
	"github.com/roxiler/storerating-client/internal/forms"
)

// ── Session commands ──

func newLoginCommand(a *app) *cobra.Command {
	var form forms.LoginForm
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if form.Password, err = secret(cmd, form.Password, "Password"); err != nil {
				return err
			}
			route, err := a.auth.Login(cmd.Context(), form)
			if err != nil {
				return failed(err, "Login failed")
			}
			u := a.session.CurrentUser()
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", u.Email, u.Role)
			fmt.Fprintf(cmd.OutOrStdout(), "Continue at %s\n", route)
			return nil
		},
	}
	cmd.Flags().StringVar(&form.Email, "email", "", "account email")
	cmd.Flags().StringVar(&form.Password, "password", "", "account password (read from stdin when omitted)")
	return cmd
}

func newSignupCommand(a *app) *cobra.Command {
	var form forms.SignupForm
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a user account and sign in",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if form.Password, err = secret(cmd, form.Password, "Password"); err != nil {
				return err
			}
			if form.ConfirmPassword == "" {
				form.ConfirmPassword = form.Password
			}
			route, err := a.auth.Signup(cmd.Context(), form)
			if err != nil {
				return failed(err, "Signup failed")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Account created for %s\n", a.session.CurrentUser().Email)
			fmt.Fprintf(cmd.OutOrStdout(), "Continue at %s\n", route)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&form.Name, "name", "", "full name (20 to 60 characters)")
	f.StringVar(&form.Email, "email", "", "account email")
	f.StringVar(&form.Password, "password", "", "password (read from stdin when omitted)")
	f.StringVar(&form.ConfirmPassword, "confirm", "", "password confirmation (defaults to --password)")
	f.StringVar(&form.Address, "address", "", "postal address")
	return cmd
}

func newLogoutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			route := a.auth.Logout(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "Signed out\nContinue at %s\n", route)
			return nil
		},
	}
}

func newWhoamiCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			u := a.session.CurrentUser()
			if u == nil {
				return &routeError{got: domain.RouteLogin}
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "ID:      %d\n", u.ID)
			fmt.Fprintf(w, "Name:    %s\n", u.Name)
			fmt.Fprintf(w, "Email:   %s\n", u.Email)
			fmt.Fprintf(w, "Role:    %s\n", u.Role)
			if u.Address != "" {
				fmt.Fprintf(w, "Address: %s\n", u.Address)
			}
			fmt.Fprintf(w, "Home:    %s\n", domain.LandingRoute(u.Role))
			return nil
		},
	}
}

func newPasswordCommand(a *app) *cobra.Command {
	var form forms.PasswordForm
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Change the password of the signed-in account",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.session.CurrentUser() == nil {
				return &routeError{got: domain.RouteLogin}
			}
			if form.ConfirmPassword == "" {
				form.ConfirmPassword = form.NewPassword
			}
			if err := a.auth.UpdatePassword(cmd.Context(), form); err != nil {
				return failed(err, "Failed to update password")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Password updated successfully!")
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&form.CurrentPassword, "current", "", "current password")
	f.StringVar(&form.NewPassword, "new", "", "new password")
	f.StringVar(&form.ConfirmPassword, "confirm", "", "new password confirmation (defaults to --new)")
	return cmd
}
