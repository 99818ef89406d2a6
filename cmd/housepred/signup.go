package main

import (
	"github.com/spf13/cobra"

	"github.com/nao1215/housepred/internal/profile"
	"github.com/nao1215/housepred/internal/report"
)

// NewSignupCmd creates the signup command.
func NewSignupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a new password-based profile",
		Long: `Signup creates a new profile with the "password" provider, replacing any
stored profile.

Name, email and password are required, the password must match its
confirmation and the terms must be accepted with --accept-terms. The
password is only compared; it is never stored.

Example:
  housepred signup --name "Jane Doe" --email jane@example.com \
    --password s3cret --confirm-password s3cret --accept-terms`,
		Args: cobra.NoArgs,
		RunE: runSignupCmd,
	}

	cmd.Flags().StringP("name", "n", "", "Display name")
	cmd.Flags().StringP("email", "e", "", "Email address")
	cmd.Flags().StringP("password", "p", "", "Password")
	cmd.Flags().String("confirm-password", "", "Password confirmation")
	cmd.Flags().Bool("accept-terms", false, "Accept the terms of service")
	addOutputFlags(cmd)

	return cmd
}

// runSignupCmd executes the signup command.
func runSignupCmd(cmd *cobra.Command, _ []string) error {
	form, err := signupFormFromFlags(cmd)
	if err != nil {
		return err
	}
	// Reject an invalid form before the database is opened.
	if err := form.Validate(); err != nil {
		return err
	}

	return runWithProfile(cmd, func(store *profile.Store, w report.Writer) error {
		ctx := cmd.Context()
		if _, err := store.Register(ctx, form); err != nil {
			return err
		}
		view, _ := store.View(ctx)
		return writeProfile(w, view)
	})
}

func signupFormFromFlags(cmd *cobra.Command) (profile.SignupForm, error) {
	var form profile.SignupForm
	fields := []struct {
		flag   string
		target *string
	}{
		{"name", &form.Name},
		{"email", &form.Email},
		{"password", &form.Password},
		{"confirm-password", &form.ConfirmPassword},
	}
	for _, f := range fields {
		v, err := cmd.Flags().GetString(f.flag)
		if err != nil {
			return profile.SignupForm{}, err
		}
		*f.target = v
	}
	accepted, err := cmd.Flags().GetBool("accept-terms")
	if err != nil {
		return profile.SignupForm{}, err
	}
	form.TermsAccepted = accepted
	return form, nil
}
