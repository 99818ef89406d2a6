package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nao1215/housepred/internal/config"
	"github.com/nao1215/housepred/internal/model"
	"github.com/nao1215/housepred/internal/profile"
	"github.com/nao1215/housepred/internal/report"
)

// NewProfileCmd creates the profile command and its subcommands.
func NewProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show, edit or clear the local user profile",
		Long: `Profile manages the user profile stored in the local database.

Examples:
  # Show the current profile
  housepred profile show

  # Change only the avatar, keeping name and email
  housepred profile save --avatar https://example.com/me.png

  # Sign out
  housepred profile clear`,
		Args: cobra.NoArgs,
	}

	cmd.AddCommand(newProfileShowCmd())
	cmd.AddCommand(newProfileSaveCmd())
	cmd.AddCommand(newProfileClearCmd())

	return cmd
}

func newProfileShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the stored profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithProfile(cmd, func(store *profile.Store, w report.Writer) error {
				view, _ := store.View(cmd.Context())
				return writeProfile(w, view)
			})
		},
	}
	addOutputFlags(cmd)
	return cmd
}

func newProfileSaveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save profile fields",
		Long: `Save updates the stored profile. Only the fields given as flags change;
the others keep their stored values. A blank name is saved as "User".
The sign-in provider of an existing profile is kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithProfile(cmd, func(store *profile.Store, w report.Writer) error {
				ctx := cmd.Context()

				var draft profile.Draft
				if current, ok := store.Load(ctx); ok {
					draft = profile.DraftFrom(current)
				}
				if err := applyDraftFlags(cmd, &draft); err != nil {
					return err
				}

				if _, err := store.Save(ctx, draft); err != nil {
					return err
				}
				view, _ := store.View(ctx)
				return writeProfile(w, view)
			})
		},
	}

	cmd.Flags().StringP("name", "n", "", "Display name")
	cmd.Flags().StringP("email", "e", "", "Email address")
	cmd.Flags().StringP("avatar", "a", "", "Avatar image URL")
	addOutputFlags(cmd)

	return cmd
}

// applyDraftFlags copies the explicitly set flags onto d. An empty value
// clears the field.
func applyDraftFlags(cmd *cobra.Command, d *profile.Draft) error {
	fields := []struct {
		flag   string
		target *string
	}{
		{"name", &d.Name},
		{"email", &d.Email},
		{"avatar", &d.Avatar},
	}
	for _, f := range fields {
		if !cmd.Flags().Changed(f.flag) {
			continue
		}
		v, err := cmd.Flags().GetString(f.flag)
		if err != nil {
			return err
		}
		*f.target = v
	}
	return nil
}

func newProfileClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "clear",
		Aliases: []string{"signout", "logout"},
		Short:   "Remove the stored profile (sign out)",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithProfile(cmd, func(store *profile.Store, _ report.Writer) error {
				if err := store.Clear(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
				return nil
			})
		},
	}
}

// runWithProfile opens the profile store and calls fn with it.
func runWithProfile(cmd *cobra.Command, fn func(store *profile.Store, w report.Writer) error) error {
	return runWithOutput(cmd, func(cfg *config.Config, logger *slog.Logger, w report.Writer) error {
		store, closeStore, err := openProfileStore(cfg, logger)
		if err != nil {
			return err
		}
		defer closeStore() //nolint:errcheck // read-mostly database

		return fn(store, w)
	})
}

func writeProfile(w report.Writer, view *model.ProfileView) error {
	if _, err := w.WriteProfile(view); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
