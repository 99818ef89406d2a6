package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// errPredictionFailed makes the process exit non-zero after a failed
// prediction. The failure message has already been printed.
var errPredictionFailed = errors.New("prediction failed")

// NewRootCmd creates the root command for housepred.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "housepred",
		Short: "House price prediction client",
		Long: `housepred collects the 13 Boston housing features, sends them to a
prediction backend and prints the predicted price.

It also keeps a local user profile (name, email, avatar) that can be
created with "signup", edited with "profile save" and removed with
"profile clear".

The backend defaults to http://localhost:5000. Use "housepred init" to
create a configuration file.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .housepred in current or home directory)")
	cmd.PersistentFlags().String("data-dir", "",
		"Directory of the profile database (default: XDG data directory)")

	cmd.AddCommand(NewPredictCmd())
	cmd.AddCommand(NewSampleCmd())
	cmd.AddCommand(NewProfileCmd())
	cmd.AddCommand(NewSignupCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		if !errors.Is(err, errPredictionFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
