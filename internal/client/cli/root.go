package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands. Empty values leave the
// loaded configuration alone.
type RootOptions struct {
	ConfigPath string
	ServerURL  string
	Home       string
	GatewayURL string
	Output     string // "auto" | "text" | "json"
	Verbose    bool

	app *App
}

// ValidOutputs defines the allowed output modes.
var ValidOutputs = []string{"auto", "text", "json"}

// NewRootCommand creates the root command for the chainvote CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "chainvote",
		Short:         "chainvote - wallet accounts and profile photos",
		Long:          "Command-line client for the chainvote API: register wallets, log in and manage profile photos.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidOutputs, opts.Output) {
				return fmt.Errorf("invalid output %q: must be one of %v", opts.Output, ValidOutputs)
			}
			app, err := NewApp(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			opts.app = app
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if opts.app == nil {
				return nil
			}
			err := opts.app.Close()
			opts.app = nil
			return err
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to JSON config file")
	cmd.PersistentFlags().StringVar(&opts.ServerURL, "server", "", "API base URL (default http://127.0.0.1:5003)")
	cmd.PersistentFlags().StringVar(&opts.Home, "home", "", "directory for local session data (default ~/.chainvote)")
	cmd.PersistentFlags().StringVar(&opts.GatewayURL, "gateway", "", "IPFS gateway prefix (default https://gateway.pinata.cloud/ipfs/)")
	cmd.PersistentFlags().StringVarP(&opts.Output, "output", "o", "auto", "output format (auto|text|json)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log diagnostics to stderr")

	cmd.AddCommand(NewRegisterCommand(opts))
	cmd.AddCommand(NewLoginCommand(opts))
	cmd.AddCommand(NewLogoutCommand(opts))
	cmd.AddCommand(NewMeCommand(opts))
	cmd.AddCommand(NewProfileCommand(opts))
	cmd.AddCommand(NewUploadCommand(opts))
	cmd.AddCommand(NewStatusCommand(opts))

	return cmd
}
