package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewRegisterCommand creates the register command.
func NewRegisterCommand(rootOpts *RootOptions) *cobra.Command {
	var signature string

	cmd := &cobra.Command{
		Use:   "register <address>",
		Short: "Register a wallet address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := rootOpts.app
			msg, err := a.auth.Register(cmd.Context(), args[0], signature)
			if err != nil {
				return err
			}
			return a.out.Message(msg)
		},
	}
	cmd.Flags().StringVar(&signature, "signature", "", "personal_sign signature proving wallet ownership")

	return cmd
}

// NewLoginCommand creates the login command.
func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	var signature string

	cmd := &cobra.Command{
		Use:   "login <address>",
		Short: "Log in and store the session token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := rootOpts.app
			msg, err := a.auth.Login(cmd.Context(), args[0], signature)
			if err != nil {
				return err
			}
			return a.out.Message(msg)
		},
	}
	cmd.Flags().StringVar(&signature, "signature", "", "personal_sign signature proving wallet ownership")

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := rootOpts.app
			if err := a.auth.Logout(cmd.Context()); err != nil {
				return err
			}
			return a.out.Message("Logged out.")
		},
	}
}

// NewMeCommand creates the me command.
func NewMeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the logged-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := rootOpts.app
			acc, err := a.auth.Me(cmd.Context())
			if err != nil {
				return err
			}

			var b strings.Builder
			fmt.Fprintf(&b, "id:      %s\n", acc.ID)
			fmt.Fprintf(&b, "wallet:  %s\n", acc.WalletAddress)
			fmt.Fprintf(&b, "photo:   %s", photoText(acc.ProfilePhoto, a.config.GatewayURL))
			return a.out.Result(acc, b.String())
		},
	}
}
