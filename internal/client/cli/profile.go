package cli

import (
	"fmt"

	"github.com/dmitrijs2005/chainvote/internal/client/services"
	"github.com/spf13/cobra"
)

// NewProfileCommand creates the profile command. Without an argument it
// shows the logged-in wallet.
func NewProfileCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "profile [address]",
		Short: "Show a wallet's profile photo",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := rootOpts.app
			ctx := cmd.Context()

			address, err := addressOrSession(cmd, a, args)
			if err != nil {
				return err
			}

			p, err := a.profiles.Profile(ctx, address)
			if err != nil {
				return err
			}
			return a.out.Result(p, fmt.Sprintf("wallet:  %s\nphoto:   %s", p.WalletAddress, photoText(p.ProfilePhoto, a.config.GatewayURL)))
		},
	}
}

type uploadOutput struct {
	Message    string `json:"message"`
	Hash       string `json:"hash"`
	GatewayURL string `json:"gatewayUrl"`
}

// NewUploadCommand creates the upload command.
func NewUploadCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <address> <file>",
		Short: "Upload a profile photo for a wallet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := rootOpts.app

			hash, msg, err := a.profiles.Upload(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			res := uploadOutput{Message: msg, Hash: hash, GatewayURL: services.GatewayURL(a.config.GatewayURL, hash)}
			return a.out.Result(res, fmt.Sprintf("%s\nhash:    %s\nurl:     %s", msg, res.Hash, res.GatewayURL))
		},
	}
}

func addressOrSession(cmd *cobra.Command, a *App, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	return a.auth.Wallet(cmd.Context())
}

func photoText(cid *string, gateway string) string {
	if cid == nil || *cid == "" {
		return "(none)"
	}
	return fmt.Sprintf("%s (%s)", *cid, services.GatewayURL(gateway, *cid))
}
