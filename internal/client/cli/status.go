package cli

import (
	"context"
	"time"

	"github.com/dmitrijs2005/chainvote/internal/logging"
	"github.com/spf13/cobra"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type statusOutput struct {
	Server string `json:"server"`
	Status Mode   `json:"status"`
	Error  string `json:"error,omitempty"`
}

// NewStatusCommand creates the status command. With --watch it keeps
// probing and prints every online/offline switch until interrupted.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	var watch bool
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check whether the server is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := rootOpts.app
			ctx := cmd.Context()

			report := func(mode Mode, err error) error {
				res := statusOutput{Server: a.config.ServerURL, Status: mode}
				if err != nil {
					res.Error = err.Error()
				}
				return a.out.Result(res, a.config.ServerURL+": "+string(mode))
			}

			if !watch {
				err := a.auth.Ping(ctx)
				return report(modeOf(err), err)
			}

			if interval <= 0 {
				interval = a.config.WatchInterval
			}
			var outErr error
			WatchOnlineStatus(ctx, a.auth.Ping, interval, a.logger, func(mode Mode, err error) {
				if outErr == nil {
					outErr = report(mode, err)
				}
			})
			return outErr
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep probing until interrupted")
	cmd.Flags().DurationVar(&interval, "interval", 0, "probe interval for --watch (default from config)")

	return cmd
}

func modeOf(err error) Mode {
	if err != nil {
		return ModeOffline
	}
	return ModeOnline
}

// WatchOnlineStatus pings immediately and then on every tick, calling
// onChange for the first result and whenever the mode flips. It returns
// when ctx is done.
func WatchOnlineStatus(ctx context.Context, ping func(context.Context) error, interval time.Duration, logger logging.Logger, onChange func(Mode, error)) {
	var current Mode

	check := func() {
		pctx, cancel := context.WithTimeout(ctx, interval)
		err := ping(pctx)
		cancel()
		if ctx.Err() != nil {
			return
		}

		mode := modeOf(err)
		if mode != current {
			current = mode
			logger.Info(ctx, "switched mode", "mode", mode)
			onChange(mode, err)
		}
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	check()
	for {
		select {
		case <-ticker.C:
			check()
		case <-ctx.Done():
			return
		}
	}
}
