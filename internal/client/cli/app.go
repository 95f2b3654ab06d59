package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/dmitrijs2005/chainvote/internal/client/client"
	"github.com/dmitrijs2005/chainvote/internal/client/config"
	"github.com/dmitrijs2005/chainvote/internal/client/services"
	"github.com/dmitrijs2005/chainvote/internal/filex"
	"github.com/dmitrijs2005/chainvote/internal/logging"
)

// SessionFile is the sqlite database kept under the home directory.
const SessionFile = "session.db"

// App wires configuration, the local session and the API services for one
// command invocation.
type App struct {
	config   *config.Config
	repos    *client.Repositories
	auth     services.AuthService
	profiles services.ProfileService
	logger   logging.Logger
	out      *printer
}

// NewApp loads configuration (defaults, JSON, env, then flags in opts),
// opens the session database and builds the services.
func NewApp(ctx context.Context, opts *RootOptions, stdout, stderr io.Writer) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	applyFlags(cfg, opts)

	var logger logging.Logger = logging.Nop{}
	if opts.Verbose {
		l, err := logging.NewJSONLogger(stderr, "debug")
		if err != nil {
			return nil, err
		}
		logger = l
	}

	home, err := filex.EnsureDir(cfg.Home)
	if err != nil {
		return nil, fmt.Errorf("prepare home: %w", err)
	}

	dbPath := filepath.Join(home, SessionFile)
	repos, err := client.InitDatabase(ctx, dbPath)
	if err != nil {
		return nil, fmt.Errorf("open session %s: %w", dbPath, err)
	}
	logger.Debug(ctx, "session opened", "path", dbPath, "server", cfg.ServerURL)

	api := client.NewHTTPClient(cfg.ServerURL, &http.Client{Timeout: cfg.RequestTimeout})

	return &App{
		config:   cfg,
		repos:    repos,
		auth:     services.NewAuthService(api, repos.DB),
		profiles: services.NewProfileService(api, cfg.GatewayURL),
		logger:   logger,
		out:      newPrinter(stdout, opts.Output),
	}, nil
}

// Close releases the session database.
func (a *App) Close() error {
	return a.repos.Close()
}

func applyFlags(cfg *config.Config, opts *RootOptions) {
	if opts.ServerURL != "" {
		cfg.ServerURL = opts.ServerURL
	}
	if opts.Home != "" {
		cfg.Home = opts.Home
	}
	if opts.GatewayURL != "" {
		cfg.GatewayURL = opts.GatewayURL
	}
}
