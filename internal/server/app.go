// Package server wires configuration, storage, pinning and the HTTP and gRPC
// endpoints into a runnable application with graceful shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/chainvote/internal/cryptox"
	"github.com/dmitrijs2005/chainvote/internal/logging"
	"github.com/dmitrijs2005/chainvote/internal/server/config"
	"github.com/dmitrijs2005/chainvote/internal/server/httpapi"
	"github.com/dmitrijs2005/chainvote/internal/server/pinning"
	"github.com/dmitrijs2005/chainvote/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/chainvote/internal/server/services"

	gs "github.com/dmitrijs2005/chainvote/internal/server/grpc"
)

type App struct {
	config         *config.Config
	logger         logging.Logger
	repomanager    repomanager.RepositoryManager
	userService    *services.UserService
	profileService *services.ProfileService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.NewJSONLogger(os.Stdout, c.LogLevel)
	if err != nil {
		return nil, err
	}

	cipher, err := cryptox.NewAddressCipher([]byte(c.EncryptionKey))
	if err != nil {
		return nil, fmt.Errorf("address cipher: %w", err)
	}
	indexer, err := cryptox.NewIndexer([]byte(c.EncryptionKey))
	if err != nil {
		return nil, fmt.Errorf("wallet indexer: %w", err)
	}

	rm, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx); err != nil {
		_ = rm.Close()
		return nil, fmt.Errorf("db migrations error: %w", err)
	}

	pinner, err := pinning.New(ctx, c)
	if err != nil {
		_ = rm.Close()
		return nil, fmt.Errorf("pinning init error: %w", err)
	}

	us := services.NewUserService(rm, cipher, indexer, c, logger)
	ps := services.NewProfileService(rm, indexer, pinner, c, logger)

	return &App{config: c, logger: logger, repomanager: rm, userService: us, profileService: ps}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config, app.logger, app.userService, app.profileService, app.repomanager)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := gs.NewHealthServer(app.config.EndpointAddrGRPC, app.logger, app.repomanager, app.config.HealthCheckInterval)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is canceled, a termination signal arrives or one of
// the servers fails, then releases the store.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.repomanager.Close(); err != nil {
		app.logger.Error(ctx, "closing store", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
