// Package httpapi exposes the wallet account and profile photo operations
// as a JSON HTTP API.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/dmitrijs2005/chainvote/internal/logging"
	"github.com/dmitrijs2005/chainvote/internal/server/config"
	"github.com/dmitrijs2005/chainvote/internal/server/models"
	"github.com/dmitrijs2005/chainvote/internal/server/pinning"
	"github.com/dmitrijs2005/chainvote/internal/server/services"
)

const (
	maxJSONBody     = 1 << 16
	multipartMemory = 8 << 20
	// room for boundaries, part headers and the walletAddress field around
	// a photo of the maximum size
	multipartOverhead = 64 << 10
	shutdownTimeout   = 5 * time.Second
	healthTimeout     = 2 * time.Second
)

type UserService interface {
	Register(ctx context.Context, address, signature string) (*models.User, error)
	Login(ctx context.Context, address, signature string) (string, error)
	Me(ctx context.Context, userID string) (*services.Account, error)
}

type ProfileService interface {
	UpdatePhoto(ctx context.Context, address string, file *pinning.File) (string, error)
	GetPhoto(ctx context.Context, address string) (*string, error)
}

// Pinger reports whether the user directory is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	address        string
	users          UserService
	profiles       ProfileService
	store          Pinger
	logger         logging.Logger
	jwtSecret      []byte
	maxUploadSize  int64
	allowedOrigins []string
}

func NewServer(cfg *config.Config, l logging.Logger, us UserService, ps ProfileService, store Pinger) *Server {
	return &Server{
		address:        cfg.EndpointAddrHTTP,
		users:          us,
		profiles:       ps,
		store:          store,
		logger:         l.With("module", "http_server"),
		jwtSecret:      []byte(cfg.SecretKey),
		maxUploadSize:  cfg.MaxUploadSize,
		allowedOrigins: cfg.AllowedOrigins,
	}
}

// Handler returns the routed API wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /register", s.handleRegister)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("POST /updateProfile", s.handleUpdateProfile)
	mux.HandleFunc("GET /profile/{walletAddress}", s.handleGetProfile)
	mux.Handle("GET /me", s.requireAuth(http.HandlerFunc(s.handleMe)))
	mux.HandleFunc("GET /healthz", s.handleHealth)

	c := cors.New(cors.Options{
		AllowedOrigins:   s.allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
	})

	return c.Handler(s.withRequestID(s.withLogging(s.withRecover(mux))))
}

func (s *Server) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, "HTTP shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
