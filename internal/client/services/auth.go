// Package services contains application services for the chainvote CLI.
// This file defines the session service: register, login with a locally
// persisted token, logout, the authenticated "me" call and a liveness probe.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/chainvote/internal/client/client"
	"github.com/dmitrijs2005/chainvote/internal/client/models"
	"github.com/dmitrijs2005/chainvote/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/chainvote/internal/dbx"
)

// ErrNotLoggedIn is returned when an authenticated call finds no stored
// session.
var ErrNotLoggedIn = errors.New("not logged in, run `chainvote login <address>` first")

// AuthService defines session operations for the CLI.
//
// Contract:
//   - Register: create an account for a wallet address on the server.
//   - Login: authenticate and persist the token and wallet locally.
//   - Logout: wipe the local session.
//   - Wallet: the wallet of the stored session, or ErrNotLoggedIn.
//   - Me: fetch the caller's account with the stored token.
//   - Ping: check server liveness.
type AuthService interface {
	Register(ctx context.Context, address, signature string) (string, error)
	Login(ctx context.Context, address, signature string) (string, error)
	Logout(ctx context.Context) error
	Wallet(ctx context.Context) (string, error)
	Me(ctx context.Context) (*models.Account, error)
	Ping(ctx context.Context) error
}

// authService is the concrete AuthService backed by a remote Client and the
// local session database.
type authService struct {
	client client.Client
	db     *sql.DB
}

// NewAuthService constructs an AuthService bound to the given API client and DB.
func NewAuthService(client client.Client, db *sql.DB) AuthService {
	return &authService{client: client, db: db}
}

func (a *authService) getMetadataRepo() metadata.Repository {
	return metadata.NewSQLiteRepository(a.db)
}

func (a *authService) Register(ctx context.Context, address, signature string) (string, error) {
	return a.client.Register(ctx, address, signature)
}

// Login authenticates against the server and saves the session (token and
// wallet) in a single transaction.
func (a *authService) Login(ctx context.Context, address, signature string) (string, error) {
	token, msg, err := a.client.Login(ctx, address, signature)
	if err != nil {
		return "", err
	}

	if err := a.saveSession(ctx, address, token); err != nil {
		return "", fmt.Errorf("session saving error: %w", err)
	}
	a.client.SetToken(token)
	return msg, nil
}

func (a *authService) saveSession(ctx context.Context, address, token string) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, metadata.KeyToken, []byte(token)); err != nil {
			return err
		}
		return repo.Set(ctx, metadata.KeyWallet, []byte(address))
	})
}

// Logout wipes the local session. It does not contact the server.
func (a *authService) Logout(ctx context.Context) error {
	a.client.SetToken("")
	return a.getMetadataRepo().Clear(ctx)
}

func (a *authService) Wallet(ctx context.Context) (string, error) {
	v, err := a.getMetadataRepo().Get(ctx, metadata.KeyWallet)
	if err != nil {
		return "", err
	}
	if len(v) == 0 {
		return "", ErrNotLoggedIn
	}
	return string(v), nil
}

// Me loads the stored token and asks the server who it belongs to.
func (a *authService) Me(ctx context.Context) (*models.Account, error) {
	token, err := a.getMetadataRepo().Get(ctx, metadata.KeyToken)
	if err != nil {
		return nil, err
	}
	if len(token) == 0 {
		return nil, ErrNotLoggedIn
	}
	a.client.SetToken(string(token))

	acc, err := a.client.Me(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			return nil, fmt.Errorf("session rejected, log in again: %w", err)
		}
		return nil, err
	}
	return acc, nil
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}
