// Package services contains server-side business logic. This file implements
// UserService, which handles wallet registration, login and the current-user
// lookup behind bearer tokens.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/chainvote/internal/common"
	"github.com/dmitrijs2005/chainvote/internal/cryptox"
	"github.com/dmitrijs2005/chainvote/internal/logging"
	"github.com/dmitrijs2005/chainvote/internal/server/auth"
	"github.com/dmitrijs2005/chainvote/internal/server/config"
	"github.com/dmitrijs2005/chainvote/internal/server/models"
	"github.com/dmitrijs2005/chainvote/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/chainvote/internal/server/repositories/users"
	"github.com/dmitrijs2005/chainvote/internal/wallet"
)

// Account is the decrypted view of a user record returned to its owner.
type Account struct {
	ID            string
	WalletAddress string
	ProfilePhoto  *string
}

// UserService provides wallet-based account operations:
//   - Register: store a wallet address encrypted, keyed by its index
//   - Login: confirm the wallet is registered and mint an access token
//   - Me: resolve a token's user id back to the account
type UserService struct {
	repomanager                 repomanager.RepositoryManager
	cipher                      *cryptox.AddressCipher
	indexer                     *cryptox.Indexer
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	requireSignature            bool
	logger                      logging.Logger
}

// NewUserService constructs a UserService using the repository manager, the
// address cipher/indexer pair and server config.
func NewUserService(m repomanager.RepositoryManager, cipher *cryptox.AddressCipher, indexer *cryptox.Indexer,
	cfg *config.Config, logger logging.Logger) *UserService {
	return &UserService{
		repomanager:                 m,
		cipher:                      cipher,
		indexer:                     indexer,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		requireSignature:            cfg.RequireSignature,
		logger:                      logger.With("module", "users"),
	}
}

// Register creates a record for address. A second registration of the same
// account, in any letter case, yields common.ErrAlreadyRegistered.
func (s *UserService) Register(ctx context.Context, address, signature string) (*models.User, error) {
	addr, err := s.verifiedAddress(address, signature)
	if err != nil {
		return nil, err
	}

	index := s.indexer.Index(addr)

	var created *models.User
	err = s.repomanager.WithTx(ctx, func(ctx context.Context, repo users.Repository) error {
		_, err := repo.GetByWalletIndex(ctx, index)
		if err == nil {
			return common.ErrAlreadyRegistered
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("error searching user: %w", err)
		}

		created, err = repo.Create(ctx, &models.User{
			WalletAddress: s.cipher.Encrypt(addr),
			WalletIndex:   index,
		})
		if errors.Is(err, common.ErrorAlreadyExists) {
			return common.ErrAlreadyRegistered
		}
		if err != nil {
			return fmt.Errorf("error creating user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "user registered", "user_id", created.ID)
	return created, nil
}

// Login returns a bearer token for a registered wallet.
func (s *UserService) Login(ctx context.Context, address, signature string) (string, error) {
	addr, err := s.verifiedAddress(address, signature)
	if err != nil {
		return "", err
	}

	repo := s.repomanager.Users()

	user, err := repo.GetByWalletIndex(ctx, s.indexer.Index(addr))
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			return "", fmt.Errorf("error searching user: %w", err)
		}
		n, err := repo.Count(ctx)
		if err != nil {
			return "", fmt.Errorf("error counting users: %w", err)
		}
		if n == 0 {
			return "", common.ErrNoRegisteredUsers
		}
		return "", common.ErrWalletNotRegistered
	}

	stored, err := s.cipher.Decrypt(user.WalletAddress)
	if err != nil {
		return "", fmt.Errorf("error decrypting wallet address of user %s: %w", user.ID, err)
	}
	// an index collision would land here
	if !wallet.Equal(stored, addr) {
		return "", common.ErrWalletNotRegistered
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", fmt.Errorf("error generating token: %w", err)
	}

	s.logger.Info(ctx, "user logged in", "user_id", user.ID)
	return token, nil
}

// Me returns the decrypted account of userID.
func (s *UserService) Me(ctx context.Context, userID string) (*Account, error) {
	user, err := s.repomanager.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	addr, err := s.cipher.Decrypt(user.WalletAddress)
	if err != nil {
		return nil, fmt.Errorf("error decrypting wallet address of user %s: %w", user.ID, err)
	}

	return &Account{ID: user.ID, WalletAddress: addr, ProfilePhoto: user.ProfilePhoto}, nil
}

// verifiedAddress normalizes address and applies the signature policy: a
// supplied signature is always checked, a missing one is an error only when
// signatures are required.
func (s *UserService) verifiedAddress(address, signature string) (string, error) {
	if strings.TrimSpace(address) == "" {
		return "", common.ErrAddressRequired
	}

	addr, err := wallet.Normalize(address)
	if err != nil {
		return "", err
	}

	signature = strings.TrimSpace(signature)
	if signature == "" {
		if s.requireSignature {
			return "", common.ErrSignatureRequired
		}
		return addr, nil
	}

	if err := wallet.VerifySignature(addr, common.OwnershipMessage, signature); err != nil {
		return "", err
	}
	return addr, nil
}
