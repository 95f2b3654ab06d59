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
	"github.com/dmitrijs2005/chainvote/internal/server/config"
	"github.com/dmitrijs2005/chainvote/internal/server/pinning"
	"github.com/dmitrijs2005/chainvote/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/chainvote/internal/server/repositories/users"
	"github.com/dmitrijs2005/chainvote/internal/wallet"
)

// ProfileService pins profile photos and records their content identifiers.
type ProfileService struct {
	repomanager    repomanager.RepositoryManager
	indexer        *cryptox.Indexer
	pinner         pinning.Pinner
	pinningTimeout time.Duration
	logger         logging.Logger
}

func NewProfileService(m repomanager.RepositoryManager, indexer *cryptox.Indexer, pinner pinning.Pinner,
	cfg *config.Config, logger logging.Logger) *ProfileService {
	return &ProfileService{
		repomanager:    m,
		indexer:        indexer,
		pinner:         pinner,
		pinningTimeout: cfg.PinningTimeout,
		logger:         logger.With("module", "profiles"),
	}
}

// UpdatePhoto pins file and points the wallet's record at the returned
// content identifier. Nothing is pinned for an unknown wallet.
func (s *ProfileService) UpdatePhoto(ctx context.Context, address string, file *pinning.File) (string, error) {
	if strings.TrimSpace(address) == "" {
		return "", common.ErrAddressRequired
	}
	if file == nil || file.Content == nil {
		return "", common.ErrFileRequired
	}

	addr, err := wallet.Normalize(address)
	if err != nil {
		return "", err
	}
	index := s.indexer.Index(addr)

	if _, err := s.repomanager.Users().GetByWalletIndex(ctx, index); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", err
		}
		return "", fmt.Errorf("error searching user: %w", err)
	}

	cid, err := s.pin(ctx, *file)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrPinningFailed, err)
	}

	err = s.repomanager.WithTx(ctx, func(ctx context.Context, repo users.Repository) error {
		user, err := repo.GetByWalletIndex(ctx, index)
		if err != nil {
			return err
		}
		return repo.UpdateProfilePhoto(ctx, user.ID, cid)
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", err
		}
		return "", fmt.Errorf("error updating profile photo: %w", err)
	}

	s.logger.Info(ctx, "profile photo updated", "cid", cid, "size", file.Size)
	return cid, nil
}

// GetPhoto returns the content identifier of the wallet's photo, nil when
// none was uploaded yet.
func (s *ProfileService) GetPhoto(ctx context.Context, address string) (*string, error) {
	if strings.TrimSpace(address) == "" {
		return nil, common.ErrAddressRequired
	}

	addr, err := wallet.Normalize(address)
	if err != nil {
		return nil, err
	}

	user, err := s.repomanager.Users().GetByWalletIndex(ctx, s.indexer.Index(addr))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error fetching profile: %w", err)
	}

	return user.ProfilePhoto, nil
}

func (s *ProfileService) pin(ctx context.Context, f pinning.File) (string, error) {
	if s.pinningTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.pinningTimeout)
		defer cancel()
	}
	return s.pinner.Pin(ctx, f)
}
