package users

import (
	"context"

	"github.com/dmitrijs2005/chainvote/internal/server/models"
)

// Repository is the wallet directory. Lookups go by wallet index, never by
// ciphertext.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByWalletIndex(ctx context.Context, index string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Count(ctx context.Context) (int64, error)
	UpdateProfilePhoto(ctx context.Context, id string, cid string) error
}
