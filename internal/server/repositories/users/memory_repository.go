package users

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/chainvote/internal/common"
	"github.com/dmitrijs2005/chainvote/internal/server/models"
)

// MemoryRepository keeps the directory in process memory. It backs the
// memory:// DSN and tests; contents vanish on restart.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*models.User
	byIndex map[string]string
	now     func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]*models.User),
		byIndex: make(map[string]string),
		now:     time.Now,
	}
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byIndex[user.WalletIndex]; ok {
		return nil, common.ErrorAlreadyExists
	}

	now := r.now().UTC()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := *user
	r.byID[stored.ID] = &stored
	r.byIndex[stored.WalletIndex] = stored.ID

	return user, nil
}

func (r *MemoryRepository) GetByWalletIndex(ctx context.Context, index string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byIndex[index]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return cloneUser(r.byID[id]), nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return cloneUser(u), nil
}

func (r *MemoryRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.byID)), nil
}

func (r *MemoryRepository) UpdateProfilePhoto(ctx context.Context, id string, cid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	photo := cid
	u.ProfilePhoto = &photo
	u.UpdatedAt = r.now().UTC()
	return nil
}

// callers get a copy so they cannot mutate stored rows
func cloneUser(u *models.User) *models.User {
	c := *u
	if u.ProfilePhoto != nil {
		p := *u.ProfilePhoto
		c.ProfilePhoto = &p
	}
	return &c
}
