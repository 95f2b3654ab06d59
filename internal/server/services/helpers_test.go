package services

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/chainvote/internal/cryptox"
	"github.com/dmitrijs2005/chainvote/internal/logging"
	"github.com/dmitrijs2005/chainvote/internal/server/config"
	"github.com/dmitrijs2005/chainvote/internal/server/models"
	"github.com/dmitrijs2005/chainvote/internal/server/pinning"
	"github.com/dmitrijs2005/chainvote/internal/server/repositories/repomanager"
	usersrepo "github.com/dmitrijs2005/chainvote/internal/server/repositories/users"
)

const (
	testKey  = "0123456789abcdef0123456789abcdef"
	addrA    = "0x5B38Da6a701c568545dCfcB03FcB875f56beddC4"
	addrB    = "0xAb8483F64d9C6d1EcF9b849Ae677dD3315835cb2"
	jwtTestK = "k"
)

var errBoom = errors.New("boom")

// fakeUsersRepo delegates to an in-memory repository unless an error is
// injected, and counts calls.
type fakeUsersRepo struct {
	*usersrepo.MemoryRepository

	mu        sync.Mutex
	calls     int
	getErr    error
	createErr error
	countErr  error
	updateErr error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{MemoryRepository: usersrepo.NewMemoryRepository()}
}

func (f *fakeUsersRepo) hit() {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
}

func (f *fakeUsersRepo) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.hit()
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.MemoryRepository.Create(ctx, u)
}

func (f *fakeUsersRepo) GetByWalletIndex(ctx context.Context, index string) (*models.User, error) {
	f.hit()
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.MemoryRepository.GetByWalletIndex(ctx, index)
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	f.hit()
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.MemoryRepository.GetByID(ctx, id)
}

func (f *fakeUsersRepo) Count(ctx context.Context) (int64, error) {
	f.hit()
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.MemoryRepository.Count(ctx)
}

func (f *fakeUsersRepo) UpdateProfilePhoto(ctx context.Context, id, cid string) error {
	f.hit()
	if f.updateErr != nil {
		return f.updateErr
	}
	return f.MemoryRepository.UpdateProfilePhoto(ctx, id, cid)
}

type fakeRepoManager struct {
	repo  *fakeUsersRepo
	txErr error
	txs   int
}

func (m *fakeRepoManager) RunMigrations(context.Context) error { return nil }
func (m *fakeRepoManager) Users() usersrepo.Repository         { return m.repo }
func (m *fakeRepoManager) Ping(context.Context) error          { return nil }
func (m *fakeRepoManager) Close() error                        { return nil }

func (m *fakeRepoManager) WithTx(ctx context.Context, fn repomanager.TxFunc) error {
	m.txs++
	if m.txErr != nil {
		return m.txErr
	}
	return fn(ctx, m.repo)
}

type fakePinner struct {
	cid   string
	err   error
	calls int
	got   []byte
	name  string
}

func (p *fakePinner) Pin(ctx context.Context, f pinning.File) (string, error) {
	p.calls++
	if p.err != nil {
		return "", p.err
	}
	p.got, _ = io.ReadAll(f.Content)
	p.name = f.Name
	return p.cid, nil
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                   jwtTestK,
		EncryptionKey:               testKey,
		AccessTokenValidityDuration: time.Hour,
		PinningTimeout:              time.Second,
	}
}

func newCrypto(t *testing.T) (*cryptox.AddressCipher, *cryptox.Indexer) {
	t.Helper()
	c, err := cryptox.NewAddressCipher([]byte(testKey))
	if err != nil {
		t.Fatalf("NewAddressCipher: %v", err)
	}
	ix, err := cryptox.NewIndexer([]byte(testKey))
	if err != nil {
		t.Fatalf("NewIndexer: %v", err)
	}
	return c, ix
}

func newUserService(t *testing.T, rm repomanager.RepositoryManager, cfg *config.Config) *UserService {
	t.Helper()
	c, ix := newCrypto(t)
	return NewUserService(rm, c, ix, cfg, logging.Nop{})
}

func newProfileService(t *testing.T, rm repomanager.RepositoryManager, p pinning.Pinner) *ProfileService {
	t.Helper()
	_, ix := newCrypto(t)
	return NewProfileService(rm, ix, p, testConfig(), logging.Nop{})
}
