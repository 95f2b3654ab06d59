package services

import (
	"context"
	"database/sql"
	"io"
	"testing"

	"github.com/dmitrijs2005/chainvote/internal/client/client"
	"github.com/dmitrijs2005/chainvote/internal/client/models"
	"github.com/dmitrijs2005/chainvote/internal/netx"
	"github.com/stretchr/testify/require"
)

const addr = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	repos, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })
	return repos.DB
}

// fakeClient implements client.Client for service unit tests.
type fakeClient struct {
	Token string

	RegisterMsg string
	RegisterErr error

	LoginToken string
	LoginMsg   string
	LoginErr   error

	UploadHash string
	UploadErr  error

	Photo      *string
	ProfileErr error

	Account *models.Account
	MeErr   error

	PingErr error

	LastAddress   string
	LastSignature string
	LastPart      netx.FilePart
	LastContent   []byte
	MeToken       string
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) SetToken(token string) { f.Token = token }

func (f *fakeClient) Register(_ context.Context, address, signature string) (string, error) {
	f.LastAddress, f.LastSignature = address, signature
	return f.RegisterMsg, f.RegisterErr
}

func (f *fakeClient) Login(_ context.Context, address, signature string) (string, string, error) {
	f.LastAddress, f.LastSignature = address, signature
	return f.LoginToken, f.LoginMsg, f.LoginErr
}

func (f *fakeClient) UpdateProfile(_ context.Context, address string, photo netx.FilePart) (string, string, error) {
	f.LastAddress = address
	f.LastPart = photo
	b, err := io.ReadAll(photo.Content)
	if err != nil {
		return "", "", err
	}
	f.LastContent = b
	return f.UploadHash, "Profile photo updated successfully.", f.UploadErr
}

func (f *fakeClient) GetProfile(_ context.Context, address string) (*string, error) {
	f.LastAddress = address
	return f.Photo, f.ProfileErr
}

func (f *fakeClient) Me(context.Context) (*models.Account, error) {
	f.MeToken = f.Token
	return f.Account, f.MeErr
}

func (f *fakeClient) Ping(context.Context) error { return f.PingErr }
