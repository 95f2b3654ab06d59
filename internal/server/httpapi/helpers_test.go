package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/chainvote/internal/cryptox"
	"github.com/dmitrijs2005/chainvote/internal/logging"
	"github.com/dmitrijs2005/chainvote/internal/netx"
	"github.com/dmitrijs2005/chainvote/internal/server/config"
	"github.com/dmitrijs2005/chainvote/internal/server/pinning"
	"github.com/dmitrijs2005/chainvote/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/chainvote/internal/server/services"
)

const (
	testKey    = "0123456789abcdef0123456789abcdef"
	testSecret = "k"
	addrA      = "0x5B38Da6a701c568545dCfcB03FcB875f56beddC4"
	addrB      = "0xAb8483F64d9C6d1EcF9b849Ae677dD3315835cb2"
)

type fakePinner struct {
	cid   string
	err   error
	calls int
}

func (p *fakePinner) Pin(ctx context.Context, f pinning.File) (string, error) {
	p.calls++
	if p.err != nil {
		return "", p.err
	}
	_, _ = io.Copy(io.Discard, f.Content)
	return p.cid, nil
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

type testEnv struct {
	srv     *Server
	handler http.Handler
	pinner  *fakePinner
	store   *repomanager.MemoryRepositoryManager
}

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                   testSecret,
		EncryptionKey:               testKey,
		AccessTokenValidityDuration: time.Hour,
		AllowedOrigins:              []string{"http://localhost:3000"},
		MaxUploadSize:               1 << 20,
		PinningTimeout:              time.Second,
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := testConfig()
	cipher, err := cryptox.NewAddressCipher([]byte(testKey))
	require.NoError(t, err)
	indexer, err := cryptox.NewIndexer([]byte(testKey))
	require.NoError(t, err)

	store := repomanager.NewMemoryRepositoryManager()
	pinner := &fakePinner{cid: "QmTestPhoto"}

	us := services.NewUserService(store, cipher, indexer, cfg, logging.Nop{})
	ps := services.NewProfileService(store, indexer, pinner, cfg, logging.Nop{})

	srv := NewServer(cfg, logging.Nop{}, us, ps, store)
	return &testEnv{srv: srv, handler: srv.Handler(), pinner: pinner, store: store}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	var r io.Reader = http.NoBody
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func uploadRequest(t *testing.T, address string, content []byte) *http.Request {
	t.Helper()
	body, ct, err := netx.NewMultipartBody([][2]string{{"walletAddress", address}}, netx.FilePart{
		Field:       "file",
		FileName:    "me.png",
		ContentType: "image/png",
		Content:     bytes.NewReader(content),
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/updateProfile", body)
	req.Header.Set("Content-Type", ct)
	return req
}

func (e *testEnv) register(t *testing.T, address string) {
	t.Helper()
	rec := e.do(jsonRequest(t, http.MethodPost, "/register", walletRequest{WalletAddress: address}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(strings.NewReader(rec.Body.String())).Decode(&v))
	return v
}

func assertGolden(t *testing.T, name string, rec *httptest.ResponseRecorder) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, rec.Body.Bytes())
}
