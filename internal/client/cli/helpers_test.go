package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

const addr = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"

// fakeAPI is a tiny in-memory stand-in for the chainvote HTTP API.
type fakeAPI struct {
	mu     sync.Mutex
	users  map[string]string // lowercased address -> id
	photos map[string]string
	tokens map[string]string // token -> address
}

func newFakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	api := &fakeAPI{users: map[string]string{}, photos: map[string]string{}, tokens: map[string]string{}}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /register", api.register)
	mux.HandleFunc("POST /login", api.login)
	mux.HandleFunc("POST /updateProfile", api.updateProfile)
	mux.HandleFunc("GET /profile/{walletAddress}", api.profile)
	mux.HandleFunc("GET /me", api.me)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func reply(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeWallet(r *http.Request) string {
	var req struct {
		WalletAddress string `json:"walletAddress"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	return strings.ToLower(req.WalletAddress)
}

func (a *fakeAPI) register(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	wallet := decodeWallet(r)
	if _, ok := a.users[wallet]; ok {
		reply(w, http.StatusBadRequest, map[string]string{"message": "Wallet address already registered."})
		return
	}
	a.users[wallet] = fmt.Sprintf("user-%d", len(a.users)+1)
	reply(w, http.StatusCreated, map[string]string{"message": "User registered successfully."})
}

func (a *fakeAPI) login(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	wallet := decodeWallet(r)
	if _, ok := a.users[wallet]; !ok {
		reply(w, http.StatusBadRequest, map[string]string{"message": "Wallet not registered. Please register first."})
		return
	}
	token := "tok-" + wallet
	a.tokens[token] = wallet
	reply(w, http.StatusOK, map[string]string{"token": token, "message": "Login successful."})
}

func (a *fakeAPI) updateProfile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(1 << 20); err != nil {
		reply(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body."})
		return
	}
	f, _, err := r.FormFile("file")
	if err != nil {
		reply(w, http.StatusBadRequest, map[string]string{"message": "Profile photo is required."})
		return
	}
	defer f.Close()
	b, _ := io.ReadAll(f)

	a.mu.Lock()
	defer a.mu.Unlock()
	wallet := strings.ToLower(r.FormValue("walletAddress"))
	if _, ok := a.users[wallet]; !ok {
		reply(w, http.StatusNotFound, map[string]string{"message": "Profile not found."})
		return
	}
	cid := fmt.Sprintf("Qm%x", bytes.ToUpper(b))
	a.photos[wallet] = cid
	reply(w, http.StatusOK, map[string]string{"message": "Profile photo updated successfully.", "hash": cid})
}

func (a *fakeAPI) profile(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	wallet := strings.ToLower(r.PathValue("walletAddress"))
	if _, ok := a.users[wallet]; !ok {
		reply(w, http.StatusNotFound, map[string]string{"message": "Profile not found."})
		return
	}
	var photo *string
	if cid, ok := a.photos[wallet]; ok {
		photo = &cid
	}
	reply(w, http.StatusOK, map[string]any{"profilePhoto": photo})
}

func (a *fakeAPI) me(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	defer a.mu.Unlock()
	wallet, ok := a.tokens[strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")]
	if !ok {
		reply(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized."})
		return
	}
	reply(w, http.StatusOK, map[string]any{"id": a.users[wallet], "walletAddress": addr, "profilePhoto": nil})
}

// run executes the root command against server with an isolated home and
// returns stdout.
func run(t *testing.T, server, home string, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--server", server, "--home", home, "--gateway", "https://gw.example/ipfs/", "-o", "json"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func decodeOut(t *testing.T, out string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &m), out)
	return m
}
