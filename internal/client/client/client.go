package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/dmitrijs2005/chainvote/internal/client/models"
	"github.com/dmitrijs2005/chainvote/internal/common"
	"github.com/dmitrijs2005/chainvote/internal/netx"
)

// Client is the API surface the CLI services depend on.
type Client interface {
	SetToken(token string)
	Register(ctx context.Context, address, signature string) (string, error)
	Login(ctx context.Context, address, signature string) (token string, message string, err error)
	UpdateProfile(ctx context.Context, address string, photo netx.FilePart) (hash string, message string, err error)
	GetProfile(ctx context.Context, address string) (*string, error)
	Me(ctx context.Context) (*models.Account, error)
	Ping(ctx context.Context) error
}

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

// HTTPClient talks to the chainvote HTTP API.
type HTTPClient struct {
	base string
	http *http.Client

	mu    sync.RWMutex
	token string
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient returns a client for the API rooted at base. A nil
// httpClient means http.DefaultClient.
func NewHTTPClient(base string, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPClient{base: strings.TrimRight(base, "/"), http: httpClient}
}

// SetToken sets the bearer token sent on authenticated calls.
func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

type walletRequest struct {
	WalletAddress string `json:"walletAddress"`
	Signature     string `json:"signature,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (c *HTTPClient) Register(ctx context.Context, address, signature string) (string, error) {
	var out messageResponse
	if err := c.postJSON(ctx, "/register", walletRequest{WalletAddress: address, Signature: signature}, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *HTTPClient) Login(ctx context.Context, address, signature string) (string, string, error) {
	var out struct {
		Token   string `json:"token"`
		Message string `json:"message"`
	}
	if err := c.postJSON(ctx, "/login", walletRequest{WalletAddress: address, Signature: signature}, &out); err != nil {
		return "", "", err
	}
	if out.Token == "" {
		return "", "", errors.New("login: empty token in response")
	}
	return out.Token, out.Message, nil
}

// UpdateProfile uploads photo as the "file" field of a multipart form.
func (c *HTTPClient) UpdateProfile(ctx context.Context, address string, photo netx.FilePart) (string, string, error) {
	photo.Field = "file"
	body, contentType, err := netx.NewMultipartBody([][2]string{{"walletAddress", address}}, photo)
	if err != nil {
		return "", "", fmt.Errorf("build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/updateProfile", body)
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", contentType)

	var out struct {
		Message string `json:"message"`
		Hash    string `json:"hash"`
	}
	if err := c.do(req, &out); err != nil {
		return "", "", err
	}
	return out.Hash, out.Message, nil
}

func (c *HTTPClient) GetProfile(ctx context.Context, address string) (*string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/profile/"+url.PathEscape(address), nil)
	if err != nil {
		return nil, err
	}

	var out struct {
		ProfilePhoto *string `json:"profilePhoto"`
	}
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out.ProfilePhoto, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*models.Account, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/me", nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req)

	var out models.Account
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Ping checks the server's health endpoint.
func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/healthz", nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

func (c *HTTPClient) authorize(req *http.Request) {
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}
}

func (c *HTTPClient) postJSON(ctx context.Context, path string, in, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

// do sends req and decodes a 2xx JSON body into out (if non-nil). Transport
// failures wrap ErrUnavailable; non-2xx answers become *APIError.
func (c *HTTPClient) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var msg messageResponse
		if err := json.NewDecoder(io.LimitReader(resp.Body, maxErrorBody)).Decode(&msg); err == nil {
			apiErr.Message = msg.Message
		}
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
