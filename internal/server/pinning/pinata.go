package pinning

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/chainvote/internal/netx"
)

const maxErrorBody = 1 << 10

// PinataClient talks to Pinata's pinFileToIPFS endpoint.
type PinataClient struct {
	endpoint  string
	apiKey    string
	secretKey string
	client    *http.Client
}

type pinataResponse struct {
	IpfsHash  string `json:"IpfsHash"`
	PinSize   int64  `json:"PinSize"`
	Timestamp string `json:"Timestamp"`
}

// NewPinataClient builds a client for endpoint. A nil httpClient means
// http.DefaultClient; deadlines come from the request context.
func NewPinataClient(endpoint, apiKey, secretKey string, httpClient *http.Client) *PinataClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &PinataClient{
		endpoint:  endpoint,
		apiKey:    apiKey,
		secretKey: secretKey,
		client:    httpClient,
	}
}

func (p *PinataClient) Pin(ctx context.Context, f File) (string, error) {
	body, contentType, err := netx.NewMultipartBody(nil, netx.FilePart{
		Field:       "file",
		FileName:    f.Name,
		ContentType: f.ContentType,
		Content:     f.Content,
	})
	if err != nil {
		return "", fmt.Errorf("build pinata request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, body)
	if err != nil {
		return "", fmt.Errorf("build pinata request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("pinata_api_key", p.apiKey)
	req.Header.Set("pinata_secret_api_key", p.secretKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("pinata request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", fmt.Errorf("pinata: status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var out pinataResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("pinata: decode response: %w", err)
	}
	if out.IpfsHash == "" {
		return "", errors.New("pinata: response has no IpfsHash")
	}

	return out.IpfsHash, nil
}
