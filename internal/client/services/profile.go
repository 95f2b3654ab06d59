package services

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/chainvote/internal/client/client"
	"github.com/dmitrijs2005/chainvote/internal/client/models"
	"github.com/dmitrijs2005/chainvote/internal/netx"
)

// ProfileService uploads and reads profile photos.
type ProfileService interface {
	Upload(ctx context.Context, address, path string) (hash string, message string, err error)
	Profile(ctx context.Context, address string) (*models.Profile, error)
}

type profileService struct {
	client  client.Client
	gateway string
}

// NewProfileService returns a ProfileService. gatewayURL prefixes content
// identifiers when building browsable links.
func NewProfileService(client client.Client, gatewayURL string) ProfileService {
	return &profileService{client: client, gateway: gatewayURL}
}

// Upload sends the file at path as the profile photo of address.
func (p *profileService) Upload(ctx context.Context, address, path string) (string, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", "", fmt.Errorf("open photo: %w", err)
	}
	defer f.Close()

	contentType, err := detectContentType(f, path)
	if err != nil {
		return "", "", err
	}

	return p.client.UpdateProfile(ctx, address, netx.FilePart{
		FileName:    filepath.Base(path),
		ContentType: contentType,
		Content:     f,
	})
}

func (p *profileService) Profile(ctx context.Context, address string) (*models.Profile, error) {
	photo, err := p.client.GetProfile(ctx, address)
	if err != nil {
		return nil, err
	}

	profile := &models.Profile{WalletAddress: address, ProfilePhoto: photo}
	if photo != nil && *photo != "" {
		profile.GatewayURL = GatewayURL(p.gateway, *photo)
	}
	return profile, nil
}

// GatewayURL joins a gateway prefix and a content identifier.
func GatewayURL(gateway, cid string) string {
	return strings.TrimRight(gateway, "/") + "/" + cid
}

// detectContentType prefers the file extension and falls back to sniffing
// the first 512 bytes. f is rewound afterwards.
func detectContentType(f io.ReadSeeker, path string) (string, error) {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct, nil
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", fmt.Errorf("read photo: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind photo: %w", err)
	}
	return http.DetectContentType(head[:n]), nil
}
