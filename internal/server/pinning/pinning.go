// Package pinning stores profile photos with a content-addressed backend and
// returns the content identifier the user record points at.
package pinning

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/chainvote/internal/server/config"
)

// File is one upload handed to a Pinner.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}

// Pinner uploads a file and returns its content identifier.
type Pinner interface {
	Pin(ctx context.Context, f File) (string, error)
}

// New returns the Pinner selected by cfg.PinningBackend.
func New(ctx context.Context, cfg *config.Config) (Pinner, error) {
	switch cfg.PinningBackend {
	case config.PinningBackendPinata:
		return NewPinataClient(cfg.PinataEndpoint, cfg.PinataAPIKey, cfg.PinataSecretAPIKey, nil), nil
	case config.PinningBackendS3:
		return NewS3Pinner(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown pinning backend %q", cfg.PinningBackend)
	}
}
