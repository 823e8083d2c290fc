// Package media stores post attachments and avatars on an external host.
package media

import (
	"context"
	"fmt"

	"quizmate/internal/config"
)

// Asset identifies a stored media object.
type Asset struct {
	// URL is the public address clients load the asset from.
	URL string `json:"url"`
	// PublicID is the host-side identifier used to delete the asset later.
	PublicID string `json:"publicId"`
}

// Host is the storage backend for uploaded media.
type Host interface {
	// Upload stores data and returns the created asset. contentType is the
	// MIME type reported by the client, kind is "image" or "video".
	Upload(ctx context.Context, data []byte, contentType, kind string) (Asset, error)
	// Delete removes a previously uploaded asset. Returns false when the
	// asset was not found; that is not an error.
	Delete(ctx context.Context, publicID string) (bool, error)
}

// NewHostFromConfig picks a host implementation from config. An empty
// MEDIA_BUCKET selects the in-memory host, which only makes sense in
// development and tests.
func NewHostFromConfig(cfg *config.Config) (Host, error) {
	if cfg.MediaBucket == "" {
		return NewMemoryHost(), nil
	}
	host, err := NewS3Host(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build s3 media host: %w", err)
	}
	return host, nil
}
