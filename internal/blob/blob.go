// Package blob lists stored report artifacts and mints time-limited signed
// URLs for them.
package blob

import (
	"context"
	"errors"
	"time"

	"trenddrop/internal/models"
)

// ErrEmptySignedURL is returned when the backend reports success but yields no URL.
var ErrEmptySignedURL = errors.New("signed url is empty")

// Store is the blob store contract used by the gate, the report-link issuer
// and the health monitor.
type Store interface {
	// List returns the artifacts under prefix, newest first.
	List(ctx context.Context, bucket, prefix string) ([]models.Artifact, error)
	// SignedURL mints a read URL for key valid for ttl.
	SignedURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error)
}

// Sign mints a signed URL for an artifact and stamps its expiry.
func Sign(ctx context.Context, s Store, a *models.Artifact, ttl time.Duration) error {
	now := time.Now()
	url, err := s.SignedURL(ctx, a.Bucket, a.Key, ttl)
	if err != nil {
		return err
	}
	if url == "" {
		return ErrEmptySignedURL
	}
	a.URL = url
	a.ExpiresAt = now.Add(ttl)
	return nil
}
