package blob

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	fbstorage "firebase.google.com/go/v4/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"trenddrop/internal/config"
	"trenddrop/internal/models"
)

// DefaultTimeout bounds listing and signing when none is configured.
const DefaultTimeout = 10 * time.Second

// GCS is a Store backed by Cloud Storage through the Firebase Admin SDK.
type GCS struct {
	client  *fbstorage.Client
	timeout time.Duration
}

// NewGCS initializes the Firebase app and its storage client.
func NewGCS(ctx context.Context, cfg *config.Config) (*GCS, error) {
	var opts []option.ClientOption
	if cfg.GoogleCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.GoogleCredentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:     cfg.GCPProjectID,
		StorageBucket: cfg.ReportsBucket,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase: %w", err)
	}

	client, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get storage client: %w", err)
	}

	timeout := cfg.BlobTimeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &GCS{client: client, timeout: timeout}, nil
}

// List returns the objects directly stored under prefix, newest first.
// Folder placeholder objects are skipped.
func (g *GCS) List(ctx context.Context, bucket, prefix string) ([]models.Artifact, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	handle, err := g.client.Bucket(bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to open bucket %s: %w", bucket, err)
	}

	prefix = strings.TrimSuffix(prefix, "/") + "/"
	it := handle.Objects(ctx, &gcs.Query{Prefix: prefix, Delimiter: "/"})

	var artifacts []models.Artifact
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list %s/%s: %w", bucket, prefix, err)
		}
		// synthetic directory entries carry only Prefix
		if attrs.Name == "" || strings.HasSuffix(attrs.Name, "/") {
			continue
		}
		artifacts = append(artifacts, models.Artifact{
			Bucket:    bucket,
			Key:       attrs.Name,
			CreatedAt: attrs.Created,
			Size:      attrs.Size,
		})
	}

	SortNewestFirst(artifacts)
	return artifacts, nil
}

// SignedURL mints a V4 signed GET URL for key.
func (g *GCS) SignedURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
	handle, err := g.client.Bucket(bucket)
	if err != nil {
		return "", fmt.Errorf("failed to open bucket %s: %w", bucket, err)
	}

	// SignedURL may call the IAM signBlob API and takes no context.
	url, err := signWithin(ctx, g.timeout, func() (string, error) {
		return handle.SignedURL(key, &gcs.SignedURLOptions{
			Scheme:  gcs.SigningSchemeV4,
			Method:  "GET",
			Expires: time.Now().Add(ttl),
		})
	})
	if err != nil {
		return "", fmt.Errorf("failed to sign %s/%s: %w", bucket, key, err)
	}
	return url, nil
}

// signWithin runs sign in its own goroutine and gives up once ctx is done
// or timeout elapses. A sign call that outlives the wait is abandoned.
func signWithin(ctx context.Context, timeout time.Duration, sign func() (string, error)) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		url string
		err error
	}

	done := make(chan result, 1)
	go func() {
		url, err := sign()
		done <- result{url, err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.url, r.err
	}
}

// SortNewestFirst orders artifacts by creation time, newest first. Ties
// are broken by key, descending, so the order is deterministic.
func SortNewestFirst(artifacts []models.Artifact) {
	slices.SortStableFunc(artifacts, func(a, b models.Artifact) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.Key, a.Key)
	})
}
