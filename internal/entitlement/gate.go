// Package entitlement gates access to stored report artifacts.
//
// Gate serves purchasers: it checks a paid entitlement before locating and
// signing the newest artifact of a product. Issuer serves administrators:
// it signs the fixed "latest" artifact of a report mode without any
// entitlement check and relies on the caller having presented a credential.
// The two trust boundaries are kept in separate types on purpose.
package entitlement

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"trenddrop/internal/blob"
	"trenddrop/internal/config"
	"trenddrop/internal/db"
	"trenddrop/internal/models"
	"trenddrop/internal/validation"
)

// Signed URL lifetimes.
const (
	GatedURLTTL = time.Hour
	AdminURLTTL = 24 * time.Hour
)

// Gate failure reasons. Every failure is terminal.
var (
	ErrMissingIdentity = errors.New("missing email")
	ErrInvalidProduct  = errors.New("invalid product")
	ErrInternal        = errors.New("error")
	ErrNoEntitlement   = errors.New("no entitlement")
	ErrNoArtifact      = errors.New("no reports")
	ErrSignFailed      = errors.New("sign failed")
)

// NotEligibleError reports an entitlement that exists but is not paid.
type NotEligibleError struct {
	Status string
}

func (e *NotEligibleError) Error() string {
	return "not eligible: " + e.Status
}

// Store is the entitlement lookup used by the gate.
type Store interface {
	GetEntitlement(ctx context.Context, email, productKey string) (*models.Entitlement, error)
}

// Gate verifies entitlements and issues signed URLs for the newest artifact
// of a product.
type Gate struct {
	store   Store
	blobs   blob.Store
	catalog *config.Catalog
	bucket  string
}

// NewGate creates a new entitlement gate over the gated reports bucket.
func NewGate(store Store, blobs blob.Store, catalog *config.Catalog, cfg *config.Config) *Gate {
	return &Gate{
		store:   store,
		blobs:   blobs,
		catalog: catalog,
		bucket:  cfg.GatedReportsBucket,
	}
}

// Issue returns the newest artifact for product with a one hour signed URL.
// The entitlement is verified before the blob store is touched.
func (g *Gate) Issue(ctx context.Context, email, product string) (*models.Artifact, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrMissingIdentity
	}

	product = strings.TrimSpace(product)
	if product == "" {
		product = models.DefaultProductKey
	}
	if !validation.ValidateProductKey(product) {
		return nil, ErrInvalidProduct
	}

	ent, err := g.store.GetEntitlement(ctx, email, product)
	if err != nil {
		if errors.Is(err, db.ErrEntitlementNotFound) {
			return nil, ErrNoEntitlement
		}
		slog.Error("entitlement lookup failed", "product", product, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if ent == nil {
		return nil, ErrNoEntitlement
	}
	if !ent.IsPaid() {
		return nil, &NotEligibleError{Status: ent.Status}
	}

	namespace := g.catalog.NamespaceFor(product)
	artifacts, err := g.blobs.List(ctx, g.bucket, namespace)
	if err != nil {
		slog.Warn("artifact listing failed", "bucket", g.bucket, "namespace", namespace, "error", err)
		return nil, ErrNoArtifact
	}
	if len(artifacts) == 0 {
		return nil, ErrNoArtifact
	}

	latest := artifacts[0]
	latest.Bucket = g.bucket
	if err := blob.Sign(ctx, g.blobs, &latest, GatedURLTTL); err != nil {
		slog.Error("artifact signing failed", "key", latest.Key, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrSignFailed, err)
	}

	return &latest, nil
}
