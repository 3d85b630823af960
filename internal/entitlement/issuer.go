package entitlement

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"trenddrop/internal/blob"
	"trenddrop/internal/config"
	"trenddrop/internal/models"
	"trenddrop/internal/validation"
)

// DefaultMode is the report cadence used when a request names none.
const DefaultMode = "weekly"

// ErrInvalidMode is returned for modes that cannot be used as a key prefix.
var ErrInvalidMode = errors.New("invalid mode")

// Issuer signs the fixed latest artifact of a report mode.
type Issuer struct {
	blobs  blob.Store
	bucket string
}

// NewIssuer creates a new report link issuer over the reports bucket.
func NewIssuer(blobs blob.Store, cfg *config.Config) *Issuer {
	return &Issuer{blobs: blobs, bucket: cfg.ReportsBucket}
}

// LatestKey derives the artifact key for a mode and format. Any format
// other than csv maps to pdf.
func LatestKey(mode, format string) string {
	ext := "pdf"
	if strings.EqualFold(strings.TrimSpace(format), "csv") {
		ext = "csv"
	}
	return mode + "/latest." + ext
}

// IssueLatest signs "{mode}/latest.{csv|pdf}" for 24 hours.
func (i *Issuer) IssueLatest(ctx context.Context, mode, format string) (*models.Artifact, error) {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode == "" {
		mode = DefaultMode
	}
	if !validation.ValidateMode(mode) {
		return nil, ErrInvalidMode
	}

	a := &models.Artifact{Bucket: i.bucket, Key: LatestKey(mode, format)}
	if err := blob.Sign(ctx, i.blobs, a, AdminURLTTL); err != nil {
		return nil, fmt.Errorf("sign %s: %w", a.Key, err)
	}
	return a, nil
}
