package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"trenddrop/internal/models"
)

// GetEntitlement returns the entitlement for an email and product key.
// Returns ErrEntitlementNotFound if none exists.
func (d *DB) GetEntitlement(ctx context.Context, email, productKey string) (*models.Entitlement, error) {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	var e models.Entitlement
	err := d.Pool.QueryRow(ctx, `
		SELECT email, product_key, status, claimed_at
		FROM entitlements
		WHERE email = $1 AND product_key = $2
		LIMIT 1
	`, email, productKey).Scan(&e.Email, &e.ProductKey, &e.Status, &e.ClaimedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEntitlementNotFound
		}
		return nil, fmt.Errorf("failed to get entitlement: %w", err)
	}
	return &e, nil
}
