package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"trenddrop/internal/models"
)

// FindSubscriber looks up a subscriber by email, narrowed to a purchase when
// purchaseID is non-empty. Returns ErrSubscriberNotFound if none matches.
func (d *DB) FindSubscriber(ctx context.Context, email, purchaseID string) (*models.Subscriber, error) {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	var s models.Subscriber
	err := d.Pool.QueryRow(ctx, `
		SELECT id, email, purchase_id, status, claimed_at
		FROM subscribers
		WHERE email = $1 AND ($2::text = '' OR purchase_id = $2)
		LIMIT 1
	`, email, purchaseID).Scan(&s.ID, &s.Email, &s.PurchaseID, &s.Status, &s.ClaimedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubscriberNotFound
		}
		return nil, fmt.Errorf("failed to find subscriber: %w", err)
	}
	return &s, nil
}

// MarkSubscriberClaimed stamps claimed_at on an unclaimed subscriber.
// The single-row update is the only guard against double claims: it returns
// ErrAlreadyClaimed if another request claimed the row first.
func (d *DB) MarkSubscriberClaimed(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := d.withTimeout(ctx)
	defer cancel()

	tag, err := d.Pool.Exec(ctx, `
		UPDATE subscribers SET claimed_at = NOW()
		WHERE id = $1 AND claimed_at IS NULL
	`, id)
	if err != nil {
		return fmt.Errorf("failed to mark subscriber claimed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyClaimed
	}
	return nil
}
