package models

import (
	"time"

	"github.com/google/uuid"
)

// Purchase status constants shared by entitlements and subscribers.
const (
	StatusPending = "pending"
	StatusPaid    = "paid"
)

// DefaultProductKey is the product assumed when a caller names none.
const DefaultProductKey = "weekly-report"

// Entitlement proves that an email has purchased access to a product.
type Entitlement struct {
	Email      string     `json:"email"`
	ProductKey string     `json:"product_key"`
	Status     string     `json:"status"`
	ClaimedAt  *time.Time `json:"claimed_at"`
}

// IsPaid returns true if the entitlement grants access.
func (e *Entitlement) IsPaid() bool {
	return e.Status == StatusPaid
}

// Subscriber is a community membership purchase that can be claimed once
// for a Telegram invite link.
type Subscriber struct {
	ID         uuid.UUID  `json:"id"`
	Email      string     `json:"email"`
	PurchaseID *string    `json:"purchase_id"`
	Status     string     `json:"status"`
	ClaimedAt  *time.Time `json:"claimed_at"`
}

// IsPaid returns true if the subscriber has completed payment.
func (s *Subscriber) IsPaid() bool {
	return s.Status == StatusPaid
}

// IsClaimed returns true if the invite has already been issued.
func (s *Subscriber) IsClaimed() bool {
	return s.ClaimedAt != nil
}
