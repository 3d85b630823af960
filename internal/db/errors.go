package db

import "errors"

// Domain-level database error sentinels.
var (
	// Entitlement errors
	ErrEntitlementNotFound = errors.New("entitlement not found")

	// Subscriber errors
	ErrSubscriberNotFound = errors.New("subscriber not found")
	ErrAlreadyClaimed     = errors.New("subscriber already claimed")
)
