package domain

import "errors"

// Error kinds returned by the core. Call sites wrap these with context via
// fmt.Errorf("...: %w", err); callers branch with errors.Is.
var (
	// ErrNotFound means a referenced user, item, booking, request or
	// comment does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the actor lacks permission for the action:
	// wrong owner or booker, or an ineligible commenter.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidState means the action is not valid for the entity's
	// current state: item unavailable, booking already decided,
	// duplicate email, unknown list state or role.
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidInterval means a booking interval violates start < end.
	ErrInvalidInterval = errors.New("invalid interval")

	// ErrStoreUnavailable means the entity store failed. It is propagated
	// unchanged so callers can tell an invalid request from an
	// unreachable system. The core never retries.
	ErrStoreUnavailable = errors.New("store unavailable")
)
