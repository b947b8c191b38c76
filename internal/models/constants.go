package models

const (
	StatusWaiting  = "WAITING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// Roles for booking list queries.
const (
	RoleBooker = "booker"
	RoleOwner  = "owner"
)

// List states for booking queries. CURRENT, PAST and FUTURE partition
// bookings by time relative to the moment of the call.
const (
	StateAll      = "ALL"
	StateCurrent  = "CURRENT"
	StatePast     = "PAST"
	StateFuture   = "FUTURE"
	StateWaiting  = "WAITING"
	StateRejected = "REJECTED"
)

const (
	// DefaultPageSize is the page size for paged request listings.
	DefaultPageSize = 10

	// SearchCacheTTL is the lifetime of cached item search results.
	SearchCacheTTL = 5 * 60 // 5 minutes in seconds
)

// ValidStatus reports whether s is a known booking status.
func ValidStatus(s string) bool {
	switch s {
	case StatusWaiting, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// ValidListState reports whether s is a known booking list state.
func ValidListState(s string) bool {
	switch s {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return true
	}
	return false
}
