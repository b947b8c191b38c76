package models

import "time"

// ItemRequest is a user's wish for an item that does not exist in the
// catalog yet. Read-only after creation.
type ItemRequest struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequesterID int64     `json:"requester_id"`
	Created     time.Time `json:"created"`
}
