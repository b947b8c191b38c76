package models

// Item is a shareable object. OwnerID is set at creation and never
// reassigned. RequestID is non-zero when the item was created to fulfil
// an existing item request.
type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"owner_id"`
	RequestID   int64  `json:"request_id,omitempty"`
}
