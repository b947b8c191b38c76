package models

import "time"

// Comment is feedback left on an item by a user who finished an approved
// booking on it. Immutable after creation; Created is server-assigned.
type Comment struct {
	ID       int64     `json:"id"`
	ItemID   int64     `json:"item_id"`
	AuthorID int64     `json:"author_id"`
	Text     string    `json:"text"`
	Created  time.Time `json:"created"`
}
