package models

import "time"

// BookingRef is the short booking summary attached to item views for the
// item's owner.
type BookingRef struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"booker_id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

// CommentView is a comment as shown to viewers: author name only,
// never the author's email.
type CommentView struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"author_name"`
	Created    time.Time `json:"created"`
}

// ItemView is an item projected for a particular viewer. NextBooking and
// LastBooking are populated only when the viewer owns the item.
type ItemView struct {
	Item
	NextBooking *BookingRef   `json:"next_booking,omitempty"`
	LastBooking *BookingRef   `json:"last_booking,omitempty"`
	Comments    []CommentView `json:"comments"`
}

// ItemPatch carries a partial item update. Nil fields are left untouched.
type ItemPatch struct {
	ID          int64
	Name        *string
	Description *string
	Available   *bool
}

// RequestView is an item request together with the items created to
// fulfil it.
type RequestView struct {
	ItemRequest
	Items []Item `json:"items"`
}
