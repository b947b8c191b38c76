package models

import "time"

// Booking is a time-bounded request by a non-owner user to use an item.
// It is created in StatusWaiting and moves exactly once to StatusApproved
// or StatusRejected, only by the item's owner.
type Booking struct {
	ID       int64     `json:"id"`
	ItemID   int64     `json:"item_id"`
	BookerID int64     `json:"booker_id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Status   string    `json:"status"`
}
