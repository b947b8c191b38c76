package api

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Request bodies and their syntactic validation. Domain rules (ownership,
// availability, eligibility) are the services' concern; this file checks
// only shape: required fields, email form, date format and future-ness.

var emailRx = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// bookingTimeLayouts are the accepted wire formats for booking times:
// RFC3339 or local seconds without a zone.
var bookingTimeLayouts = []string{time.RFC3339, "2006-01-02T15:04:05"}

type createUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (r *createUserRequest) validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		return fmt.Errorf("email is required")
	}
	if !emailRx.MatchString(r.Email) {
		return fmt.Errorf("invalid email %q", r.Email)
	}
	return nil
}

type patchUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func (r *patchUserRequest) validate() error {
	if r.Name == nil && r.Email == nil {
		return fmt.Errorf("nothing to update")
	}
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return fmt.Errorf("name must not be blank")
	}
	if r.Email != nil && !emailRx.MatchString(*r.Email) {
		return fmt.Errorf("invalid email %q", *r.Email)
	}
	return nil
}

type createItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
	RequestID   int64  `json:"request_id"`
}

func (r *createItemRequest) validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(r.Description) == "" {
		return fmt.Errorf("description is required")
	}
	if r.Available == nil {
		return fmt.Errorf("available is required")
	}
	return nil
}

type patchItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

func (r *patchItemRequest) validate() error {
	if r.Name == nil && r.Description == nil && r.Available == nil {
		return fmt.Errorf("nothing to update")
	}
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return fmt.Errorf("name must not be blank")
	}
	if r.Description != nil && strings.TrimSpace(*r.Description) == "" {
		return fmt.Errorf("description must not be blank")
	}
	return nil
}

type createBookingRequest struct {
	ItemID int64  `json:"item_id"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

// parse validates shape: item reference, parseable times, start not in the
// past and end in the future relative to now. Interval ordering is also a
// domain invariant and is re-checked by the booking service.
func (r *createBookingRequest) parse(now time.Time) (start, end time.Time, err error) {
	if r.ItemID <= 0 {
		return start, end, fmt.Errorf("item_id is required")
	}

	start, err = parseBookingTime(r.Start)
	if err != nil {
		return start, end, fmt.Errorf("invalid start: %v", err)
	}
	end, err = parseBookingTime(r.End)
	if err != nil {
		return start, end, fmt.Errorf("invalid end: %v", err)
	}

	if start.Before(now.Truncate(time.Second)) {
		return start, end, fmt.Errorf("start must not be in the past")
	}
	if !end.After(now) {
		return start, end, fmt.Errorf("end must be in the future")
	}
	return start, end, nil
}

func parseBookingTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("value is required")
	}
	for _, layout := range bookingTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", raw)
}

type createCommentRequest struct {
	Text string `json:"text"`
}

func (r *createCommentRequest) validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return fmt.Errorf("text is required")
	}
	return nil
}

type createRequestRequest struct {
	Description string `json:"description"`
}

func (r *createRequestRequest) validate() error {
	if strings.TrimSpace(r.Description) == "" {
		return fmt.Errorf("description is required")
	}
	return nil
}
