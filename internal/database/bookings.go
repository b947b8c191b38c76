package database

import (
	"context"
	"fmt"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"
)

const bookingColumns = `id, item_id, booker_id, start_time, end_time, status`

func scanBooking(row interface{ Scan(...interface{}) error }) (*models.Booking, error) {
	var b models.Booking
	var startStr, endStr string
	err := row.Scan(&b.ID, &b.ItemID, &b.BookerID, &startStr, &endStr, &b.Status)
	if err != nil {
		return nil, err
	}

	b.Start, err = parseTime(startStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse booking start %s: %w", startStr, err)
	}
	b.End, err = parseTime(endStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse booking end %s: %w", endStr, err)
	}
	return &b, nil
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	booking, err := scanBooking(db.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, wrapErr("failed to get booking", err)
	}
	return booking, nil
}

func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	query := `INSERT INTO bookings (item_id, booker_id, start_time, end_time, status) VALUES (?, ?, ?, ?, ?)`
	result, err := db.db.ExecContext(ctx, query,
		booking.ItemID,
		booking.BookerID,
		formatTime(booking.Start),
		formatTime(booking.End),
		booking.Status,
	)
	if err != nil {
		return wrapErr("failed to create booking", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return wrapErr("failed to get last insert id", err)
	}
	booking.ID = id
	return nil
}

// DecideBooking moves a booking out of WAITING with a conditional update:
// the WHERE clause requires the stored status to still be WAITING, so two
// concurrent decides on the same booking have exactly one winner. The
// loser sees ErrInvalidState; it must tell a lost race from a missing row.
func (db *DB) DecideBooking(ctx context.Context, id int64, status string) error {
	query := `UPDATE bookings SET status = ? WHERE id = ? AND status = ?`
	result, err := db.db.ExecContext(ctx, query, status, id, models.StatusWaiting)
	if err != nil {
		return wrapErr("failed to decide booking", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return wrapErr("failed to get rows affected", err)
	}
	if rows == 0 {
		var exists int
		err := db.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE id = ?`, id).Scan(&exists)
		if err != nil {
			return wrapErr("failed to check booking existence", err)
		}
		if exists == 0 {
			return fmt.Errorf("booking %d: %w", id, domain.ErrNotFound)
		}
		return fmt.Errorf("booking %d is not waiting: %w", id, domain.ErrInvalidState)
	}
	return nil
}

func (db *DB) GetBookingsByBooker(ctx context.Context, bookerID int64) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booker_id = ? ORDER BY start_time DESC`
	return db.queryBookings(ctx, query, bookerID)
}

func (db *DB) GetBookingsByOwner(ctx context.Context, ownerID int64) ([]*models.Booking, error) {
	query := `SELECT b.id, b.item_id, b.booker_id, b.start_time, b.end_time, b.status
              FROM bookings b JOIN items i ON b.item_id = i.id
              WHERE i.owner_id = ? ORDER BY b.start_time DESC`
	return db.queryBookings(ctx, query, ownerID)
}

func (db *DB) GetBookingsByItemAndStatus(ctx context.Context, itemID int64, status string) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE item_id = ? AND status = ? ORDER BY start_time DESC`
	return db.queryBookings(ctx, query, itemID, status)
}

// HasApprovedPastBooking reports whether the user holds at least one
// approved booking on the item that ended strictly before now. This is
// the comment eligibility predicate and is evaluated fresh on every call.
func (db *DB) HasApprovedPastBooking(ctx context.Context, itemID, userID int64, now time.Time) (bool, error) {
	query := `SELECT COUNT(*) FROM bookings
              WHERE item_id = ? AND booker_id = ? AND status = ? AND end_time < ?`
	var count int
	err := db.db.QueryRowContext(ctx, query, itemID, userID, models.StatusApproved, formatTime(now)).Scan(&count)
	if err != nil {
		return false, wrapErr("failed to check past bookings", err)
	}
	return count > 0, nil
}

func (db *DB) queryBookings(ctx context.Context, query string, args ...interface{}) ([]*models.Booking, error) {
	rows, err := db.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("failed to query bookings", err)
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, wrapErr("failed to scan booking", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("failed to iterate bookings", err)
	}
	return bookings, nil
}
