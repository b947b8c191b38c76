package database

import (
	"context"
	"database/sql"
	"fmt"

	"shareit/internal/domain"
	"shareit/internal/models"
)

func scanItem(row interface{ Scan(...interface{}) error }) (*models.Item, error) {
	var item models.Item
	var requestID sql.NullInt64
	err := row.Scan(&item.ID, &item.Name, &item.Description, &item.Available, &item.OwnerID, &requestID)
	if err != nil {
		return nil, err
	}
	if requestID.Valid {
		item.RequestID = requestID.Int64
	}
	return &item, nil
}

func (db *DB) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	query := `SELECT id, name, description, available, owner_id, request_id FROM items WHERE id = ?`
	item, err := scanItem(db.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, wrapErr("failed to get item", err)
	}
	return item, nil
}

func (db *DB) CreateItem(ctx context.Context, item *models.Item) error {
	query := `INSERT INTO items (name, description, available, owner_id, request_id) VALUES (?, ?, ?, ?, ?)`
	var requestID interface{}
	if item.RequestID != 0 {
		requestID = item.RequestID
	}
	result, err := db.db.ExecContext(ctx, query, item.Name, item.Description, item.Available, item.OwnerID, requestID)
	if err != nil {
		return wrapErr("failed to create item", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return wrapErr("failed to get last insert id", err)
	}
	item.ID = id
	return nil
}

func (db *DB) UpdateItem(ctx context.Context, item *models.Item) error {
	query := `UPDATE items SET name = ?, description = ?, available = ? WHERE id = ?`
	result, err := db.db.ExecContext(ctx, query, item.Name, item.Description, item.Available, item.ID)
	if err != nil {
		return wrapErr("failed to update item", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("item %d: %w", item.ID, domain.ErrNotFound)
	}
	return nil
}

func (db *DB) DeleteItem(ctx context.Context, id int64) error {
	result, err := db.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return wrapErr("failed to delete item", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (db *DB) GetItemsByOwner(ctx context.Context, ownerID int64) ([]*models.Item, error) {
	query := `SELECT id, name, description, available, owner_id, request_id FROM items WHERE owner_id = ? ORDER BY id`
	return db.queryItems(ctx, query, ownerID)
}

// SearchAvailableItems matches text against item name and description,
// case-insensitive, available items only. Blank text is the caller's
// concern; here it would match everything.
func (db *DB) SearchAvailableItems(ctx context.Context, text string, limit, offset int) ([]*models.Item, error) {
	query := `SELECT id, name, description, available, owner_id, request_id
              FROM items
              WHERE available = 1 AND (name LIKE ? OR description LIKE ?)
              ORDER BY id LIMIT ? OFFSET ?`
	pattern := "%" + text + "%"
	return db.queryItems(ctx, query, pattern, pattern, limit, offset)
}

func (db *DB) GetItemsByRequest(ctx context.Context, requestID int64) ([]*models.Item, error) {
	query := `SELECT id, name, description, available, owner_id, request_id FROM items WHERE request_id = ? ORDER BY id`
	return db.queryItems(ctx, query, requestID)
}

func (db *DB) queryItems(ctx context.Context, query string, args ...interface{}) ([]*models.Item, error) {
	rows, err := db.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("failed to query items", err)
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, wrapErr("failed to scan item", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("failed to iterate items", err)
	}
	return items, nil
}
