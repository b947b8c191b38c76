package database

import (
	"context"
	"fmt"

	"shareit/internal/models"
)

func scanRequest(row interface{ Scan(...interface{}) error }) (*models.ItemRequest, error) {
	var r models.ItemRequest
	var createdStr string
	if err := row.Scan(&r.ID, &r.Description, &r.RequesterID, &createdStr); err != nil {
		return nil, err
	}
	created, err := parseTime(createdStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse request created %s: %w", createdStr, err)
	}
	r.Created = created
	return &r, nil
}

func (db *DB) GetRequest(ctx context.Context, id int64) (*models.ItemRequest, error) {
	query := `SELECT id, description, requester_id, created FROM requests WHERE id = ?`
	request, err := scanRequest(db.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, wrapErr("failed to get request", err)
	}
	return request, nil
}

func (db *DB) CreateRequest(ctx context.Context, request *models.ItemRequest) error {
	query := `INSERT INTO requests (description, requester_id, created) VALUES (?, ?, ?)`
	result, err := db.db.ExecContext(ctx, query,
		request.Description,
		request.RequesterID,
		formatTime(request.Created),
	)
	if err != nil {
		return wrapErr("failed to create request", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return wrapErr("failed to get last insert id", err)
	}
	request.ID = id
	return nil
}

func (db *DB) GetRequestsByRequester(ctx context.Context, requesterID int64) ([]*models.ItemRequest, error) {
	query := `SELECT id, description, requester_id, created FROM requests WHERE requester_id = ? ORDER BY created DESC, id DESC`
	return db.queryRequests(ctx, query, requesterID)
}

func (db *DB) GetRequestsFromOthers(ctx context.Context, requesterID int64, limit, offset int) ([]*models.ItemRequest, error) {
	query := `SELECT id, description, requester_id, created FROM requests
              WHERE requester_id != ? ORDER BY created DESC, id DESC LIMIT ? OFFSET ?`
	return db.queryRequests(ctx, query, requesterID, limit, offset)
}

func (db *DB) queryRequests(ctx context.Context, query string, args ...interface{}) ([]*models.ItemRequest, error) {
	rows, err := db.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("failed to query requests", err)
	}
	defer rows.Close()

	var requests []*models.ItemRequest
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, wrapErr("failed to scan request", err)
		}
		requests = append(requests, r)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("failed to iterate requests", err)
	}
	return requests, nil
}
