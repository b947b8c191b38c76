package database

import (
	"context"
	"fmt"

	"shareit/internal/models"
)

func (db *DB) CreateComment(ctx context.Context, comment *models.Comment) error {
	query := `INSERT INTO comments (item_id, author_id, text, created) VALUES (?, ?, ?, ?)`
	result, err := db.db.ExecContext(ctx, query,
		comment.ItemID,
		comment.AuthorID,
		comment.Text,
		formatTime(comment.Created),
	)
	if err != nil {
		return wrapErr("failed to create comment", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return wrapErr("failed to get last insert id", err)
	}
	comment.ID = id
	return nil
}

func (db *DB) GetCommentsByItem(ctx context.Context, itemID int64) ([]*models.Comment, error) {
	query := `SELECT id, item_id, author_id, text, created FROM comments WHERE item_id = ? ORDER BY created ASC, id ASC`
	rows, err := db.db.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, wrapErr("failed to query comments", err)
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		c := &models.Comment{}
		var createdStr string
		if err := rows.Scan(&c.ID, &c.ItemID, &c.AuthorID, &c.Text, &createdStr); err != nil {
			return nil, wrapErr("failed to scan comment", err)
		}
		c.Created, err = parseTime(createdStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse comment created %s: %w", createdStr, err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("failed to iterate comments", err)
	}
	return comments, nil
}
