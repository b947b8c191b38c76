package database

import (
	"context"
	"fmt"

	"shareit/internal/domain"
	"shareit/internal/models"
)

func (db *DB) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	query := `SELECT id, name, email FROM users WHERE id = ?`
	err := db.db.QueryRowContext(ctx, query, id).Scan(&user.ID, &user.Name, &user.Email)
	if err != nil {
		return nil, wrapErr("failed to get user", err)
	}
	return &user, nil
}

func (db *DB) CreateUser(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (name, email) VALUES (?, ?)`
	result, err := db.db.ExecContext(ctx, query, user.Name, user.Email)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("email %s already in use: %w", user.Email, domain.ErrInvalidState)
		}
		return wrapErr("failed to create user", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return wrapErr("failed to get last insert id", err)
	}
	user.ID = id
	return nil
}

func (db *DB) UpdateUser(ctx context.Context, user *models.User) error {
	query := `UPDATE users SET name = ?, email = ? WHERE id = ?`
	result, err := db.db.ExecContext(ctx, query, user.Name, user.Email, user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("email %s already in use: %w", user.Email, domain.ErrInvalidState)
		}
		return wrapErr("failed to update user", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("user %d: %w", user.ID, domain.ErrNotFound)
	}
	return nil
}

func (db *DB) DeleteUser(ctx context.Context, id int64) error {
	result, err := db.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return wrapErr("failed to delete user", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (db *DB) GetUsers(ctx context.Context) ([]*models.User, error) {
	rows, err := db.db.QueryContext(ctx, `SELECT id, name, email FROM users ORDER BY id`)
	if err != nil {
		return nil, wrapErr("failed to get users", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u := &models.User{}
		if err := rows.Scan(&u.ID, &u.Name, &u.Email); err != nil {
			return nil, wrapErr("failed to scan user", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("failed to iterate users", err)
	}
	return users, nil
}
