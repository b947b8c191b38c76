package database

import (
	"context"
	"os"
	"testing"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	logger := zerolog.New(os.Stdout)
	db, err := NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func createTestUser(t *testing.T, db *DB, name, email string) *models.User {
	user := &models.User{Name: name, Email: email}
	require.NoError(t, db.CreateUser(context.Background(), user))
	return user
}

func createTestItem(t *testing.T, db *DB, ownerID int64, name string, available bool) *models.Item {
	item := &models.Item{
		Name:        name,
		Description: name + " description",
		Available:   available,
		OwnerID:     ownerID,
	}
	require.NoError(t, db.CreateItem(context.Background(), item))
	return item
}

func TestUserCRUD(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "Alice", "alice@example.com")
	assert.NotZero(t, user.ID)

	got, err := db.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, "alice@example.com", got.Email)

	got.Name = "Alice B"
	require.NoError(t, db.UpdateUser(ctx, got))

	updated, err := db.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice B", updated.Name)

	users, err := db.GetUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	require.NoError(t, db.DeleteUser(ctx, user.ID))
	_, err = db.GetUser(ctx, user.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetUserNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetUser(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	createTestUser(t, db, "Alice", "alice@example.com")

	err := db.CreateUser(ctx, &models.User{Name: "Impostor", Email: "alice@example.com"})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	users, err := db.GetUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUpdateUserDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	createTestUser(t, db, "Alice", "alice@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")

	bob.Email = "alice@example.com"
	err := db.UpdateUser(ctx, bob)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestUpdateUserNotFound(t *testing.T) {
	db := setupTestDB(t)

	err := db.UpdateUser(context.Background(), &models.User{ID: 99, Name: "Ghost", Email: "ghost@example.com"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
