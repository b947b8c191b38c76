package database

import (
	"context"
	"testing"
	"time"

	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentsOrderedByCreation(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	author := createTestUser(t, db, "Author", "author@example.com")
	item := createTestItem(t, db, owner.ID, "Drill", true)

	base := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	second := &models.Comment{ItemID: item.ID, AuthorID: author.ID, Text: "later", Created: base.Add(time.Hour)}
	require.NoError(t, db.CreateComment(ctx, second))
	first := &models.Comment{ItemID: item.ID, AuthorID: author.ID, Text: "earlier", Created: base}
	require.NoError(t, db.CreateComment(ctx, first))

	comments, err := db.GetCommentsByItem(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "earlier", comments[0].Text)
	assert.Equal(t, "later", comments[1].Text)
	assert.True(t, comments[0].Created.Equal(base))
}

func TestGetCommentsByItemEmpty(t *testing.T) {
	db := setupTestDB(t)

	owner := createTestUser(t, db, "Owner", "owner@example.com")
	item := createTestItem(t, db, owner.ID, "Drill", true)

	comments, err := db.GetCommentsByItem(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}
