package repository

import (
	"context"
	"testing"

	"ripple/internal/database"
	"ripple/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	// SQLite needs foreign keys switched on for cascades to fire.
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, database.Migrate(db))
	return db
}

// createAccount persists a user with a profile and returns both.
func createAccount(t *testing.T, db *gorm.DB, username string) (*models.User, *models.Profile) {
	t.Helper()
	user := &models.User{
		Email:    username + "@example.com",
		Password: "hashed",
	}
	profile := &models.Profile{
		Username: username,
		Privacy:  models.PrivacyPublic,
	}
	require.NoError(t, NewUserRepository(db).Register(context.Background(), user, profile))
	return user, profile
}

// createPost persists a bare post for the given author profile.
func createPost(t *testing.T, db *gorm.DB, authorID uint, title string) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:    title,
		Content:  "content of " + title,
		AuthorID: authorID,
	}
	require.NoError(t, NewPostRepository(db).Create(context.Background(), post, nil))
	return post
}

func appCode(t *testing.T, err error) string {
	t.Helper()
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T: %v", err, err)
	return appErr.Code
}
