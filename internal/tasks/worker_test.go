package tasks

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"ripple/internal/database"
	"ripple/internal/models"
	"ripple/internal/repository"
	"ripple/internal/service"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newWorkerTestEnv(t *testing.T) (*Worker, *gorm.DB, *models.Profile) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, database.Migrate(db))

	user := &models.User{Email: "author@example.com", Password: "hashed"}
	profile := &models.Profile{Username: "author"}
	require.NoError(t, repository.NewUserRepository(db).Register(context.Background(), user, profile))

	posts := service.NewPostService(
		repository.NewPostRepository(db),
		repository.NewProfileRepository(db),
		repository.NewTagRepository(db),
		nil,
	)
	return &Worker{posts: posts}, db, profile
}

func TestNewScheduledPostTaskRoundTrip(t *testing.T) {
	at := time.Now().Add(time.Hour).UTC()
	in := service.CreatePostInput{
		UserID:      3,
		Title:       "later",
		Content:     "content",
		Tags:        []string{"go"},
		PublishTime: &at,
	}

	task, err := NewScheduledPostTask(in)
	require.NoError(t, err)
	assert.Equal(t, TypeScheduledPost, task.Type())

	var got service.CreatePostInput
	require.NoError(t, json.Unmarshal(task.Payload(), &got))
	assert.Equal(t, in.UserID, got.UserID)
	assert.Equal(t, in.Title, got.Title)
	assert.Equal(t, in.Tags, got.Tags)
}

func TestHandleScheduledPostPublishes(t *testing.T) {
	w, db, profile := newWorkerTestEnv(t)

	task, err := NewScheduledPostTask(service.CreatePostInput{
		UserID:  profile.UserID,
		Title:   "deferred",
		Content: "arrives later",
		Tags:    []string{"news"},
	})
	require.NoError(t, err)

	require.NoError(t, w.HandleScheduledPost(context.Background(), task))

	var post models.Post
	require.NoError(t, db.Preload("Tags").First(&post).Error)
	assert.Equal(t, "deferred", post.Title)
	assert.Equal(t, profile.ID, post.AuthorID)
	require.Len(t, post.Tags, 1)
	assert.Equal(t, "news", post.Tags[0].Name)
}

func TestHandleScheduledPostSwallowsFailure(t *testing.T) {
	w, db, _ := newWorkerTestEnv(t)

	// The profile was deleted between enqueue and trigger time.
	task, err := NewScheduledPostTask(service.CreatePostInput{
		UserID:  999,
		Title:   "orphan",
		Content: "never lands",
	})
	require.NoError(t, err)

	// The handler reports success so asynq does not retry.
	require.NoError(t, w.HandleScheduledPost(context.Background(), task))

	var count int64
	db.Model(&models.Post{}).Count(&count)
	assert.Zero(t, count)
}

func TestHandleScheduledPostBadPayload(t *testing.T) {
	w, db, _ := newWorkerTestEnv(t)

	task := asynq.NewTask(TypeScheduledPost, []byte("{not json"))
	require.NoError(t, w.HandleScheduledPost(context.Background(), task))

	var count int64
	db.Model(&models.Post{}).Count(&count)
	assert.Zero(t, count)
}
