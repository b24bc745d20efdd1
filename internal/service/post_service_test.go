package service

import (
	"context"
	"testing"
	"time"

	"ripple/internal/models"
	"ripple/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostService(posts *postRepoStub, profiles *profileRepoStub, tags *tagRepoStub, sched Scheduler) *PostService {
	if sched == nil {
		sched = &schedulerStub{}
	}
	return NewPostService(posts, profiles, tags, sched)
}

func TestCreatePostRejectsEmptyTitle(t *testing.T) {
	svc := newPostService(noopPostRepo(), noopProfileRepo(), noopTagRepo(), nil)

	_, _, err := svc.CreatePost(context.Background(), CreatePostInput{UserID: 1, Title: "  ", Content: "x"})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", err.(*models.AppError).Code)
}

func TestCreatePostRejectsEmptyContent(t *testing.T) {
	svc := newPostService(noopPostRepo(), noopProfileRepo(), noopTagRepo(), nil)

	_, _, err := svc.CreatePost(context.Background(), CreatePostInput{UserID: 1, Title: "t", Content: ""})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", err.(*models.AppError).Code)
}

func TestCreatePostUsesProfileAsAuthor(t *testing.T) {
	posts := noopPostRepo()
	var gotAuthor uint
	posts.createFn = func(_ context.Context, p *models.Post, _ []models.Tag) error {
		gotAuthor = p.AuthorID
		p.ID = 7
		return nil
	}

	svc := newPostService(posts, noopProfileRepo(), noopTagRepo(), nil)
	post, scheduled, err := svc.CreatePost(context.Background(), CreatePostInput{
		UserID: 1, Title: "t", Content: "c",
	})
	require.NoError(t, err)
	assert.False(t, scheduled)
	require.NotNil(t, post)
	// noopProfileRepo maps user 1 to profile 101
	assert.EqualValues(t, 101, gotAuthor)
}

func TestCreatePostNormalizesTags(t *testing.T) {
	tags := noopTagRepo()
	var gotNames []string
	tags.findOrCreateFn = func(_ context.Context, names []string) ([]models.Tag, error) {
		gotNames = names
		return nil, nil
	}

	svc := newPostService(noopPostRepo(), noopProfileRepo(), tags, nil)
	_, _, err := svc.CreatePost(context.Background(), CreatePostInput{
		UserID: 1, Title: "t", Content: "c",
		Tags: []string{" go ", "go", "", "web"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "web"}, gotNames)
}

func TestCreatePostFuturePublishTimeDefers(t *testing.T) {
	posts := noopPostRepo()
	created := false
	posts.createFn = func(_ context.Context, _ *models.Post, _ []models.Tag) error {
		created = true
		return nil
	}
	sched := &schedulerStub{}

	svc := newPostService(posts, noopProfileRepo(), noopTagRepo(), sched)
	at := time.Now().Add(time.Hour)
	post, scheduled, err := svc.CreatePost(context.Background(), CreatePostInput{
		UserID: 1, Title: "later", Content: "c", PublishTime: &at,
	})
	require.NoError(t, err)
	assert.True(t, scheduled)
	assert.Nil(t, post)
	assert.False(t, created, "nothing may hit the database on the deferred path")
	require.Len(t, sched.scheduled, 1)
	// The deferred input carries no publish time so the replay writes inline.
	assert.Nil(t, sched.scheduled[0].PublishTime)
	assert.Equal(t, "later", sched.scheduled[0].Title)
	assert.Equal(t, at, sched.at[0])
}

func TestCreatePostPastPublishTimeRejected(t *testing.T) {
	svc := newPostService(noopPostRepo(), noopProfileRepo(), noopTagRepo(), nil)

	at := time.Now().Add(-time.Minute)
	_, _, err := svc.CreatePost(context.Background(), CreatePostInput{
		UserID: 1, Title: "t", Content: "c", PublishTime: &at,
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", err.(*models.AppError).Code)
}

func TestCreatePostSchedulerFailureSurfaces(t *testing.T) {
	sched := &schedulerStub{err: assert.AnError}
	svc := newPostService(noopPostRepo(), noopProfileRepo(), noopTagRepo(), sched)

	at := time.Now().Add(time.Hour)
	_, _, err := svc.CreatePost(context.Background(), CreatePostInput{
		UserID: 1, Title: "t", Content: "c", PublishTime: &at,
	})
	require.Error(t, err)
	assert.Equal(t, "INTERNAL_ERROR", err.(*models.AppError).Code)
}

func TestListPostsFeedRequiresAuth(t *testing.T) {
	svc := newPostService(noopPostRepo(), noopProfileRepo(), noopTagRepo(), nil)

	_, err := svc.ListPosts(context.Background(), FeedFollowed, 0, "", 10, 0)
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", err.(*models.AppError).Code)
}

func TestListPostsMapsFeedKindToFilter(t *testing.T) {
	posts := noopPostRepo()
	var gotFilter repository.PostFilter
	posts.listFn = func(_ context.Context, f repository.PostFilter) ([]*models.Post, error) {
		gotFilter = f
		return nil, nil
	}

	svc := newPostService(posts, noopProfileRepo(), noopTagRepo(), nil)
	_, err := svc.ListPosts(context.Background(), FeedFollowed, 1, "q", 10, 5)
	require.NoError(t, err)
	assert.EqualValues(t, 101, gotFilter.FollowedBy)
	assert.EqualValues(t, 101, gotFilter.ViewerID)
	assert.Equal(t, "q", gotFilter.Search)
	assert.Equal(t, 10, gotFilter.Limit)
	assert.Equal(t, 5, gotFilter.Offset)
}

func TestUpdatePostForeignPostForbidden(t *testing.T) {
	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return &models.Post{ID: id, AuthorID: 999}, nil
	}

	svc := newPostService(posts, noopProfileRepo(), noopTagRepo(), nil)
	_, err := svc.UpdatePost(context.Background(), UpdatePostInput{PostID: 5, UserID: 1, Title: "x"})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", err.(*models.AppError).Code)
}

func TestDeletePostForeignPostForbidden(t *testing.T) {
	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return &models.Post{ID: id, AuthorID: 999}, nil
	}
	deleted := false
	posts.deleteFn = func(_ context.Context, _ uint) error {
		deleted = true
		return nil
	}

	svc := newPostService(posts, noopProfileRepo(), noopTagRepo(), nil)
	err := svc.DeletePost(context.Background(), 5, 1)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", err.(*models.AppError).Code)
	assert.False(t, deleted)
}

func TestToggleLikeMissingPost(t *testing.T) {
	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return nil, models.NewNotFoundError("Post", id)
	}

	svc := newPostService(posts, noopProfileRepo(), noopTagRepo(), nil)
	_, err := svc.ToggleLike(context.Background(), 5, 1)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", err.(*models.AppError).Code)
}

func TestToggleLikeUsesProfileID(t *testing.T) {
	posts := noopPostRepo()
	var gotProfile uint
	posts.toggleLikeFn = func(_ context.Context, _, profileID uint) (bool, error) {
		gotProfile = profileID
		return true, nil
	}

	svc := newPostService(posts, noopProfileRepo(), noopTagRepo(), nil)
	liked, err := svc.ToggleLike(context.Background(), 5, 1)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.EqualValues(t, 101, gotProfile)
}
