package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostWithTags(t *testing.T) {
	app, srv, db, _ := newTestServer(t)
	_, token := createAccount(t, srv, db, "blogger")

	req := jsonRequest(http.MethodPost, "/api/posts", map[string]any{
		"title":   "first post",
		"content": "hello world",
		"tags":    "intro hello",
	})
	req.Header.Set("Authorization", token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var post models.Post
	decodeBody(t, resp, &post)
	assert.Equal(t, "first post", post.Title)
	assert.Len(t, post.Tags, 2)
	assert.Equal(t, "blogger", post.Author.Username)
}

func TestCreatePostRequiresAuth(t *testing.T) {
	app, _, _, _ := newTestServer(t)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/posts", map[string]string{
		"title": "t", "content": "c",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreatePostScheduledReturns202(t *testing.T) {
	app, srv, db, spy := newTestServer(t)
	_, token := createAccount(t, srv, db, "planner")

	at := time.Now().Add(2 * time.Hour).UTC().Format(time.RFC3339)
	req := jsonRequest(http.MethodPost, "/api/posts", map[string]any{
		"title":        "later",
		"content":      "not yet",
		"publish_time": at,
	})
	req.Header.Set("Authorization", token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	var body map[string]any
	decodeBody(t, resp, &body)
	assert.Equal(t, "scheduled", body["status"])

	// Nothing written yet; the input sits with the scheduler.
	var posts int64
	db.Model(&models.Post{}).Count(&posts)
	assert.Zero(t, posts)
	require.Len(t, spy.inputs, 1)
	assert.Equal(t, "later", spy.inputs[0].Title)
}

func TestCreatePostPastPublishTimeRejected(t *testing.T) {
	app, srv, db, spy := newTestServer(t)
	_, token := createAccount(t, srv, db, "latecomer")

	at := time.Now().Add(-time.Hour).UTC().Format(time.RFC3339)
	req := jsonRequest(http.MethodPost, "/api/posts", map[string]any{
		"title":        "too late",
		"content":      "c",
		"publish_time": at,
	})
	req.Header.Set("Authorization", token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, spy.inputs)
}

func TestGetPostPublicWithAnonymousViewer(t *testing.T) {
	app, srv, db, _ := newTestServer(t)
	author, _ := createAccount(t, srv, db, "public_author")
	post := createPost(t, db, author.ID, "open read")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/posts/"+itoa(post.ID), nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got models.Post
	decodeBody(t, resp, &got)
	assert.Equal(t, "open read", got.Title)
	assert.False(t, got.Liked)
}

func TestToggleLikeStatusCodes(t *testing.T) {
	app, srv, db, _ := newTestServer(t)
	author, _ := createAccount(t, srv, db, "liked_author")
	_, token := createAccount(t, srv, db, "liker")
	post := createPost(t, db, author.ID, "likeable")

	url := "/api/posts/" + itoa(post.ID) + "/like"

	req := httptest.NewRequest(http.MethodPost, url, nil)
	req.Header.Set("Authorization", token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "liked", body["status"])

	req = httptest.NewRequest(http.MethodPost, url, nil)
	req.Header.Set("Authorization", token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	decodeBody(t, resp, &body)
	assert.Equal(t, "unliked", body["status"])
}

func TestUpdatePostForeignForbidden(t *testing.T) {
	app, srv, db, _ := newTestServer(t)
	author, _ := createAccount(t, srv, db, "owner")
	_, token := createAccount(t, srv, db, "vandal")
	post := createPost(t, db, author.ID, "untouchable")

	req := jsonRequest(http.MethodPut, "/api/posts/"+itoa(post.ID), map[string]string{"title": "defaced"})
	req.Header.Set("Authorization", token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestDeleteOwnPost(t *testing.T) {
	app, srv, db, _ := newTestServer(t)
	author, token := createAccount(t, srv, db, "cleaner")
	post := createPost(t, db, author.ID, "temporary")

	req := httptest.NewRequest(http.MethodDelete, "/api/posts/"+itoa(post.ID), nil)
	req.Header.Set("Authorization", token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	var count int64
	db.Model(&models.Post{}).Count(&count)
	assert.Zero(t, count)
}

func TestFeedShowsOnlyFollowedAuthors(t *testing.T) {
	app, srv, db, _ := newTestServer(t)
	me, token := createAccount(t, srv, db, "feed_reader")
	followed, _ := createAccount(t, srv, db, "followed_author")
	stranger, _ := createAccount(t, srv, db, "stranger_author")

	req := httptest.NewRequest(http.MethodPost, "/api/profiles/"+itoa(followed.ID)+"/follow", nil)
	req.Header.Set("Authorization", token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = me

	createPost(t, db, followed.ID, "should appear")
	createPost(t, db, stranger.ID, "should not appear")

	req = httptest.NewRequest(http.MethodGet, "/api/posts/feed", nil)
	req.Header.Set("Authorization", token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Posts []models.Post `json:"posts"`
	}
	decodeBody(t, resp, &body)
	require.Len(t, body.Posts, 1)
	assert.Equal(t, "should appear", body.Posts[0].Title)
}

func TestFeedRequiresAuth(t *testing.T) {
	app, _, _, _ := newTestServer(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/posts/feed", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSearchPostsByTag(t *testing.T) {
	app, srv, db, _ := newTestServer(t)
	author, token := createAccount(t, srv, db, "tagged_author")
	_ = author

	req := jsonRequest(http.MethodPost, "/api/posts", map[string]any{
		"title":   "tagged entry",
		"content": "c",
		"tags":    "travel",
	})
	req.Header.Set("Authorization", token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/posts?search=travel", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Posts []models.Post `json:"posts"`
	}
	decodeBody(t, resp, &body)
	require.Len(t, body.Posts, 1)
	assert.Equal(t, "tagged entry", body.Posts[0].Title)
}
