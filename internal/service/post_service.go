package service

import (
	"context"
	"strings"
	"time"

	"ripple/internal/models"
	"ripple/internal/repository"
)

// Scheduler defers a post creation until the given time. The worker replays
// the same input through PostService.CreatePost.
type Scheduler interface {
	Schedule(ctx context.Context, in CreatePostInput, at time.Time) error
}

type PostService struct {
	postRepo    repository.PostRepository
	profileRepo repository.ProfileRepository
	tagRepo     repository.TagRepository
	scheduler   Scheduler
}

// CreatePostInput carries everything needed to create a post, including the
// optional future publication time. It is JSON-tagged because the scheduler
// serializes it into the task payload.
type CreatePostInput struct {
	UserID      uint       `json:"user_id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	ImageURL    string     `json:"image_url"`
	Tags        []string   `json:"tags"`
	PublishTime *time.Time `json:"publish_time,omitempty"`
}

// UpdatePostInput carries post changes. Empty fields are left untouched; a
// non-nil Tags replaces the whole tag set.
type UpdatePostInput struct {
	PostID   uint
	UserID   uint
	Title    string
	Content  string
	ImageURL string
	Tags     *[]string
}

// FeedKind selects which post listing a caller wants.
type FeedKind int

const (
	FeedAll FeedKind = iota
	FeedMine
	FeedFollowed
	FeedLiked
)

func NewPostService(postRepo repository.PostRepository, profileRepo repository.ProfileRepository, tagRepo repository.TagRepository, scheduler Scheduler) *PostService {
	return &PostService{postRepo: postRepo, profileRepo: profileRepo, tagRepo: tagRepo, scheduler: scheduler}
}

func validatePostInput(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return models.NewValidationError("Title is required")
	}
	if len(title) > 255 {
		return models.NewValidationError("Title too long (max 255 characters)")
	}
	if strings.TrimSpace(content) == "" {
		return models.NewValidationError("Content is required")
	}
	return nil
}

// normalizeTags trims and deduplicates tag names, dropping empties.
func normalizeTags(names []string) ([]string, error) {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if len(name) > 50 {
			return nil, models.NewValidationError("Tag name too long (max 50 characters)")
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out, nil
}

// CreatePost validates the input and either writes the post now or, when a
// future publish time is set, defers the same input to the scheduler. The
// returned bool reports the deferred case; the post pointer is nil there.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, bool, error) {
	if err := validatePostInput(in.Title, in.Content); err != nil {
		return nil, false, err
	}
	names, err := normalizeTags(in.Tags)
	if err != nil {
		return nil, false, err
	}

	profile, err := s.profileRepo.GetByUserID(ctx, in.UserID)
	if err != nil {
		return nil, false, err
	}

	if in.PublishTime != nil {
		at := *in.PublishTime
		if !at.After(time.Now()) {
			return nil, false, models.NewValidationError("Publish time must be in the future")
		}
		deferred := in
		deferred.PublishTime = nil
		deferred.Tags = names
		if err := s.scheduler.Schedule(ctx, deferred, at); err != nil {
			return nil, false, models.NewInternalError(err)
		}
		return nil, true, nil
	}

	tags, err := s.tagRepo.FindOrCreate(ctx, names)
	if err != nil {
		return nil, false, err
	}

	post := &models.Post{
		Title:    in.Title,
		Content:  in.Content,
		ImageURL: in.ImageURL,
		AuthorID: profile.ID,
	}
	if err := s.postRepo.Create(ctx, post, tags); err != nil {
		return nil, false, err
	}

	created, err := s.postRepo.GetByID(ctx, post.ID, profile.ID)
	if err != nil {
		return nil, false, err
	}
	return created, false, nil
}

// GetPost returns a post with counts and, for an authenticated viewer, the
// like mark. viewerUserID of zero means anonymous.
func (s *PostService) GetPost(ctx context.Context, id, viewerUserID uint) (*models.Post, error) {
	viewerID, err := s.viewerProfileID(ctx, viewerUserID)
	if err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, id, viewerID)
}

// ListPosts returns one of the post feeds, newest first.
func (s *PostService) ListPosts(ctx context.Context, kind FeedKind, viewerUserID uint, search string, limit, offset int) ([]*models.Post, error) {
	viewerID, err := s.viewerProfileID(ctx, viewerUserID)
	if err != nil {
		return nil, err
	}

	f := repository.PostFilter{
		Search:   search,
		ViewerID: viewerID,
		Limit:    limit,
		Offset:   offset,
	}
	switch kind {
	case FeedMine:
		f.AuthorID = viewerID
	case FeedFollowed:
		f.FollowedBy = viewerID
	case FeedLiked:
		f.LikedBy = viewerID
	}
	if kind != FeedAll && viewerID == 0 {
		return nil, models.NewUnauthorizedError("Authentication required")
	}

	return s.postRepo.List(ctx, f)
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	post, err := s.postRepo.GetByID(ctx, in.PostID, profile.ID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != profile.ID {
		return nil, models.NewForbiddenError("You can only edit your own posts")
	}

	if in.Title != "" {
		if len(in.Title) > 255 {
			return nil, models.NewValidationError("Title too long (max 255 characters)")
		}
		post.Title = in.Title
	}
	if in.Content != "" {
		post.Content = in.Content
	}
	if in.ImageURL != "" {
		post.ImageURL = in.ImageURL
	}

	var tags []models.Tag
	if in.Tags != nil {
		names, err := normalizeTags(*in.Tags)
		if err != nil {
			return nil, err
		}
		tags, err = s.tagRepo.FindOrCreate(ctx, names)
		if err != nil {
			return nil, err
		}
		if tags == nil {
			tags = []models.Tag{}
		}
	}

	if err := s.postRepo.Update(ctx, post, tags); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID, profile.ID)
}

func (s *PostService) DeletePost(ctx context.Context, postID, userID uint) error {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	post, err := s.postRepo.GetByID(ctx, postID, 0)
	if err != nil {
		return err
	}
	if post.AuthorID != profile.ID {
		return models.NewForbiddenError("You can only delete your own posts")
	}
	return s.postRepo.Delete(ctx, postID)
}

// ToggleLike flips the caller's like on the post and reports whether the
// post is now liked.
func (s *PostService) ToggleLike(ctx context.Context, postID, userID uint) (bool, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return false, err
	}
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return false, err
	}
	return s.postRepo.ToggleLike(ctx, postID, profile.ID)
}

// viewerProfileID resolves an optional user to their profile ID. Zero in,
// zero out.
func (s *PostService) viewerProfileID(ctx context.Context, userID uint) (uint, error) {
	if userID == 0 {
		return 0, nil
	}
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return profile.ID, nil
}
