package service

import (
	"context"
	"strings"

	"ripple/internal/models"
	"ripple/internal/repository"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	profileRepo repository.ProfileRepository
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository, profileRepo repository.ProfileRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo, profileRepo: profileRepo}
}

func (s *CommentService) AddComment(ctx context.Context, postID, userID uint, content string) (*models.Commentary, error) {
	if strings.TrimSpace(content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return nil, err
	}

	comment := &models.Commentary{
		PostID:   postID,
		AuthorID: profile.ID,
		Content:  content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) ListComments(ctx context.Context, postID uint, limit, offset int) ([]*models.Commentary, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID, limit, offset)
}

// DeleteComment removes the caller's comment. Someone else's comment is
// reported as not found rather than forbidden, so the endpoint does not leak
// which comment IDs exist.
func (s *CommentService) DeleteComment(ctx context.Context, commentID, postID, userID uint) error {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return err
	}
	return s.commentRepo.DeleteOwned(ctx, commentID, postID, profile.ID)
}
