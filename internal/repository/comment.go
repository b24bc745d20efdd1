package repository

import (
	"context"

	"ripple/internal/cache"
	"ripple/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines persistence operations for commentaries.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Commentary) error
	ListByPost(ctx context.Context, postID uint, limit, offset int) ([]*models.Commentary, error)
	// DeleteOwned removes the comment only when it belongs to the given post
	// and author. A miss on any of the three is reported as not found, so a
	// caller cannot tell a foreign comment from a missing one.
	DeleteOwned(ctx context.Context, commentID, postID, authorID uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository returns a new CommentRepository implementation.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Commentary) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).Preload("Author").First(comment, comment.ID).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, comment.PostID)
	return nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID uint, limit, offset int) ([]*models.Commentary, error) {
	var comments []*models.Commentary
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

func (r *commentRepository) DeleteOwned(ctx context.Context, commentID, postID, authorID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND post_id = ? AND author_id = ?", commentID, postID, authorID).
		Delete(&models.Commentary{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Commentary", commentID)
	}
	cache.InvalidatePost(ctx, postID)
	return nil
}
