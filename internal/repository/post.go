package repository

import (
	"context"
	"errors"

	"ripple/internal/cache"
	"ripple/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostFilter narrows and pages a post listing. At most one of AuthorID,
// FollowedBy and LikedBy is set by callers.
type PostFilter struct {
	// Search matches a title prefix or an exact tag name.
	Search string
	// AuthorID restricts to posts authored by the given profile.
	AuthorID uint
	// FollowedBy restricts to posts authored by profiles the given profile follows.
	FollowedBy uint
	// LikedBy restricts to posts the given profile has liked.
	LikedBy uint
	// ViewerID is the profile reading the listing, used to mark liked posts.
	ViewerID uint
	Limit    int
	Offset   int
}

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post, tags []models.Tag) error
	GetByID(ctx context.Context, id, viewerID uint) (*models.Post, error)
	List(ctx context.Context, f PostFilter) ([]*models.Post, error)
	// Update saves the post; a non-nil tags slice replaces the tag set.
	Update(ctx context.Context, post *models.Post, tags []models.Tag) error
	Delete(ctx context.Context, id uint) error
	// ToggleLike flips the like edge and reports whether it now exists.
	ToggleLike(ctx context.Context, postID, profileID uint) (bool, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// applyPostDetails adds subqueries to fetch aggregate counts and the viewer's
// like mark in a single query.
func (r *postRepository) applyPostDetails(db *gorm.DB, viewerID uint) *gorm.DB {
	sel := "posts.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) AS likes_count, " +
		"(SELECT COUNT(*) FROM commentaries WHERE commentaries.post_id = posts.id) AS comments_count"
	if viewerID != 0 {
		sel += ", EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.profile_id = ?) AS liked"
		return db.Select(sel, viewerID)
	}
	return db.Select(sel)
}

func (r *postRepository) Create(ctx context.Context, post *models.Post, tags []models.Tag) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags").Create(post).Error; err != nil {
			return err
		}
		if len(tags) > 0 {
			if err := tx.Model(post).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id, viewerID uint) (*models.Post, error) {
	// The anonymous view carries no viewer-specific fields, so it is the only
	// one safe to share through the cache.
	if viewerID == 0 {
		var post models.Post
		err := cache.Aside(ctx, cache.PostKey(id), &post, cache.PostTTL, func() error {
			fetched, err := r.fetchByID(ctx, id, 0)
			if err != nil {
				return err
			}
			post = *fetched
			return nil
		})
		if err != nil {
			return nil, err
		}
		return &post, nil
	}
	return r.fetchByID(ctx, id, viewerID)
}

func (r *postRepository) fetchByID(ctx context.Context, id, viewerID uint) (*models.Post, error) {
	var post models.Post
	if err := r.applyPostDetails(r.db.WithContext(ctx), viewerID).
		Preload("Author").
		Preload("Tags").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("commentaries.created_at").Preload("Author")
		}).
		First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, f PostFilter) ([]*models.Post, error) {
	var posts []*models.Post
	q := r.applyPostDetails(r.db.WithContext(ctx), f.ViewerID).
		Preload("Author").
		Preload("Tags")

	if f.Search != "" {
		q = q.Where("posts.title LIKE ? OR EXISTS("+
			"SELECT 1 FROM post_tags JOIN tags ON tags.id = post_tags.tag_id "+
			"WHERE post_tags.post_id = posts.id AND tags.name = ?)",
			f.Search+"%", f.Search)
	}
	if f.AuthorID != 0 {
		q = q.Where("posts.author_id = ?", f.AuthorID)
	}
	if f.FollowedBy != 0 {
		q = q.Where("posts.author_id IN (SELECT following_id FROM follows WHERE follower_id = ?)", f.FollowedBy)
	}
	if f.LikedBy != 0 {
		q = q.Where("posts.id IN (SELECT post_id FROM likes WHERE profile_id = ?)", f.LikedBy)
	}

	if err := q.Order("posts.created_at DESC, posts.id DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post, tags []models.Tag) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Author", "Comments").Save(post).Error; err != nil {
			return err
		}
		if tags != nil {
			if err := tx.Model(post).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

// Delete removes the post row; likes, commentaries and tag links cascade.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Post", id)
	}
	cache.InvalidatePost(ctx, id)
	return nil
}

// ToggleLike inserts the like edge with ON CONFLICT DO NOTHING. A zero
// RowsAffected means the edge already existed, so the same statement decides
// atomically whether this call likes or unlikes.
func (r *postRepository) ToggleLike(ctx context.Context, postID, profileID uint) (bool, error) {
	like := models.Like{PostID: postID, ProfileID: profileID}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "post_id"}, {Name: "profile_id"}},
		DoNothing: true,
	}).Create(&like)
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	if res.RowsAffected > 0 {
		cache.InvalidatePost(ctx, postID)
		return true, nil
	}
	if err := r.db.WithContext(ctx).
		Where("post_id = ? AND profile_id = ?", postID, profileID).
		Delete(&models.Like{}).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, postID)
	return false, nil
}
