package repository

import (
	"context"

	"ripple/internal/cache"
	"ripple/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository defines persistence operations for the follow graph.
type FollowRepository interface {
	// Toggle flips the follow edge and reports whether it now exists.
	Toggle(ctx context.Context, followerID, followingID uint) (bool, error)
	Followers(ctx context.Context, profileID uint, limit, offset int) ([]*models.Profile, error)
	Followings(ctx context.Context, profileID uint, limit, offset int) ([]*models.Profile, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository returns a new FollowRepository implementation.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Toggle inserts the edge with ON CONFLICT DO NOTHING; zero RowsAffected
// means it already existed and this call unfollows instead.
func (r *followRepository) Toggle(ctx context.Context, followerID, followingID uint) (bool, error) {
	edge := models.Follow{FollowerID: followerID, FollowingID: followingID}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "follower_id"}, {Name: "following_id"}},
		DoNothing: true,
	}).Create(&edge)
	if res.Error != nil {
		if isCheckConstraintError(res.Error) {
			return false, models.NewValidationError("You cannot follow yourself")
		}
		return false, models.NewInternalError(res.Error)
	}
	followed := res.RowsAffected > 0
	if !followed {
		if err := r.db.WithContext(ctx).
			Where("follower_id = ? AND following_id = ?", followerID, followingID).
			Delete(&models.Follow{}).Error; err != nil {
			return false, models.NewInternalError(err)
		}
	}
	cache.InvalidateProfile(ctx, followerID)
	cache.InvalidateProfile(ctx, followingID)
	return followed, nil
}

func (r *followRepository) Followers(ctx context.Context, profileID uint, limit, offset int) ([]*models.Profile, error) {
	return r.edgeProfiles(ctx, profileID, "follows.follower_id = profiles.id", "follows.following_id = ?", limit, offset)
}

func (r *followRepository) Followings(ctx context.Context, profileID uint, limit, offset int) ([]*models.Profile, error) {
	return r.edgeProfiles(ctx, profileID, "follows.following_id = profiles.id", "follows.follower_id = ?", limit, offset)
}

func (r *followRepository) edgeProfiles(ctx context.Context, profileID uint, joinOn, filter string, limit, offset int) ([]*models.Profile, error) {
	var profiles []*models.Profile
	if err := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Select("profiles.*, "+
			"(SELECT COUNT(*) FROM follows f WHERE f.following_id = profiles.id) AS followers_count, "+
			"(SELECT COUNT(*) FROM follows f WHERE f.follower_id = profiles.id) AS following_count").
		Joins("JOIN follows ON "+joinOn).
		Where(filter, profileID).
		Order("profiles.id").
		Limit(limit).
		Offset(offset).
		Find(&profiles).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return profiles, nil
}
