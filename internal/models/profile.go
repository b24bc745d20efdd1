package models

import "time"

// ProfilePrivacy is the visibility setting of a profile.
type ProfilePrivacy string

const (
	// PrivacyPublic makes the profile visible to everyone.
	PrivacyPublic ProfilePrivacy = "public"
	// PrivacyPrivate restricts profile visibility.
	PrivacyPrivate ProfilePrivacy = "private"
)

// Profile is the social identity wrapping a User, exactly one per account.
// It is provisioned in the same transaction as the User it belongs to.
type Profile struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	Username  string         `gorm:"size:150;uniqueIndex;not null" json:"username"`
	ImageURL  string         `json:"image_url,omitempty"`
	Bio       string         `gorm:"type:text" json:"bio,omitempty"`
	Privacy   ProfilePrivacy `gorm:"type:varchar(10);not null;default:'public'" json:"privacy"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`

	// FollowersCount is not persisted; computed at query time
	FollowersCount int `gorm:"->" json:"followers_count"`
	// FollowingCount is not persisted; computed at query time
	FollowingCount int `gorm:"->" json:"following_count"`

	// Relationships
	Posts []Post `gorm:"foreignKey:AuthorID" json:"posts,omitempty"`
}

// TableName specifies the table name for GORM.
func (Profile) TableName() string {
	return "profiles"
}
