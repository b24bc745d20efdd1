package models

import "time"

// Like marks that a profile liked a post. The (post, profile) pair is unique;
// the toggle operation relies on that constraint plus a conditional insert so
// a double-submit can never produce two rows.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_likes_post_profile" json:"post_id"`
	ProfileID uint      `gorm:"not null;uniqueIndex:idx_likes_post_profile" json:"profile_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Post    Post    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	Profile Profile `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for GORM.
func (Like) TableName() string {
	return "likes"
}
