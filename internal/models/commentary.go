package models

import "time"

// Commentary is a comment left by a profile on a post. The author is always
// the acting profile, never client-supplied.
type Commentary struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Post   Post    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	Author Profile `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitzero"`
}

// TableName specifies the table name for GORM.
func (Commentary) TableName() string {
	return "commentaries"
}
