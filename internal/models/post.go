package models

import "time"

// Post is a piece of content authored by a profile. The author and creation
// time are write-once; tags are a replaceable set resolved from free text.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	ImageURL  string    `json:"image_url,omitempty"`
	AuthorID  uint      `gorm:"<-:create;not null;index" json:"author_id"`
	Author    Profile   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitzero"`
	CreatedAt time.Time `gorm:"<-:create" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Tags []Tag `gorm:"many2many:post_tags;constraint:OnDelete:CASCADE" json:"tags"`

	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
	// Liked indicates whether the current requesting profile liked this post (computed)
	Liked bool `gorm:"->" json:"liked"`

	Comments []Commentary `gorm:"foreignKey:PostID" json:"comments,omitempty"`
}

// TableName specifies the table name for GORM.
func (Post) TableName() string {
	return "posts"
}

// Tag is a label shared by many posts. Names are unique at the database
// level; tag resolution is an atomic find-or-create by exact name.
type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:50;uniqueIndex;not null" json:"name"`
}

// TableName specifies the table name for GORM.
func (Tag) TableName() string {
	return "tags"
}
