package models

import "time"

// Follow is a directed edge between two profiles: follower follows following.
// The pair is unique and a database CHECK forbids self-follow, so the graph
// has no parallel edges and no self-loops regardless of application bugs.
type Follow struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FollowerID  uint      `gorm:"not null;uniqueIndex:idx_follows_pair;check:chk_follows_no_self,follower_id <> following_id" json:"follower_id"`
	FollowingID uint      `gorm:"not null;uniqueIndex:idx_follows_pair" json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`

	// Relationships
	Follower  Profile `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE" json:"-"`
	Following Profile `gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for GORM.
func (Follow) TableName() string {
	return "follows"
}
