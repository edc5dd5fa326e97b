package models

import "time"

// FollowEdge is an accepted follow relationship. One row means the follower
// is in the followee's followers set and the followee is in the follower's
// following set; both views read the same row, so the graph cannot become
// asymmetric. The edge is created only when a follow request is accepted.
type FollowEdge struct {
	FollowerID uint `gorm:"primaryKey;autoIncrement:false"`
	FolloweeID uint `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt  time.Time

	Follower User `gorm:"foreignKey:FollowerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Followee User `gorm:"foreignKey:FolloweeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
