package models

import "time"

// Follow statuses.
const (
	FollowActive   = "Follow"
	FollowInactive = "Unfollow"
)

// Follow is a directed edge meaning sender follows receiver. Unfollowing
// deletes the row; re-following creates a new one. The composite unique
// index prevents duplicate identical edges.
type Follow struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	SenderID   uint      `json:"sender_id" gorm:"index;uniqueIndex:idx_follow_edge"`
	ReceiverID uint      `json:"receiver_id" gorm:"index;uniqueIndex:idx_follow_edge"`
	Status     string    `json:"status" gorm:"type:varchar(8);default:'Follow';uniqueIndex:idx_follow_edge"`
	FromDate   time.Time `json:"from_date" gorm:"autoCreateTime"`
}
