package models

import "time"

// Reaction statuses.
const (
	ReactionLike = 1
	ReactionNone = 0
)

// Reaction is a (user, post, status) triple. The composite unique index
// makes the like operation idempotent at the schema level: a user cannot
// hold two rows with the same status on the same post.
type Reaction struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_reaction"`
	PostID    string    `json:"post_id" gorm:"index;uniqueIndex:idx_reaction"` // MongoDB ObjectID as string
	Status    int       `json:"status" gorm:"default:1;uniqueIndex:idx_reaction"`
	CreatedAt time.Time `json:"created_at"`
}
