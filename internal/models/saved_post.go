package models

import "time"

// SavedPost is a bookmark. The composite unique index makes saving
// idempotent the same way reactions are.
type SavedPost struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_saved_post"`
	PostID    string    `json:"post_id" gorm:"index;uniqueIndex:idx_saved_post"` // MongoDB ObjectID as string
	CreatedAt time.Time `json:"created_at"`
}
