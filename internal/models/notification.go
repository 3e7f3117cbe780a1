package models

import "time"

// Notification types.
const (
	NotificationFriendRequest = "friend_request"
	NotificationFriendAccept  = "friend_accept"
	NotificationFollow        = "follow"
	NotificationLike          = "like"
	NotificationComment       = "comment"
)

// Notification is an inbox entry telling RecipientID that ActorID did
// something. TargetID is a post ID for like/comment notifications and
// empty for relationship ones.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Type        string    `json:"type" gorm:"size:30;index"`
	ActorID     uint      `json:"actor_id" gorm:"index"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	TargetID    string    `json:"target_id,omitempty"`
	Message     string    `json:"message"`
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}
