package models

import "time"

// Friendship statuses. A pair's history is append-only: accepting or
// rejecting a request inserts a new row, the Pending row stays.
const (
	FriendshipPending = "Pending"
	FriendshipAccept  = "Accept"
	FriendshipReject  = "Reject"
)

// Friendship is a directed edge between two users. The composite unique
// index allows at most one row per (sender, receiver, status), so the
// history holds one Pending, one Accept and one Reject row per ordered pair
// at most. "Currently friends" means an Accept row exists in either
// direction.
type Friendship struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	SenderID   uint      `json:"sender_id" gorm:"index;uniqueIndex:idx_friendship_edge"`
	ReceiverID uint      `json:"receiver_id" gorm:"index;uniqueIndex:idx_friendship_edge"`
	Status     string    `json:"status" gorm:"type:varchar(8);default:'Pending';uniqueIndex:idx_friendship_edge"`
	FromDate   time.Time `json:"from_date" gorm:"autoCreateTime"`
}
