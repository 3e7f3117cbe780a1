package models

import "time"

// Comment is a user remark attached to a post. Posts live in MongoDB, so
// PostID carries the ObjectID hex rather than a relational foreign key.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"index"`
	UserID    uint      `json:"user_id" gorm:"index"`
	Body      string    `json:"body" gorm:"size:500"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCommentRequest defines the request body for commenting on a post
type CreateCommentRequest struct {
	Body string `json:"body" validate:"required,min=1,max=500"`
}

// UpdateCommentRequest defines the request body for editing a comment
type UpdateCommentRequest struct {
	Body string `json:"body" validate:"required,min=1,max=500"`
}
