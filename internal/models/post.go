package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents authored content stored in MongoDB.
type Post struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AuthorID  uint               `json:"author_id" bson:"author_id"`
	Title     string             `json:"title" bson:"title"`
	Body      string             `json:"body" bson:"body"`
	ImageURL  string             `json:"image_url,omitempty" bson:"image_url,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title    string `json:"title" validate:"required,min=1,max=200"`
	Body     string `json:"body" validate:"required,min=1"`
	ImageURL string `json:"image_url,omitempty" validate:"omitempty,url"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	Title    string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Body     string `json:"body,omitempty" validate:"omitempty,min=1"`
	ImageURL string `json:"image_url,omitempty" validate:"omitempty,url"`
}
