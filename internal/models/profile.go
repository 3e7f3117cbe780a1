package models

import "gorm.io/gorm"

// Profile is the one-to-one extension of a User. At most one Profile exists
// per user, created at registration and deleted together with the user.
type Profile struct {
	gorm.Model `json:"-"`
	ID         uint   `json:"id" gorm:"primaryKey"`
	UserID     uint   `json:"user_id" gorm:"uniqueIndex"`
	Sex        string `json:"sex,omitempty" gorm:"size:6"` // Male or Female, optional
	Age        int    `json:"age,omitempty"`
	Bio        string `json:"bio" gorm:"size:240"`
	City       string `json:"city" gorm:"size:30"`
	AvatarURL  string `json:"avatar_url,omitempty"`
	// Code is a random code used for registration and for password reset.
	Code string `json:"-" gorm:"size:15"`
}

// UpdateProfileRequest defines the request body for updating the
// authenticated user's profile.
type UpdateProfileRequest struct {
	Sex  string `json:"sex,omitempty" validate:"omitempty,oneof=Male Female"`
	Age  int    `json:"age,omitempty" validate:"omitempty,min=0,max=150"`
	Bio  string `json:"bio,omitempty" validate:"omitempty,max=240"`
	City string `json:"city,omitempty" validate:"omitempty,max=30"`
}
