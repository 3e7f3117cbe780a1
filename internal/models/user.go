package models

import (
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model  `json:"-"`
	ID          uint   `json:"id" gorm:"primaryKey"`
	Username    string `json:"username" gorm:"uniqueIndex;size:150"`
	Email       string `json:"email" gorm:"uniqueIndex"`
	DisplayName string `json:"display_name"`
	Password    string `json:"-"` // bcrypt hash, never serialized
	FirebaseUID string `json:"firebase_uid,omitempty" gorm:"uniqueIndex"`
}

// SignupRequest defines the request body for local registration.
type SignupRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=150"`
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"display_name" validate:"omitempty,max=100"`
	Password    string `json:"password" validate:"required,min=8"`
}

// SigninRequest defines the request body for local authentication.
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateMeRequest defines the request body for updating the authenticated
// user's own record.
type UpdateMeRequest struct {
	Username    string `json:"username,omitempty" validate:"omitempty,min=3,max=150"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	DisplayName string `json:"display_name,omitempty" validate:"omitempty,max=100"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
