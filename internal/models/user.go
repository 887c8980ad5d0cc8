package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered account.
type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty" example:"507f1f77bcf86cd799439011"`
	Username  string             `json:"username" bson:"username" validate:"required" example:"Ana"`
	Lastname  string             `json:"lastname" bson:"lastname" validate:"required" example:"Lee"`
	Birthdate time.Time          `json:"birthdate" bson:"birthdate" validate:"required,pastdate" example:"2000-01-01T00:00:00Z"`
	Email     string             `json:"email" bson:"email" validate:"required,email" example:"ana@example.com"`
	Password  string             `json:"-" bson:"password" validate:"required"` // bcrypt hash, never serialized

	// Reset fields are set and cleared together.
	ResetPasswordToken   *string    `json:"-" bson:"resetPasswordToken,omitempty"`
	ResetPasswordExpires *time.Time `json:"-" bson:"resetPasswordExpires,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt" example:"2024-01-15T09:30:00Z"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt" example:"2024-01-15T09:30:00Z"`
}

func (u *User) GetID() primitive.ObjectID   { return u.ID }
func (u *User) SetID(id primitive.ObjectID) { u.ID = id }

func (u *User) Touch(now time.Time, created bool) {
	if created || u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
}

// HasPendingReset reports whether a reset token is outstanding at now.
func (u *User) HasPendingReset(now time.Time) bool {
	return u.ResetPasswordToken != nil && u.ResetPasswordExpires != nil && u.ResetPasswordExpires.After(now)
}

// RegisterRequest is the payload for registering (or creating) a user.
type RegisterRequest struct {
	Username  string `json:"username" binding:"required" example:"Ana"`
	Lastname  string `json:"lastname" binding:"required" example:"Lee"`
	Birthdate string `json:"birthdate" binding:"required,date" example:"2000-01-01"`
	Email     string `json:"email" binding:"required,email" example:"ana@example.com"`
	Password  string `json:"password" binding:"required,min=6,max=72" example:"Secret1!"`
}

// ToUser converts the request into a User. The password is left for the
// caller to hash.
func (r *RegisterRequest) ToUser() (*User, error) {
	birthdate, err := parseDateField("user", "birthdate", r.Birthdate)
	if err != nil {
		return nil, err
	}
	return &User{
		Username:  r.Username,
		Lastname:  r.Lastname,
		Birthdate: birthdate,
		Email:     NormalizeEmail(r.Email),
	}, nil
}

// UpdateUserRequest is the payload for a profile edit. Absent fields are left unchanged.
type UpdateUserRequest struct {
	Username  *string `json:"username" binding:"omitempty,min=1" example:"Ana"`
	Lastname  *string `json:"lastname" binding:"omitempty,min=1" example:"Lee"`
	Birthdate *string `json:"birthdate" binding:"omitempty,date" example:"2000-01-01"`
	Email     *string `json:"email" binding:"omitempty,email" example:"ana@example.com"`
	Password  *string `json:"password" binding:"omitempty,min=6,max=72" example:"NewSecret1!"`
}

// Apply copies the set fields onto u. A new password must already be hashed
// by the caller; Apply never touches u.Password.
func (r *UpdateUserRequest) Apply(u *User) error {
	if r.Username != nil {
		u.Username = *r.Username
	}
	if r.Lastname != nil {
		u.Lastname = *r.Lastname
	}
	if r.Birthdate != nil {
		birthdate, err := parseDateField("user", "birthdate", *r.Birthdate)
		if err != nil {
			return err
		}
		u.Birthdate = birthdate
	}
	if r.Email != nil {
		u.Email = NormalizeEmail(*r.Email)
	}
	return nil
}

// LoginRequest is the payload for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"ana@example.com"`
	Password string `json:"password" binding:"required" example:"Secret1!"`
}

// LoginResponse is the response after successful login.
type LoginResponse struct {
	Token     string `json:"token" example:"eyJhbGciOiJIUzI1NiIs..."`
	ExpiresIn int    `json:"expiresIn" example:"3600"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message" example:"registration successful"`
}
