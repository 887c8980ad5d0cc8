// Package service contains business logic for the application.
package service

import (
	"context"

	"moviestream/internal/models"
)

// AuthServicer defines the interface for authentication operations.
type AuthServicer interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	Me(ctx context.Context, userID string) (*models.User, error)
}

// PasswordServicer defines the interface for the password-reset flow.
type PasswordServicer interface {
	RequestReset(ctx context.Context, email string) error
	ValidateResetToken(ctx context.Context, token string) error
	ConsumeReset(ctx context.Context, token, newPassword string) error
}

// CRUDServicer is the generic resource contract served by handler.CRUDHandler.
// T is the entity, C its create payload and P its partial-update payload.
type CRUDServicer[T, C, P any] interface {
	List(ctx context.Context, filters map[string]string) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, req *C) (*T, error)
	Update(ctx context.Context, id string, req *P) (*T, error)
	Delete(ctx context.Context, id string) (*T, error)
}

// UserServicer defines the interface for user operations.
type UserServicer interface {
	CRUDServicer[models.User, models.RegisterRequest, models.UpdateUserRequest]
}

// MovieServicer defines the interface for movie operations.
type MovieServicer interface {
	CRUDServicer[models.Movie, models.CreateMovieRequest, models.UpdateMovieRequest]
}

// Ensure concrete types implement interfaces
var (
	_ AuthServicer     = (*AuthService)(nil)
	_ PasswordServicer = (*PasswordService)(nil)
	_ UserServicer     = (*UserService)(nil)
	_ MovieServicer    = (*MovieService)(nil)
)
