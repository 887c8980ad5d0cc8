// Package mocks provides mock implementations of service interfaces for testing.
package mocks

import (
	"context"

	"moviestream/internal/models"
)

// MockAuthService is a mock implementation of AuthServicer.
type MockAuthService struct {
	RegisterFunc func(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	LoginFunc    func(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	MeFunc       func(ctx context.Context, userID string) (*models.User, error)
}

func (m *MockAuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockAuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	if m.MeFunc != nil {
		return m.MeFunc(ctx, userID)
	}
	return nil, nil
}

// MockPasswordService is a mock implementation of PasswordServicer.
type MockPasswordService struct {
	RequestResetFunc       func(ctx context.Context, email string) error
	ValidateResetTokenFunc func(ctx context.Context, token string) error
	ConsumeResetFunc       func(ctx context.Context, token, newPassword string) error
}

func (m *MockPasswordService) RequestReset(ctx context.Context, email string) error {
	if m.RequestResetFunc != nil {
		return m.RequestResetFunc(ctx, email)
	}
	return nil
}

func (m *MockPasswordService) ValidateResetToken(ctx context.Context, token string) error {
	if m.ValidateResetTokenFunc != nil {
		return m.ValidateResetTokenFunc(ctx, token)
	}
	return nil
}

func (m *MockPasswordService) ConsumeReset(ctx context.Context, token, newPassword string) error {
	if m.ConsumeResetFunc != nil {
		return m.ConsumeResetFunc(ctx, token, newPassword)
	}
	return nil
}

// MockCRUDService is a mock implementation of CRUDServicer.
type MockCRUDService[T, C, P any] struct {
	ListFunc   func(ctx context.Context, filters map[string]string) ([]T, error)
	GetFunc    func(ctx context.Context, id string) (*T, error)
	CreateFunc func(ctx context.Context, req *C) (*T, error)
	UpdateFunc func(ctx context.Context, id string, req *P) (*T, error)
	DeleteFunc func(ctx context.Context, id string) (*T, error)
}

func (m *MockCRUDService[T, C, P]) List(ctx context.Context, filters map[string]string) ([]T, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filters)
	}
	return []T{}, nil
}

func (m *MockCRUDService[T, C, P]) Get(ctx context.Context, id string) (*T, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCRUDService[T, C, P]) Create(ctx context.Context, req *C) (*T, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockCRUDService[T, C, P]) Update(ctx context.Context, id string, req *P) (*T, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, req)
	}
	return nil, nil
}

func (m *MockCRUDService[T, C, P]) Delete(ctx context.Context, id string) (*T, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil, nil
}

// MockUserService is a mock implementation of UserServicer.
type MockUserService = MockCRUDService[models.User, models.RegisterRequest, models.UpdateUserRequest]

// MockMovieService is a mock implementation of MovieServicer.
type MockMovieService = MockCRUDService[models.Movie, models.CreateMovieRequest, models.UpdateMovieRequest]
