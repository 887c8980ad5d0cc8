package service

import (
	"context"
	"errors"
	"fmt"

	apperrors "moviestream/internal/errors"
	"moviestream/internal/models"
	"moviestream/internal/repository"
	"moviestream/pkg/auth"

	"go.mongodb.org/mongo-driver/bson"
)

// UserService handles business logic for user operations.
type UserService struct {
	repo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// List returns all users. The only supported filter is email.
func (s *UserService) List(ctx context.Context, filters map[string]string) ([]models.User, error) {
	q := repository.Query{}
	if email, ok := filters["email"]; ok && email != "" {
		q.Filter = bson.M{"email": models.NormalizeEmail(email)}
	}
	return s.repo.GetAll(ctx, q)
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.repo.Read(ctx, id)
}

func (s *UserService) Create(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	return createUser(ctx, s.repo, req)
}

// Update edits a profile. A new password is hashed before it is stored.
func (s *UserService) Update(ctx context.Context, id string, req *models.UpdateUserRequest) (*models.User, error) {
	var hashed string
	if req.Password != nil {
		h, err := hashPassword("user", "password", *req.Password)
		if err != nil {
			return nil, err
		}
		hashed = h
	}

	return s.repo.Update(ctx, id, func(u *models.User) error {
		if err := req.Apply(u); err != nil {
			return err
		}
		if hashed != "" {
			u.Password = hashed
		}
		return nil
	})
}

func (s *UserService) Delete(ctx context.Context, id string) (*models.User, error) {
	return s.repo.Delete(ctx, id)
}

// createUser hashes the password and persists a new account.
func createUser(ctx context.Context, repo repository.UserRepository, req *models.RegisterRequest) (*models.User, error) {
	user, err := req.ToUser()
	if err != nil {
		return nil, err
	}

	hashed, err := hashPassword("user", "password", req.Password)
	if err != nil {
		return nil, err
	}
	user.Password = hashed

	return repo.Create(ctx, user)
}

// hashPassword hashes a plain password. Input bcrypt cannot hash is reported
// as a validation failure on field.
func hashPassword(entity, field, password string) (string, error) {
	hashed, err := auth.HashPassword(password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return "", apperrors.NewValidationError(entity, apperrors.FieldError{Field: field, Rule: "max"})
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return hashed, nil
}
