package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	apperrors "moviestream/internal/errors"
	"moviestream/internal/models"
	repomocks "moviestream/internal/repository/mocks"
	"moviestream/pkg/auth"
	authmocks "moviestream/pkg/auth/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
)

func newRegisterRequest() *models.RegisterRequest {
	return &models.RegisterRequest{
		Username:  "Ana",
		Lastname:  "Lee",
		Birthdate: "1995-03-14",
		Email:     "Ana@Example.com",
		Password:  "Secret1!",
	}
}

func TestAuthService_Register(t *testing.T) {
	t.Run("successfully registers new user", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		mockUserRepo := repomocks.NewMockUserRepository(ctrl)
		mockJWT := authmocks.NewMockTokenManager(ctrl)

		mockUserRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, user *models.User) (*models.User, error) {
				assert.Equal(t, "ana@example.com", user.Email)
				assert.Equal(t, "Ana", user.Username)
				assert.Equal(t, 1995, user.Birthdate.Year())
				assert.NoError(t, auth.CheckPassword("Secret1!", user.Password))
				user.ID = primitive.NewObjectID()
				return user, nil
			})

		service := NewAuthService(mockUserRepo, mockJWT)

		user, err := service.Register(context.Background(), newRegisterRequest())

		require.NoError(t, err)
		assert.False(t, user.ID.IsZero())
	})

	t.Run("returns conflict for existing email", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		mockUserRepo := repomocks.NewMockUserRepository(ctrl)
		mockUserRepo.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(nil, apperrors.ErrUserAlreadyExists)

		service := NewAuthService(mockUserRepo, authmocks.NewMockTokenManager(ctrl))

		user, err := service.Register(context.Background(), newRegisterRequest())

		assert.Nil(t, user)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("rejects a password longer than 72 bytes before touching the store", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		service := NewAuthService(repomocks.NewMockUserRepository(ctrl), authmocks.NewMockTokenManager(ctrl))
		req := newRegisterRequest()
		req.Password = strings.Repeat("é", 40)

		_, err := service.Register(context.Background(), req)

		var vErr *apperrors.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "password", vErr.Fields[0].Field)
	})

	t.Run("rejects malformed birthdate before touching the store", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		service := NewAuthService(repomocks.NewMockUserRepository(ctrl), authmocks.NewMockTokenManager(ctrl))
		req := newRegisterRequest()
		req.Birthdate = "14/03/1995"

		_, err := service.Register(context.Background(), req)

		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := auth.HashPassword("Secret1!")
	require.NoError(t, err)

	stored := &models.User{
		ID:       primitive.NewObjectID(),
		Email:    "ana@example.com",
		Password: hashed,
	}

	t.Run("returns token for valid credentials", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		mockUserRepo := repomocks.NewMockUserRepository(ctrl)
		mockJWT := authmocks.NewMockTokenManager(ctrl)

		mockUserRepo.EXPECT().FindByEmail(gomock.Any(), "ana@example.com").Return(stored, nil)
		mockJWT.EXPECT().GenerateToken(stored.ID.Hex(), "ana@example.com").Return("signed-token", nil)
		mockJWT.EXPECT().ExpiresIn().Return(3600)

		service := NewAuthService(mockUserRepo, mockJWT)

		resp, err := service.Login(context.Background(), &models.LoginRequest{Email: "ana@example.com", Password: "Secret1!"})

		require.NoError(t, err)
		assert.Equal(t, "signed-token", resp.Token)
		assert.Equal(t, 3600, resp.ExpiresIn)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		mockUserRepo := repomocks.NewMockUserRepository(ctrl)
		mockUserRepo.EXPECT().FindByEmail(gomock.Any(), "nobody@example.com").Return(nil, apperrors.ErrUserNotFound)
		mockUserRepo.EXPECT().FindByEmail(gomock.Any(), "ana@example.com").Return(stored, nil)

		service := NewAuthService(mockUserRepo, authmocks.NewMockTokenManager(ctrl))

		_, unknownErr := service.Login(context.Background(), &models.LoginRequest{Email: "nobody@example.com", Password: "Secret1!"})
		_, wrongErr := service.Login(context.Background(), &models.LoginRequest{Email: "ana@example.com", Password: "wrong-password"})

		assert.Equal(t, apperrors.ErrInvalidCredentials, unknownErr)
		assert.Equal(t, apperrors.ErrInvalidCredentials, wrongErr)
		assert.Equal(t, unknownErr.Error(), wrongErr.Error())
	})

	t.Run("propagates store failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		mockUserRepo := repomocks.NewMockUserRepository(ctrl)
		mockUserRepo.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

		service := NewAuthService(mockUserRepo, authmocks.NewMockTokenManager(ctrl))

		_, err := service.Login(context.Background(), &models.LoginRequest{Email: "ana@example.com", Password: "Secret1!"})

		assert.EqualError(t, err, "connection refused")
		assert.NotErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("returns error when token signing fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		mockUserRepo := repomocks.NewMockUserRepository(ctrl)
		mockJWT := authmocks.NewMockTokenManager(ctrl)
		mockUserRepo.EXPECT().FindByEmail(gomock.Any(), gomock.Any()).Return(stored, nil)
		mockJWT.EXPECT().GenerateToken(gomock.Any(), gomock.Any()).Return("", assert.AnError)

		service := NewAuthService(mockUserRepo, mockJWT)

		resp, err := service.Login(context.Background(), &models.LoginRequest{Email: "ana@example.com", Password: "Secret1!"})

		assert.Nil(t, resp)
		assert.Equal(t, assert.AnError, err)
	})
}

func TestAuthService_Me(t *testing.T) {
	ctrl := gomock.NewController(t)

	id := primitive.NewObjectID()
	mockUserRepo := repomocks.NewMockUserRepository(ctrl)
	mockUserRepo.EXPECT().Read(gomock.Any(), id.Hex()).Return(&models.User{ID: id}, nil)

	service := NewAuthService(mockUserRepo, authmocks.NewMockTokenManager(ctrl))

	user, err := service.Me(context.Background(), id.Hex())

	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
}
