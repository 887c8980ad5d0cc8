package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	apperrors "moviestream/internal/errors"
	"moviestream/internal/mail"
	"moviestream/internal/repository"
	"moviestream/pkg/auth"

	"github.com/sirupsen/logrus"
)

// MinPasswordLength is the shortest password accepted anywhere.
const MinPasswordLength = 6

// PasswordService runs the forgot-password flow. A user holds at most one
// pending token; only its SHA-256 hash is stored.
type PasswordService struct {
	userRepo repository.UserRepository
	mailer   mail.Mailer
	tokens   auth.ResetTokenGenerator
	expiry   time.Duration
	now      func() time.Time
	logger   logrus.FieldLogger
}

// PasswordServiceConfig holds configuration for PasswordService.
type PasswordServiceConfig struct {
	UserRepo       repository.UserRepository
	Mailer         mail.Mailer
	TokenGenerator auth.ResetTokenGenerator
	TokenExpiry    time.Duration
	Logger         logrus.FieldLogger
}

// NewPasswordService creates a new PasswordService.
func NewPasswordService(cfg PasswordServiceConfig) *PasswordService {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	tokens := cfg.TokenGenerator
	if tokens == nil {
		tokens = auth.NewResetTokenGenerator()
	}
	expiry := cfg.TokenExpiry
	if expiry <= 0 {
		expiry = time.Hour
	}
	return &PasswordService{
		userRepo: cfg.UserRepo,
		mailer:   cfg.Mailer,
		tokens:   tokens,
		expiry:   expiry,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   logger.WithField("component", "password_reset"),
	}
}

// RequestReset issues a new token for email and mails it. Unknown emails
// succeed silently. A failed send leaves the stored token in place.
func (s *PasswordService) RequestReset(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			s.logger.WithField("email", email).Warn("password reset requested for unknown email")
			return nil
		}
		return err
	}

	token, hash, err := s.tokens.Generate()
	if err != nil {
		return err
	}

	if err := s.userRepo.SetResetToken(ctx, user.ID, hash, s.now().Add(s.expiry)); err != nil {
		return err
	}

	if err := s.mailer.SendPasswordReset(ctx, user.Email, token); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrEmailDelivery, err)
	}

	s.logger.WithField("userId", user.ID.Hex()).Info("password reset token issued")
	return nil
}

// ValidateResetToken reports whether token is pending and unexpired without
// consuming it.
func (s *PasswordService) ValidateResetToken(ctx context.Context, token string) error {
	if token == "" {
		return apperrors.ErrInvalidOrExpiredToken
	}
	now := s.now()
	user, err := s.userRepo.FindByResetToken(ctx, s.tokens.Hash(token), now)
	if err != nil {
		return err
	}
	if !user.HasPendingReset(now) {
		return apperrors.ErrInvalidOrExpiredToken
	}
	return nil
}

// ConsumeReset sets a new password and clears the token in one write.
func (s *PasswordService) ConsumeReset(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return apperrors.ErrInvalidOrExpiredToken
	}
	if utf8.RuneCountInString(newPassword) < MinPasswordLength {
		return apperrors.NewValidationError("password", apperrors.FieldError{Field: "newPassword", Rule: "min"})
	}

	hashed, err := hashPassword("password", "newPassword", newPassword)
	if err != nil {
		return err
	}

	user, err := s.userRepo.ConsumeResetToken(ctx, s.tokens.Hash(token), hashed, s.now())
	if err != nil {
		return err
	}

	s.logger.WithField("userId", user.ID.Hex()).Info("password reset completed")
	return nil
}
