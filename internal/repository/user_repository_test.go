package repository

import (
	"context"
	"testing"
	"time"

	apperrors "moviestream/internal/errors"
	"moviestream/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func newTestUser(email string) *models.User {
	return &models.User{
		Username:  "Ana",
		Lastname:  "Lee",
		Birthdate: time.Date(1995, 3, 14, 0, 0, 0, 0, time.UTC),
		Email:     email,
		Password:  "hashedpassword",
	}
}

func TestNewUserRepository(t *testing.T) {
	tdb := SetupTestDB(t)
	defer tdb.Cleanup(t)

	repo := NewUserRepository(tdb.Database)

	assert.NotNil(t, repo)
}

func TestUserRepository_Create(t *testing.T) {
	tdb := SetupTestDB(t)
	defer tdb.Cleanup(t)

	repo := NewUserRepository(tdb.Database)
	ctx := context.Background()
	require.NoError(t, repo.EnsureIndexes(ctx))

	t.Run("successfully creates user", func(t *testing.T) {
		tdb.ClearCollection(t, UsersCollection)

		user, err := repo.Create(ctx, newTestUser("Test@Example.com"))

		require.NoError(t, err)
		assert.False(t, user.ID.IsZero())
		assert.Equal(t, "test@example.com", user.Email)
		assert.NotZero(t, user.CreatedAt)
		assert.NotZero(t, user.UpdatedAt)
	})

	t.Run("returns error for duplicate email", func(t *testing.T) {
		tdb.ClearCollection(t, UsersCollection)

		_, err := repo.Create(ctx, newTestUser("duplicate@example.com"))
		require.NoError(t, err)

		_, err = repo.Create(ctx, newTestUser("DUPLICATE@example.com"))

		assert.Equal(t, apperrors.ErrUserAlreadyExists, err)
		count, err := repo.CountByEmail(ctx, "duplicate@example.com")
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("unique index rejects duplicate insert", func(t *testing.T) {
		tdb.ClearCollection(t, UsersCollection)

		_, err := tdb.Database.Collection(UsersCollection).InsertOne(ctx, newTestUser("raced@example.com"))
		require.NoError(t, err)

		// Bypass the pre-insert lookup to reach the index.
		base := NewUserRepository(tdb.Database).(*userRepository).mongoRepository
		_, err = base.Create(ctx, newTestUser("raced@example.com"))

		assert.Equal(t, apperrors.ErrUserAlreadyExists, err)
	})

	t.Run("rejects future birthdate", func(t *testing.T) {
		tdb.ClearCollection(t, UsersCollection)

		user := newTestUser("future@example.com")
		user.Birthdate = time.Now().Add(48 * time.Hour)

		_, err := repo.Create(ctx, user)

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		count, _ := tdb.Database.Collection(UsersCollection).CountDocuments(ctx, bson.M{})
		assert.Zero(t, count)
	})

	t.Run("rejects missing username", func(t *testing.T) {
		tdb.ClearCollection(t, UsersCollection)

		user := newTestUser("nameless@example.com")
		user.Username = ""

		_, err := repo.Create(ctx, user)

		var vErr *apperrors.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "username", vErr.Fields[0].Field)
	})
}

func TestUserRepository_Read(t *testing.T) {
	tdb := SetupTestDB(t)
	defer tdb.Cleanup(t)

	repo := NewUserRepository(tdb.Database)
	ctx := context.Background()

	t.Run("finds existing user", func(t *testing.T) {
		tdb.ClearCollection(t, UsersCollection)

		created, err := repo.Create(ctx, newTestUser("find@example.com"))
		require.NoError(t, err)

		found, err := repo.Read(ctx, created.ID.Hex())

		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, "find@example.com", found.Email)
	})

	t.Run("returns not found for missing id", func(t *testing.T) {
		_, err := repo.Read(ctx, "507f1f77bcf86cd799439011")

		assert.Equal(t, apperrors.ErrUserNotFound, err)
	})

	t.Run("returns not found for malformed id", func(t *testing.T) {
		_, err := repo.Read(ctx, "not-an-id")

		assert.Equal(t, apperrors.ErrUserNotFound, err)
	})
}

func TestUserRepository_FindByEmail(t *testing.T) {
	tdb := SetupTestDB(t)
	defer tdb.Cleanup(t)

	repo := NewUserRepository(tdb.Database)
	ctx := context.Background()

	_, err := repo.Create(ctx, newTestUser("email@example.com"))
	require.NoError(t, err)

	t.Run("matches case-insensitively", func(t *testing.T) {
		found, err := repo.FindByEmail(ctx, " Email@Example.com ")

		require.NoError(t, err)
		assert.Equal(t, "email@example.com", found.Email)
	})

	t.Run("returns not found for unknown email", func(t *testing.T) {
		_, err := repo.FindByEmail(ctx, "nobody@example.com")

		assert.Equal(t, apperrors.ErrUserNotFound, err)
	})
}

func TestUserRepository_Update(t *testing.T) {
	tdb := SetupTestDB(t)
	defer tdb.Cleanup(t)

	repo := NewUserRepository(tdb.Database)
	ctx := context.Background()
	require.NoError(t, repo.EnsureIndexes(ctx))

	t.Run("applies changes and returns stored document", func(t *testing.T) {
		tdb.ClearCollection(t, UsersCollection)

		created, err := repo.Create(ctx, newTestUser("update@example.com"))
		require.NoError(t, err)

		updated, err := repo.Update(ctx, created.ID.Hex(), func(u *models.User) error {
			u.Username = "Updated"
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, "Updated", updated.Username)
		assert.Equal(t, "Lee", updated.Lastname)
		assert.True(t, !updated.UpdatedAt.Before(created.UpdatedAt))
	})

	t.Run("keeps a reset consumed while the patch was applied", func(t *testing.T) {
		tdb.ClearCollection(t, UsersCollection)

		created, err := repo.Create(ctx, newTestUser("pending@example.com"))
		require.NoError(t, err)
		require.NoError(t, repo.SetResetToken(ctx, created.ID, "digest", time.Now().Add(time.Hour)))

		updated, err := repo.Update(ctx, created.ID.Hex(), func(u *models.User) error {
			require.NotNil(t, u.ResetPasswordToken)
			_, err := repo.ConsumeResetToken(ctx, "digest", "new-hash", time.Now())
			require.NoError(t, err)

			u.Lastname = "Changed"
			return nil
		})
		require.NoError(t, err)

		assert.Equal(t, "Changed", updated.Lastname)
		assert.Equal(t, "new-hash", updated.Password)
		assert.Nil(t, updated.ResetPasswordToken)
		assert.Nil(t, updated.ResetPasswordExpires)

		_, err = repo.ConsumeResetToken(ctx, "digest", "replayed-hash", time.Now())
		assert.Equal(t, apperrors.ErrInvalidOrExpiredToken, err)
	})

	t.Run("unsets fields the patch cleared", func(t *testing.T) {
		tdb.ClearCollection(t, UsersCollection)

		created, err := repo.Create(ctx, newTestUser("cleared@example.com"))
		require.NoError(t, err)
		require.NoError(t, repo.SetResetToken(ctx, created.ID, "digest", time.Now().Add(time.Hour)))

		updated, err := repo.Update(ctx, created.ID.Hex(), func(u *models.User) error {
			u.ResetPasswordToken = nil
			u.ResetPasswordExpires = nil
			return nil
		})
		require.NoError(t, err)

		assert.Nil(t, updated.ResetPasswordToken)
		_, err = repo.FindByResetToken(ctx, "digest", time.Now())
		assert.Equal(t, apperrors.ErrInvalidOrExpiredToken, err)
	})

	t.Run("rejects taken email", func(t *testing.T) {
		tdb.ClearCollection(t, UsersCollection)

		_, err := repo.Create(ctx, newTestUser("first@example.com"))
		require.NoError(t, err)
		second, err := repo.Create(ctx, newTestUser("second@example.com"))
		require.NoError(t, err)

		_, err = repo.Update(ctx, second.ID.Hex(), func(u *models.User) error {
			u.Email = "first@example.com"
			return nil
		})

		assert.Equal(t, apperrors.ErrUserAlreadyExists, err)
	})

	t.Run("rejects invalid result", func(t *testing.T) {
		tdb.ClearCollection(t, UsersCollection)

		created, err := repo.Create(ctx, newTestUser("invalid@example.com"))
		require.NoError(t, err)

		_, err = repo.Update(ctx, created.ID.Hex(), func(u *models.User) error {
			u.Email = "not-an-email"
			return nil
		})
		assert.ErrorIs(t, err, apperrors.ErrValidation)

		found, err := repo.Read(ctx, created.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, "invalid@example.com", found.Email)
	})

	t.Run("returns not found for missing user", func(t *testing.T) {
		_, err := repo.Update(ctx, "507f1f77bcf86cd799439011", func(u *models.User) error { return nil })

		assert.Equal(t, apperrors.ErrUserNotFound, err)
	})
}

func TestUserRepository_Delete(t *testing.T) {
	tdb := SetupTestDB(t)
	defer tdb.Cleanup(t)

	repo := NewUserRepository(tdb.Database)
	ctx := context.Background()

	t.Run("returns the removed document", func(t *testing.T) {
		tdb.ClearCollection(t, UsersCollection)

		created, err := repo.Create(ctx, newTestUser("delete@example.com"))
		require.NoError(t, err)

		removed, err := repo.Delete(ctx, created.ID.Hex())

		require.NoError(t, err)
		assert.Equal(t, created.ID, removed.ID)

		_, err = repo.Read(ctx, created.ID.Hex())
		assert.Equal(t, apperrors.ErrUserNotFound, err)
	})

	t.Run("returns not found for missing user", func(t *testing.T) {
		_, err := repo.Delete(ctx, "507f1f77bcf86cd799439011")

		assert.Equal(t, apperrors.ErrUserNotFound, err)
	})
}

func TestUserRepository_ResetToken(t *testing.T) {
	tdb := SetupTestDB(t)
	defer tdb.Cleanup(t)

	repo := NewUserRepository(tdb.Database)
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("consume writes password and clears token", func(t *testing.T) {
		tdb.ClearCollection(t, UsersCollection)

		created, err := repo.Create(ctx, newTestUser("reset@example.com"))
		require.NoError(t, err)
		require.NoError(t, repo.SetResetToken(ctx, created.ID, "digest", now.Add(time.Hour)))

		user, err := repo.ConsumeResetToken(ctx, "digest", "newhash", now)

		require.NoError(t, err)
		assert.Equal(t, "newhash", user.Password)
		assert.Nil(t, user.ResetPasswordToken)
		assert.Nil(t, user.ResetPasswordExpires)
	})

	t.Run("token is single use", func(t *testing.T) {
		tdb.ClearCollection(t, UsersCollection)

		created, err := repo.Create(ctx, newTestUser("once@example.com"))
		require.NoError(t, err)
		require.NoError(t, repo.SetResetToken(ctx, created.ID, "digest", now.Add(time.Hour)))

		_, err = repo.ConsumeResetToken(ctx, "digest", "first", now)
		require.NoError(t, err)

		_, err = repo.ConsumeResetToken(ctx, "digest", "second", now)
		assert.Equal(t, apperrors.ErrInvalidOrExpiredToken, err)

		found, err := repo.Read(ctx, created.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, "first", found.Password)
	})

	t.Run("expired token is rejected and password unchanged", func(t *testing.T) {
		tdb.ClearCollection(t, UsersCollection)

		created, err := repo.Create(ctx, newTestUser("expired@example.com"))
		require.NoError(t, err)
		require.NoError(t, repo.SetResetToken(ctx, created.ID, "digest", now.Add(-time.Minute)))

		_, err = repo.ConsumeResetToken(ctx, "digest", "newhash", now)
		assert.Equal(t, apperrors.ErrInvalidOrExpiredToken, err)

		_, err = repo.FindByResetToken(ctx, "digest", now)
		assert.Equal(t, apperrors.ErrInvalidOrExpiredToken, err)

		found, err := repo.Read(ctx, created.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, "hashedpassword", found.Password)
	})

	t.Run("new token replaces the previous one", func(t *testing.T) {
		tdb.ClearCollection(t, UsersCollection)

		created, err := repo.Create(ctx, newTestUser("replace@example.com"))
		require.NoError(t, err)
		require.NoError(t, repo.SetResetToken(ctx, created.ID, "old", now.Add(time.Hour)))
		require.NoError(t, repo.SetResetToken(ctx, created.ID, "new", now.Add(time.Hour)))

		_, err = repo.FindByResetToken(ctx, "old", now)
		assert.Equal(t, apperrors.ErrInvalidOrExpiredToken, err)

		found, err := repo.FindByResetToken(ctx, "new", now)
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
	})

	t.Run("set token on missing user", func(t *testing.T) {
		created := newTestUser("ghost@example.com")
		created.ID[0] = 1

		err := repo.SetResetToken(ctx, created.ID, "digest", now.Add(time.Hour))

		assert.Equal(t, apperrors.ErrUserNotFound, err)
	})
}
