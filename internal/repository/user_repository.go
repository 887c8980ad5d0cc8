package repository

import (
	"context"
	"errors"
	"time"

	apperrors "moviestream/internal/errors"
	"moviestream/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UsersCollection is the MongoDB collection holding accounts.
const UsersCollection = "users"

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Repository[models.User]
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	CountByEmail(ctx context.Context, email string) (int64, error)
	// SetResetToken stores a hashed reset token and its expiry.
	SetResetToken(ctx context.Context, id primitive.ObjectID, tokenHash string, expires time.Time) error
	// FindByResetToken returns the user holding an unexpired token.
	FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error)
	// ConsumeResetToken writes the new password hash and clears the token
	// and its expiry in a single update.
	ConsumeResetToken(ctx context.Context, tokenHash, passwordHash string, now time.Time) (*models.User, error)
}

// userRepository implements UserRepository using MongoDB
type userRepository struct {
	*mongoRepository[models.User, *models.User]
}

// UserSchema describes the users collection.
func UserSchema() Schema[models.User] {
	return Schema[models.User]{
		Entity:     "user",
		Collection: UsersCollection,
		NotFound:   apperrors.ErrUserNotFound,
		Conflict:   apperrors.ErrUserAlreadyExists,
		Indexes: []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("email_unique"),
			},
			{
				Keys: bson.D{{Key: "resetPasswordToken", Value: 1}},
				Options: options.Index().SetName("reset_token").
					SetPartialFilterExpression(bson.M{"resetPasswordToken": bson.M{"$exists": true}}),
			},
		},
	}
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{newMongoRepository[models.User](db, UserSchema())}
}

// Create rejects an email that is already registered before inserting.
// The unique index still guards concurrent inserts.
func (r *userRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	user.Email = models.NormalizeEmail(user.Email)

	existing, err := r.FindByEmail(ctx, user.Email)
	if err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrUserAlreadyExists
	}
	return r.mongoRepository.Create(ctx, user)
}

// FindByEmail finds a user by their email
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.FindOne(ctx, bson.M{"email": models.NormalizeEmail(email)})
}

func (r *userRepository) CountByEmail(ctx context.Context, email string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"email": models.NormalizeEmail(email)})
}

func (r *userRepository) SetResetToken(ctx context.Context, id primitive.ObjectID, tokenHash string, expires time.Time) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"resetPasswordToken":   tokenHash,
			"resetPasswordExpires": expires,
			"updatedAt":            r.now(),
		}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error) {
	user, err := r.FindOne(ctx, resetTokenFilter(tokenHash, now))
	if errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, apperrors.ErrInvalidOrExpiredToken
	}
	return user, err
}

func (r *userRepository) ConsumeResetToken(ctx context.Context, tokenHash, passwordHash string, now time.Time) (*models.User, error) {
	user, err := r.UpdateFields(ctx,
		resetTokenFilter(tokenHash, now),
		bson.M{
			"$set":   bson.M{"password": passwordHash, "updatedAt": now},
			"$unset": bson.M{"resetPasswordToken": "", "resetPasswordExpires": ""},
		},
	)
	if errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, apperrors.ErrInvalidOrExpiredToken
	}
	return user, err
}

func resetTokenFilter(tokenHash string, now time.Time) bson.M {
	return bson.M{
		"resetPasswordToken":   tokenHash,
		"resetPasswordExpires": bson.M{"$gt": now},
	}
}
