// Package fixtures provides test data builders for unit and integration tests.
package fixtures

import (
	"fmt"
	"sync"
	"time"

	"moviestream/internal/models"
	"moviestream/pkg/auth"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultPassword is the plaintext behind every built user's hash unless
// WithPassword is used.
const DefaultPassword = "password123"

var (
	defaultHashOnce sync.Once
	defaultHash     string
)

func hashOf(password string) string {
	hash, err := auth.HashPassword(password)
	if err != nil {
		panic(fmt.Sprintf("fixtures: hash password: %v", err))
	}
	return hash
}

func defaultPasswordHash() string {
	defaultHashOnce.Do(func() { defaultHash = hashOf(DefaultPassword) })
	return defaultHash
}

// ===== User Fixtures =====

// UserBuilder provides fluent API for building test users.
type UserBuilder struct {
	user     models.User
	password string
}

// NewUser creates a new UserBuilder with sensible defaults.
func NewUser() *UserBuilder {
	return &UserBuilder{
		user: models.User{
			Username:  "Test",
			Lastname:  "User",
			Birthdate: time.Date(1990, time.April, 12, 0, 0, 0, 0, time.UTC),
			Email:     fmt.Sprintf("test-%s@example.com", primitive.NewObjectID().Hex()[16:]),
		},
	}
}

func (b *UserBuilder) WithID(id primitive.ObjectID) *UserBuilder {
	b.user.ID = id
	return b
}

func (b *UserBuilder) WithName(username, lastname string) *UserBuilder {
	b.user.Username = username
	b.user.Lastname = lastname
	return b
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.user.Email = email
	return b
}

func (b *UserBuilder) WithBirthdate(birthdate time.Time) *UserBuilder {
	b.user.Birthdate = birthdate
	return b
}

// WithPassword sets the plaintext password; Build stores its bcrypt hash.
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// WithResetToken stores tokenHash as the pending reset expiring at expires.
func (b *UserBuilder) WithResetToken(tokenHash string, expires time.Time) *UserBuilder {
	b.user.ResetPasswordToken = &tokenHash
	b.user.ResetPasswordExpires = &expires
	return b
}

func (b *UserBuilder) Build() models.User {
	user := b.user
	if b.password != "" {
		user.Password = hashOf(b.password)
	} else {
		user.Password = defaultPasswordHash()
	}
	return user
}

func (b *UserBuilder) BuildPtr() *models.User {
	user := b.Build()
	return &user
}

// ===== Movie Fixtures =====

// MovieBuilder provides fluent API for building test movies.
type MovieBuilder struct {
	movie models.Movie
}

// NewMovie creates a new MovieBuilder with sensible defaults.
func NewMovie() *MovieBuilder {
	rating := 7.5
	duration := 110
	return &MovieBuilder{
		movie: models.Movie{
			Title:       fmt.Sprintf("Test Movie %s", primitive.NewObjectID().Hex()[16:]),
			Description: "A test movie",
			Genre:       "drama",
			ReleaseDate: time.Date(2001, time.March, 9, 0, 0, 0, 0, time.UTC),
			Rating:      &rating,
			Duration:    &duration,
			Director:    "Test Director",
		},
	}
}

func (b *MovieBuilder) WithID(id primitive.ObjectID) *MovieBuilder {
	b.movie.ID = id
	return b
}

func (b *MovieBuilder) WithTitle(title string) *MovieBuilder {
	b.movie.Title = title
	return b
}

func (b *MovieBuilder) WithGenre(genre string) *MovieBuilder {
	b.movie.Genre = genre
	return b
}

func (b *MovieBuilder) WithDirector(director string) *MovieBuilder {
	b.movie.Director = director
	return b
}

func (b *MovieBuilder) WithRating(rating float64) *MovieBuilder {
	b.movie.Rating = &rating
	return b
}

func (b *MovieBuilder) WithReleaseDate(date time.Time) *MovieBuilder {
	b.movie.ReleaseDate = date
	return b
}

func (b *MovieBuilder) Build() models.Movie {
	return b.movie
}

func (b *MovieBuilder) BuildPtr() *models.Movie {
	movie := b.movie
	return &movie
}
