package repository

import (
	"context"
	"strings"

	apperrors "moviestream/internal/errors"
	"moviestream/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MoviesCollection is the MongoDB collection holding the catalogue.
const MoviesCollection = "movies"

// MovieRepository defines the interface for movie data operations
type MovieRepository interface {
	Repository[models.Movie]
	// ListRecent returns movies newest first. A limit of 0 returns all.
	ListRecent(ctx context.Context, limit int64) ([]models.Movie, error)
	ListByGenre(ctx context.Context, genre string) ([]models.Movie, error)
}

type movieRepository struct {
	*mongoRepository[models.Movie, *models.Movie]
}

// MovieSchema describes the movies collection.
func MovieSchema() Schema[models.Movie] {
	return Schema[models.Movie]{
		Entity:     "movie",
		Collection: MoviesCollection,
		NotFound:   apperrors.ErrMovieNotFound,
		Indexes: []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "createdAt", Value: -1}},
				Options: options.Index().SetName("created_at_desc"),
			},
			{
				Keys:    bson.D{{Key: "genre", Value: 1}},
				Options: options.Index().SetName("genre"),
			},
		},
		Validate: func(m *models.Movie) error {
			if strings.TrimSpace(m.Title) == "" {
				return apperrors.NewValidationError("movie", apperrors.FieldError{Field: "title", Rule: "required"})
			}
			return nil
		},
	}
}

// NewMovieRepository creates a new MovieRepository
func NewMovieRepository(db *mongo.Database) MovieRepository {
	return &movieRepository{newMongoRepository[models.Movie](db, MovieSchema())}
}

func (r *movieRepository) ListRecent(ctx context.Context, limit int64) ([]models.Movie, error) {
	return r.GetAll(ctx, Query{
		Sort:  bson.D{{Key: "createdAt", Value: -1}},
		Limit: limit,
	})
}

func (r *movieRepository) ListByGenre(ctx context.Context, genre string) ([]models.Movie, error) {
	return r.GetAll(ctx, Query{
		Filter: bson.M{"genre": genre},
		Sort:   bson.D{{Key: "createdAt", Value: -1}},
	})
}
