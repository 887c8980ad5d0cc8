package service

import (
	"context"
	"regexp"

	"moviestream/internal/models"
	"moviestream/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MovieService handles business logic for the catalogue.
type MovieService struct {
	repo repository.MovieRepository
}

// NewMovieService creates a new MovieService.
func NewMovieService(repo repository.MovieRepository) *MovieService {
	return &MovieService{repo: repo}
}

// List returns movies newest first. Supported filters are genre and
// director (exact) and title (case-insensitive substring). Other keys are
// ignored.
func (s *MovieService) List(ctx context.Context, filters map[string]string) ([]models.Movie, error) {
	filter := bson.M{}
	for _, key := range []string{"genre", "director"} {
		if v := filters[key]; v != "" {
			filter[key] = v
		}
	}
	if v := filters["title"]; v != "" {
		filter["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(v), Options: "i"}
	}

	switch {
	case len(filter) == 0:
		return s.repo.ListRecent(ctx, 0)
	case len(filter) == 1 && filter["genre"] != nil:
		return s.repo.ListByGenre(ctx, filters["genre"])
	}

	return s.repo.GetAll(ctx, repository.Query{
		Filter: filter,
		Sort:   bson.D{{Key: "createdAt", Value: -1}},
	})
}

func (s *MovieService) Get(ctx context.Context, id string) (*models.Movie, error) {
	return s.repo.Read(ctx, id)
}

func (s *MovieService) Create(ctx context.Context, req *models.CreateMovieRequest) (*models.Movie, error) {
	movie, err := req.ToMovie()
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, movie)
}

func (s *MovieService) Update(ctx context.Context, id string, req *models.UpdateMovieRequest) (*models.Movie, error) {
	return s.repo.Update(ctx, id, req.Apply)
}

func (s *MovieService) Delete(ctx context.Context, id string) (*models.Movie, error) {
	return s.repo.Delete(ctx, id)
}
