package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Movie represents a title in the catalogue.
type Movie struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty" example:"507f1f77bcf86cd799439011"`
	Title       string             `json:"title" bson:"title" validate:"required" example:"Blade Runner"`
	Description string             `json:"description,omitempty" bson:"description,omitempty" example:"A blade runner must pursue four replicants."`
	Genre       string             `json:"genre" bson:"genre" validate:"required" example:"sci-fi"`
	ReleaseDate time.Time          `json:"releaseDate" bson:"releaseDate" validate:"required" example:"1982-06-25T00:00:00Z"`
	Rating      *float64           `json:"rating,omitempty" bson:"rating,omitempty" validate:"omitempty,gte=0,lte=10" example:"8.1"`
	Duration    *int               `json:"duration,omitempty" bson:"duration,omitempty" validate:"omitempty,gt=0" example:"117"` // minutes
	Director    string             `json:"director,omitempty" bson:"director,omitempty" example:"Ridley Scott"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt" example:"2024-01-15T09:30:00Z"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt" example:"2024-01-15T09:30:00Z"`
}

func (m *Movie) GetID() primitive.ObjectID   { return m.ID }
func (m *Movie) SetID(id primitive.ObjectID) { m.ID = id }

func (m *Movie) Touch(now time.Time, created bool) {
	if created || m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
}

// CreateMovieRequest is the payload for creating a movie.
// Range rules (rating, duration) are enforced by the movie schema.
type CreateMovieRequest struct {
	Title       string   `json:"title" binding:"required" example:"Blade Runner"`
	Description string   `json:"description" example:"A blade runner must pursue four replicants."`
	Genre       string   `json:"genre" binding:"required" example:"sci-fi"`
	ReleaseDate string   `json:"releaseDate" binding:"required,date" example:"1982-06-25"`
	Rating      *float64 `json:"rating" example:"8.1"`
	Duration    *int     `json:"duration" example:"117"`
	Director    string   `json:"director" example:"Ridley Scott"`
}

// ToMovie converts the request into a Movie.
func (r *CreateMovieRequest) ToMovie() (*Movie, error) {
	releaseDate, err := parseDateField("movie", "releaseDate", r.ReleaseDate)
	if err != nil {
		return nil, err
	}
	return &Movie{
		Title:       r.Title,
		Description: r.Description,
		Genre:       r.Genre,
		ReleaseDate: releaseDate,
		Rating:      r.Rating,
		Duration:    r.Duration,
		Director:    r.Director,
	}, nil
}

// UpdateMovieRequest is a partial movie update. Absent fields are left unchanged.
type UpdateMovieRequest struct {
	Title       *string  `json:"title" binding:"omitempty,min=1" example:"Blade Runner"`
	Description *string  `json:"description" example:"Director's cut."`
	Genre       *string  `json:"genre" binding:"omitempty,min=1" example:"sci-fi"`
	ReleaseDate *string  `json:"releaseDate" binding:"omitempty,date" example:"1982-06-25"`
	Rating      *float64 `json:"rating" example:"7"`
	Duration    *int     `json:"duration" example:"117"`
	Director    *string  `json:"director" example:"Ridley Scott"`
}

// Apply copies the set fields onto m.
func (r *UpdateMovieRequest) Apply(m *Movie) error {
	if r.Title != nil {
		m.Title = *r.Title
	}
	if r.Description != nil {
		m.Description = *r.Description
	}
	if r.Genre != nil {
		m.Genre = *r.Genre
	}
	if r.ReleaseDate != nil {
		releaseDate, err := parseDateField("movie", "releaseDate", *r.ReleaseDate)
		if err != nil {
			return err
		}
		m.ReleaseDate = releaseDate
	}
	if r.Rating != nil {
		m.Rating = r.Rating
	}
	if r.Duration != nil {
		m.Duration = r.Duration
	}
	if r.Director != nil {
		m.Director = *r.Director
	}
	return nil
}
