package main

import (
	"context"
	"time"

	"moviestream/internal/config"
	"moviestream/internal/database"
	"moviestream/internal/logging"
	"moviestream/internal/models"
	"moviestream/internal/repository"
	"moviestream/pkg/auth"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
)

const demoPassword = "password123"

var demoUsers = []models.RegisterRequest{
	{Username: "Ana", Lastname: "Lopez", Birthdate: "1990-04-12", Email: "ana@example.com"},
	{Username: "Ben", Lastname: "Okafor", Birthdate: "1985-11-03", Email: "ben@example.com"},
}

var demoMovies = []models.CreateMovieRequest{
	{Title: "Blade Runner", Genre: "sci-fi", ReleaseDate: "1982-06-25", Director: "Ridley Scott",
		Description: "A blade runner must pursue four replicants.", Rating: float64Ptr(8.1), Duration: intPtr(117)},
	{Title: "Alien", Genre: "sci-fi", ReleaseDate: "1979-05-25", Director: "Ridley Scott",
		Description: "The crew of the Nostromo answers a distress call.", Rating: float64Ptr(8.5), Duration: intPtr(117)},
	{Title: "The Third Man", Genre: "noir", ReleaseDate: "1949-09-02", Director: "Carol Reed",
		Description: "A writer arrives in postwar Vienna to find his friend dead.", Rating: float64Ptr(8.1), Duration: intPtr(104)},
	{Title: "Spirited Away", Genre: "animation", ReleaseDate: "2001-07-20", Director: "Hayao Miyazaki",
		Description: "A girl wanders into a world of spirits.", Rating: float64Ptr(8.6), Duration: intPtr(125)},
	{Title: "Parasite", Genre: "thriller", ReleaseDate: "2019-05-30", Director: "Bong Joon-ho",
		Description: "Greed and class discrimination threaten a new relationship.", Rating: float64Ptr(8.5), Duration: intPtr(132)},
}

func main() {
	cfg := config.Load()
	logging.Setup(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})

	log.Info("Starting seed...")

	mongoDB := database.NewMongoDB(cfg.MongoURI, cfg.MongoDatabase)
	defer mongoDB.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	userRepo := repository.NewUserRepository(mongoDB.Database)
	movieRepo := repository.NewMovieRepository(mongoDB.Database)

	seedUsers(ctx, mongoDB, userRepo)
	seedMovies(ctx, mongoDB, movieRepo)

	log.Info("Seed completed successfully!")
}

func seedUsers(ctx context.Context, db *database.MongoDB, repo repository.UserRepository) {
	if _, err := db.Collection(repository.UsersCollection).DeleteMany(ctx, bson.M{}); err != nil {
		log.WithError(err).Fatal("Failed to clear users")
	}
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.WithError(err).Fatal("Failed to create user indexes")
	}

	hash, err := auth.HashPassword(demoPassword)
	if err != nil {
		log.WithError(err).Fatal("Failed to hash password")
	}

	for i := range demoUsers {
		user, err := demoUsers[i].ToUser()
		if err != nil {
			log.WithError(err).Fatal("Invalid demo user")
		}
		user.Password = hash

		created, err := repo.Create(ctx, user)
		if err != nil {
			log.WithError(err).WithField("email", user.Email).Fatal("Failed to create user")
		}
		log.WithFields(log.Fields{"id": created.ID.Hex(), "email": created.Email}).Info("Created user")
	}
}

func seedMovies(ctx context.Context, db *database.MongoDB, repo repository.MovieRepository) {
	if _, err := db.Collection(repository.MoviesCollection).DeleteMany(ctx, bson.M{}); err != nil {
		log.WithError(err).Fatal("Failed to clear movies")
	}
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.WithError(err).Fatal("Failed to create movie indexes")
	}

	for i := range demoMovies {
		movie, err := demoMovies[i].ToMovie()
		if err != nil {
			log.WithError(err).Fatal("Invalid demo movie")
		}

		created, err := repo.Create(ctx, movie)
		if err != nil {
			log.WithError(err).WithField("title", movie.Title).Fatal("Failed to create movie")
		}
		log.WithFields(log.Fields{"id": created.ID.Hex(), "title": created.Title}).Info("Created movie")
	}
}

func float64Ptr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }
