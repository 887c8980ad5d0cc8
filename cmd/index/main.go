package main

import (
	"context"
	"time"

	"moviestream/internal/config"
	"moviestream/internal/database"
	"moviestream/internal/logging"
	"moviestream/internal/repository"

	log "github.com/sirupsen/logrus"
)

type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

func main() {
	cfg := config.Load()
	logging.Setup(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})

	log.Info("Starting migration...")

	mongoDB := database.NewMongoDB(cfg.MongoURI, cfg.MongoDatabase)
	defer mongoDB.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	collections := []struct {
		name string
		repo indexer
	}{
		{repository.UsersCollection, repository.NewUserRepository(mongoDB.Database)},
		{repository.MoviesCollection, repository.NewMovieRepository(mongoDB.Database)},
	}

	for _, c := range collections {
		if err := c.repo.EnsureIndexes(ctx); err != nil {
			log.WithError(err).WithField("collection", c.name).Fatal("Failed to create indexes")
		}
		log.WithField("collection", c.name).Info("Indexes ready")
	}

	log.Info("Migration completed successfully!")
}
