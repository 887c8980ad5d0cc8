//go:build api

// Package api contains API integration tests for the movie streaming backend.
// These tests run against real MongoDB and Redis instances using testcontainers.
//
// Run tests with:
//
//	go test -tags=api -v ./test/api/...
package api

import (
	"context"
	"os"
	"testing"

	"moviestream/internal/validator"
	"moviestream/test/api/testserver"

	log "github.com/sirupsen/logrus"
)

// testServer is the global test server instance shared across all tests.
var testServer *testserver.TestServer

// TestMain sets up the test server and runs all tests.
func TestMain(m *testing.M) {
	validator.RegisterCustomValidators()

	ctx := context.Background()

	log.Info("Starting test containers...")
	var err error
	testServer, err = testserver.New(ctx)
	if err != nil {
		log.WithError(err).Fatal("Failed to create test server")
	}
	log.Info("Test containers started successfully")

	code := m.Run()

	log.Info("Stopping test containers...")
	testServer.Cleanup(ctx)

	os.Exit(code)
}
