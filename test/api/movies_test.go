//go:build api

package api

import (
	"net/http"
	"testing"

	"moviestream/internal/models"
	"moviestream/test/api/testserver"
	"moviestream/test/fixtures"
	"moviestream/test/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func titles(t *testing.T, list []interface{}) []string {
	t.Helper()
	out := make([]string, len(list))
	for i, item := range list {
		out[i] = item.(map[string]interface{})["title"].(string)
	}
	return out
}

func TestMovies(t *testing.T) {
	testServer.CleanupBetweenTests(t)
	authHelper := testserver.NewAuthHelper(testServer)
	movieHelper := testserver.NewMovieHelper(testServer)
	_, token := authHelper.CreateAuthenticatedUser(t, "ana@example.com", "password123")

	rating := 8.1
	created := movieHelper.CreateMovie(t, token, models.CreateMovieRequest{
		Title:       "Blade Runner",
		Genre:       "sci-fi",
		ReleaseDate: "1982-06-25",
		Rating:      &rating,
		Director:    "Ridley Scott",
	})
	movieID := testserver.GetIDFromResponse(t, created)

	movieHelper.SeedMovie(t, fixtures.NewMovie().WithTitle("The Third Man").WithGenre("noir").WithDirector("Carol Reed").BuildPtr())
	movieHelper.SeedMovie(t, fixtures.NewMovie().WithTitle("Alien").WithGenre("sci-fi").WithDirector("Ridley Scott").BuildPtr())

	t.Run("create requires a token", func(t *testing.T) {
		w := testutil.MakeRequest(t, testServer.Router, http.MethodPost, "/movies", models.CreateMovieRequest{
			Title: "Heat", Genre: "crime", ReleaseDate: "1995-12-15",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("create validates fields", func(t *testing.T) {
		tooHigh := 11.0
		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodPost, "/movies", token, models.CreateMovieRequest{
			Title: "Heat", Genre: "crime", ReleaseDate: "1995-12-15", Rating: &tooHigh,
		})
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "rating", testutil.ParseAPIResponse(t, w).Details[0]["field"])
	})

	t.Run("list is public and newest first", func(t *testing.T) {
		w := testutil.MakeRequest(t, testServer.Router, http.MethodGet, "/movies", nil)
		require.Equal(t, http.StatusOK, w.Code)

		assert.Equal(t, []string{"Alien", "The Third Man", "Blade Runner"}, titles(t, testutil.ParseAPIResponse(t, w).DataList(t)))
	})

	t.Run("filter by genre", func(t *testing.T) {
		w := testutil.MakeRequest(t, testServer.Router, http.MethodGet, "/api/movies?genre=sci-fi", nil)
		require.Equal(t, http.StatusOK, w.Code)

		assert.Equal(t, []string{"Alien", "Blade Runner"}, titles(t, testutil.ParseAPIResponse(t, w).DataList(t)))
	})

	t.Run("filter by title substring", func(t *testing.T) {
		w := testutil.MakeRequest(t, testServer.Router, http.MethodGet, "/movies?title=third", nil)
		require.Equal(t, http.StatusOK, w.Code)

		assert.Equal(t, []string{"The Third Man"}, titles(t, testutil.ParseAPIResponse(t, w).DataList(t)))
	})

	t.Run("get by id", func(t *testing.T) {
		w := testutil.MakeRequest(t, testServer.Router, http.MethodGet, "/movies/"+movieID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Ridley Scott", testutil.ParseAPIResponse(t, w).DataMap(t)["director"])
	})

	t.Run("partial update keeps other fields", func(t *testing.T) {
		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodPut, "/movies/"+movieID, token,
			map[string]interface{}{"rating": 9})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		data := testutil.ParseAPIResponse(t, w).DataMap(t)
		assert.Equal(t, float64(9), data["rating"])
		assert.Equal(t, "Blade Runner", data["title"])
		assert.Equal(t, "sci-fi", data["genre"])
	})

	t.Run("update of a missing movie", func(t *testing.T) {
		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodPut, "/movies/"+primitive.NewObjectID().Hex(), token,
			map[string]interface{}{"rating": 9})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete returns the movie then 404", func(t *testing.T) {
		w := testutil.MakeAuthRequest(t, testServer.Router, http.MethodDelete, "/movies/"+movieID, token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Blade Runner", testutil.ParseAPIResponse(t, w).DataMap(t)["title"])

		w = testutil.MakeAuthRequest(t, testServer.Router, http.MethodDelete, "/movies/"+movieID, token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
