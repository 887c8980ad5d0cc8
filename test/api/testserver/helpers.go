//go:build api

package testserver

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"moviestream/internal/models"
	"moviestream/pkg/response"
	"moviestream/test/testutil"

	"github.com/stretchr/testify/require"
)

// AuthHelper provides authentication helpers for API tests.
type AuthHelper struct {
	server *TestServer
}

// NewAuthHelper creates a new auth helper.
func NewAuthHelper(server *TestServer) *AuthHelper {
	return &AuthHelper{server: server}
}

// RegistrationFor returns a valid registration payload for email.
func RegistrationFor(email, password string) models.RegisterRequest {
	return models.RegisterRequest{
		Username:  "Test",
		Lastname:  "User",
		Birthdate: "1990-04-12",
		Email:     email,
		Password:  password,
	}
}

// RegisterUser registers a new user through the API.
func (ah *AuthHelper) RegisterUser(t *testing.T, email, password string) {
	t.Helper()

	w := testutil.MakeRequest(t, ah.server.Router, http.MethodPost, "/api/auth/register", RegistrationFor(email, password))
	require.Equal(t, http.StatusCreated, w.Code, "register should return 201, got: %s", w.Body.String())
}

// Login logs in a user and returns the token.
func (ah *AuthHelper) Login(t *testing.T, email, password string) string {
	t.Helper()

	req := models.LoginRequest{Email: email, Password: password}

	w := testutil.MakeRequest(t, ah.server.Router, http.MethodPost, "/api/auth/login", req)
	require.Equal(t, http.StatusOK, w.Code, "login should return 200, got: %s", w.Body.String())

	var resp response.Response
	testutil.ParseResponse(t, w, &resp)
	require.True(t, resp.Success, "login response should be successful")

	data := ParseResponseData[models.LoginResponse](t, resp.Data)
	require.NotEmpty(t, data.Token, "token should be set")
	return data.Token
}

// Me returns the account behind token.
func (ah *AuthHelper) Me(t *testing.T, token string) map[string]interface{} {
	t.Helper()

	w := testutil.MakeAuthRequest(t, ah.server.Router, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code, "me should return 200, got: %s", w.Body.String())

	var resp response.Response
	testutil.ParseResponse(t, w, &resp)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "response data should be a map")
	return data
}

// CreateAuthenticatedUser registers and logs in a user and returns its id
// and bearer token.
func (ah *AuthHelper) CreateAuthenticatedUser(t *testing.T, email, password string) (userID, token string) {
	t.Helper()

	ah.RegisterUser(t, email, password)
	token = ah.Login(t, email, password)
	userID = GetIDFromResponse(t, ah.Me(t, token))
	return userID, token
}

// SeedUser directly inserts a user into the database (bypasses API).
func (ah *AuthHelper) SeedUser(t *testing.T, user *models.User) *models.User {
	t.Helper()

	created, err := ah.server.UserRepo.Create(context.Background(), user)
	require.NoError(t, err, "failed to seed user")
	return created
}

// MovieHelper provides movie-related helpers for API tests.
type MovieHelper struct {
	server *TestServer
}

// NewMovieHelper creates a new movie helper.
func NewMovieHelper(server *TestServer) *MovieHelper {
	return &MovieHelper{server: server}
}

// CreateMovie creates a movie via API and returns the response data.
func (mh *MovieHelper) CreateMovie(t *testing.T, token string, req models.CreateMovieRequest) map[string]interface{} {
	t.Helper()

	w := testutil.MakeAuthRequest(t, mh.server.Router, http.MethodPost, "/movies", token, req)
	require.Equal(t, http.StatusCreated, w.Code, "create movie should return 201, got: %s", w.Body.String())

	var resp response.Response
	testutil.ParseResponse(t, w, &resp)
	require.True(t, resp.Success, "create movie response should be successful")

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "response data should be a map")
	return data
}

// SeedMovie directly inserts a movie into the database (bypasses API).
func (mh *MovieHelper) SeedMovie(t *testing.T, movie *models.Movie) *models.Movie {
	t.Helper()

	created, err := mh.server.MovieRepo.Create(context.Background(), movie)
	require.NoError(t, err, "failed to seed movie")
	return created
}

// ParseResponseData is a generic helper to parse response data into a specific type.
func ParseResponseData[T any](t *testing.T, data interface{}) T {
	t.Helper()

	jsonBytes, err := json.Marshal(data)
	require.NoError(t, err, "failed to marshal response data")

	var result T
	err = json.Unmarshal(jsonBytes, &result)
	require.NoError(t, err, "failed to unmarshal response data")

	return result
}

// GetIDFromResponse extracts the ID from response data.
func GetIDFromResponse(t *testing.T, data map[string]interface{}) string {
	t.Helper()

	id, ok := data["id"].(string)
	require.True(t, ok, "id should be a string in response data")
	return id
}
