package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestSuccess(t *testing.T) {
	c, w := setupTestContext()

	Success(c, map[string]string{"title": "Alien"})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Data)
	assert.Empty(t, resp.Error)
}

func TestCreated(t *testing.T) {
	c, w := setupTestContext()

	Created(c, "movie created", map[string]string{"id": "123"})

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decode(t, w)
	assert.True(t, resp.Success)
	assert.Equal(t, "movie created", resp.Message)
	assert.NotNil(t, resp.Data)
}

func TestMessage(t *testing.T) {
	c, w := setupTestContext()

	Message(c, "password updated", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"password updated"}`, w.Body.String())
}

func TestMessageWithData(t *testing.T) {
	c, w := setupTestContext()

	Message(c, "movie deleted", map[string]string{"title": "Alien"})

	assert.JSONEq(t, `{"success":true,"message":"movie deleted","data":{"title":"Alien"}}`, w.Body.String())
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name    string
		send    func(c *gin.Context)
		status  int
		message string
	}{
		{"error", func(c *gin.Context) { Error(c, http.StatusTeapot, "teapot") }, http.StatusTeapot, "teapot"},
		{"bad request", func(c *gin.Context) { BadRequest(c, "bad input") }, http.StatusBadRequest, "bad input"},
		{"unauthorized", func(c *gin.Context) { Unauthorized(c, "missing token") }, http.StatusUnauthorized, "missing token"},
		{"forbidden", func(c *gin.Context) { Forbidden(c, "not yours") }, http.StatusForbidden, "not yours"},
		{"not found", func(c *gin.Context) { NotFound(c, "movie not found") }, http.StatusNotFound, "movie not found"},
		{"too many requests", func(c *gin.Context) { TooManyRequests(c, "slow down") }, http.StatusTooManyRequests, "slow down"},
		{"internal error", func(c *gin.Context) { InternalError(c) }, http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := setupTestContext()

			tt.send(c)

			assert.Equal(t, tt.status, w.Code)
			resp := decode(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.message, resp.Error)
			assert.Nil(t, resp.Data)
		})
	}
}

func TestValidationError(t *testing.T) {
	c, w := setupTestContext()

	ValidationError(c, "invalid movie", []map[string]string{{"field": "rating", "rule": "lte"}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t,
		`{"success":false,"error":"invalid movie","details":[{"field":"rating","rule":"lte"}]}`,
		w.Body.String())
}

func TestResponseOmitsEmptyFields(t *testing.T) {
	data, err := json.Marshal(Response{Success: true})

	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true}`, string(data))
}
