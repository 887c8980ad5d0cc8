// Package testutil holds HTTP helpers shared by the API tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// Request describes one call against a test router.
type Request struct {
	Method  string
	Path    string
	Token   string
	Body    interface{}
	Headers map[string]string
}

// Do executes req against handler and returns the recorded response.
func Do(t *testing.T, handler http.Handler, req Request) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	if req.Body != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(req.Body))
	}

	httpReq, err := http.NewRequest(req.Method, req.Path, &body)
	require.NoError(t, err)

	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httpReq)
	return w
}

// MakeRequest creates and executes an unauthenticated test request.
func MakeRequest(t *testing.T, handler http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	return Do(t, handler, Request{Method: method, Path: path, Body: body})
}

// MakeAuthRequest creates a request with a bearer token.
func MakeAuthRequest(t *testing.T, handler http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	return Do(t, handler, Request{Method: method, Path: path, Token: token, Body: body})
}

// ParseResponse parses JSON response into target struct.
func ParseResponse(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), target), "body: %s", w.Body.String())
}

// APIResponse mirrors response.Response with loosely typed payloads.
type APIResponse struct {
	Success bool                     `json:"success"`
	Message string                   `json:"message"`
	Data    interface{}              `json:"data"`
	Error   string                   `json:"error"`
	Details []map[string]interface{} `json:"details"`
}

// ParseAPIResponse parses the standard envelope.
func ParseAPIResponse(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	ParseResponse(t, w, &resp)
	return resp
}

// DataMap returns the payload as an object.
func (r APIResponse) DataMap(t *testing.T) map[string]interface{} {
	t.Helper()
	data, ok := r.Data.(map[string]interface{})
	require.True(t, ok, "data should be an object, got %T", r.Data)
	return data
}

// DataList returns the payload as an array.
func (r APIResponse) DataList(t *testing.T) []interface{} {
	t.Helper()
	data, ok := r.Data.([]interface{})
	require.True(t, ok, "data should be an array, got %T", r.Data)
	return data
}
