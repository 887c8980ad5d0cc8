//go:build api

package api

import (
	"net/http"
	"testing"
	"time"

	"moviestream/internal/models"
	"moviestream/pkg/auth"
	"moviestream/test/api/testserver"
	"moviestream/test/fixtures"
	"moviestream/test/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func forgotPassword(t *testing.T, email string) int {
	t.Helper()
	w := testutil.MakeRequest(t, testServer.Router, http.MethodPost, "/password/forgot-password",
		models.ForgotPasswordRequest{Email: email})
	return w.Code
}

func resetPassword(t *testing.T, token, newPassword string) int {
	t.Helper()
	w := testutil.MakeRequest(t, testServer.Router, http.MethodPost, "/password/reset-password/"+token,
		models.ResetPasswordRequest{NewPassword: newPassword})
	return w.Code
}

func loginStatus(t *testing.T, email, password string) int {
	t.Helper()
	w := testutil.MakeRequest(t, testServer.Router, http.MethodPost, "/api/auth/login",
		models.LoginRequest{Email: email, Password: password})
	return w.Code
}

func TestPasswordReset(t *testing.T) {
	testServer.CleanupBetweenTests(t)
	authHelper := testserver.NewAuthHelper(testServer)
	authHelper.RegisterUser(t, "ana@example.com", "password123")

	t.Run("full flow", func(t *testing.T) {
		require.Equal(t, http.StatusOK, forgotPassword(t, "ana@example.com"))

		token := testServer.Mailbox.LastResetToken("ana@example.com")
		require.Len(t, token, 2*auth.ResetTokenBytes, "token should be hex of 32 random bytes")

		stored, err := testServer.UserRepo.FindByEmail(testutil.Context(t), "ana@example.com")
		require.NoError(t, err)
		require.NotNil(t, stored.ResetPasswordToken)
		assert.NotEqual(t, token, *stored.ResetPasswordToken, "only the hash is stored")
		assert.WithinDuration(t, time.Now().Add(time.Hour), *stored.ResetPasswordExpires, time.Minute)

		w := testutil.MakeRequest(t, testServer.Router, http.MethodGet, "/password/reset-password/"+token, nil)
		assert.Equal(t, http.StatusOK, w.Code, "validating must not consume the token")

		require.Equal(t, http.StatusOK, resetPassword(t, token, "newSecret1"))

		assert.Equal(t, http.StatusOK, loginStatus(t, "ana@example.com", "newSecret1"))
		assert.Equal(t, http.StatusBadRequest, loginStatus(t, "ana@example.com", "password123"))

		stored, err = testServer.UserRepo.FindByEmail(testutil.Context(t), "ana@example.com")
		require.NoError(t, err)
		assert.Nil(t, stored.ResetPasswordToken)
		assert.Nil(t, stored.ResetPasswordExpires)
	})

	t.Run("token is single use", func(t *testing.T) {
		require.Equal(t, http.StatusOK, forgotPassword(t, "ana@example.com"))
		token := testServer.Mailbox.LastResetToken("ana@example.com")

		require.Equal(t, http.StatusOK, resetPassword(t, token, "another1"))
		assert.Equal(t, http.StatusBadRequest, resetPassword(t, token, "another2"))
		assert.Equal(t, http.StatusOK, loginStatus(t, "ana@example.com", "another1"))
	})

	t.Run("a new request replaces the old token", func(t *testing.T) {
		require.Equal(t, http.StatusOK, forgotPassword(t, "ana@example.com"))
		first := testServer.Mailbox.LastResetToken("ana@example.com")
		require.Equal(t, http.StatusOK, forgotPassword(t, "ana@example.com"))
		second := testServer.Mailbox.LastResetToken("ana@example.com")

		require.NotEqual(t, first, second)
		assert.Equal(t, http.StatusBadRequest, resetPassword(t, first, "another3"))
		assert.Equal(t, http.StatusOK, resetPassword(t, second, "another3"))
	})

	t.Run("unknown email gets the same answer and no mail", func(t *testing.T) {
		before := len(testServer.Mailbox.Messages())

		assert.Equal(t, http.StatusOK, forgotPassword(t, "nobody@example.com"))
		assert.Len(t, testServer.Mailbox.Messages(), before)
	})

	t.Run("delivery failure is a server error and keeps the token", func(t *testing.T) {
		testServer.Mailbox.FailDeliveries(true)
		defer testServer.Mailbox.FailDeliveries(false)

		assert.Equal(t, http.StatusInternalServerError, forgotPassword(t, "ana@example.com"))

		stored, err := testServer.UserRepo.FindByEmail(testutil.Context(t), "ana@example.com")
		require.NoError(t, err)
		assert.NotNil(t, stored.ResetPasswordToken)
	})

	t.Run("short password rejected", func(t *testing.T) {
		require.Equal(t, http.StatusOK, forgotPassword(t, "ana@example.com"))
		token := testServer.Mailbox.LastResetToken("ana@example.com")

		assert.Equal(t, http.StatusBadRequest, resetPassword(t, token, "abc"))
		assert.Equal(t, http.StatusOK, resetPassword(t, token, "abcdef"), "a rejected attempt must not burn the token")
	})
}

func TestPasswordReset_ExpiredToken(t *testing.T) {
	testServer.CleanupBetweenTests(t)
	authHelper := testserver.NewAuthHelper(testServer)

	tokens := auth.NewResetTokenGenerator()
	token, hash, err := tokens.Generate()
	require.NoError(t, err)

	authHelper.SeedUser(t, fixtures.NewUser().
		WithEmail("late@example.com").
		WithResetToken(hash, time.Now().Add(-time.Minute)).
		BuildPtr())

	w := testutil.MakeRequest(t, testServer.Router, http.MethodGet, "/password/reset-password/"+token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, http.StatusBadRequest, resetPassword(t, token, "newSecret1"))
	assert.Equal(t, http.StatusOK, loginStatus(t, "late@example.com", fixtures.DefaultPassword))
}
