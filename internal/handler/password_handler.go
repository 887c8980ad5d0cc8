package handler

import (
	"moviestream/internal/models"
	"moviestream/internal/service"
	"moviestream/pkg/response"

	"github.com/gin-gonic/gin"
)

// forgotPasswordMessage is returned whether or not the email is registered.
const forgotPasswordMessage = "if an account exists for that email, a reset link has been sent"

// PasswordHandler handles the password-reset flow.
type PasswordHandler struct {
	service service.PasswordServicer
}

// NewPasswordHandler creates a new PasswordHandler.
func NewPasswordHandler(service service.PasswordServicer) *PasswordHandler {
	return &PasswordHandler{service: service}
}

// ForgotPassword godoc
// @Summary      Request a password reset
// @Description  Email a single-use reset link to the account owner
// @Tags         password
// @Accept       json
// @Produce      json
// @Param        request  body      models.ForgotPasswordRequest  true  "Account email"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      429      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /password/forgot-password [post]
func (h *PasswordHandler) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.service.RequestReset(c.Request.Context(), req.Email); err != nil {
		respondError(c, err)
		return
	}

	response.Message(c, forgotPasswordMessage, nil)
}

// ValidateResetToken godoc
// @Summary      Check a reset token
// @Description  Report whether a reset token is still usable without consuming it
// @Tags         password
// @Produce      json
// @Param        token  path      string  true  "Reset token"
// @Success      200    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Router       /password/reset-password/{token} [get]
func (h *PasswordHandler) ValidateResetToken(c *gin.Context) {
	if err := h.service.ValidateResetToken(c.Request.Context(), c.Param("token")); err != nil {
		respondError(c, err)
		return
	}

	response.Message(c, "reset token is valid", nil)
}

// ResetPassword godoc
// @Summary      Reset password
// @Description  Consume a reset token and set a new password
// @Tags         password
// @Accept       json
// @Produce      json
// @Param        token    path      string                       true  "Reset token"
// @Param        request  body      models.ResetPasswordRequest  true  "New password"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /password/reset-password/{token} [post]
func (h *PasswordHandler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	token := c.Param("token")
	if token == "" {
		token = req.Token
	}

	if err := h.service.ConsumeReset(c.Request.Context(), token, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}

	response.Message(c, "password has been reset", nil)
}
