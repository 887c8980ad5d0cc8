package models

// ForgotPasswordRequest is the payload for requesting a reset email.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email" example:"ana@example.com"`
}

// ResetPasswordRequest is the payload for consuming a reset token.
// Token may also be supplied in the URL path, which takes precedence.
type ResetPasswordRequest struct {
	Token       string `json:"token" example:"9f86d081884c7d659a2feaa0c55ad015..."`
	NewPassword string `json:"newPassword" binding:"required,min=6,max=72" example:"NewSecret1!"`
}
