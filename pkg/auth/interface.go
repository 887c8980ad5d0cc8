package auth

//go:generate mockgen -destination=mocks/mock_auth.go -package=mocks moviestream/pkg/auth TokenManager,ResetTokenGenerator

// TokenManager defines the interface for JWT token operations.
type TokenManager interface {
	// GenerateToken creates a signed token carrying the user's id and email.
	GenerateToken(userID, email string) (string, error)
	// ValidateToken parses and validates a JWT token, returning the claims if valid.
	ValidateToken(tokenString string) (*Claims, error)
	// ExpiresIn is the lifetime of issued tokens in seconds.
	ExpiresIn() int
}

// Ensure JWTManager implements TokenManager interface
var _ TokenManager = (*JWTManager)(nil)
