// Package auth provides authentication utilities.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// ResetTokenBytes is the amount of randomness in a password-reset token.
const ResetTokenBytes = 32

// ResetTokenGenerator generates and hashes password-reset tokens.
// Only the hash is persisted; the raw token travels in the reset email.
type ResetTokenGenerator interface {
	// Generate returns a new token and its hash.
	Generate() (token string, hash string, err error)
	// Hash returns the SHA-256 hash of a token.
	Hash(token string) string
}

type resetTokenGenerator struct{}

// NewResetTokenGenerator creates a new ResetTokenGenerator.
func NewResetTokenGenerator() ResetTokenGenerator {
	return &resetTokenGenerator{}
}

// Generate creates a 64-character hex token (32 random bytes).
func (g *resetTokenGenerator) Generate() (string, string, error) {
	token, err := generateRandomHex(ResetTokenBytes)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	return token, g.Hash(token), nil
}

// Hash returns the SHA-256 hash of the token as a hex string.
func (g *resetTokenGenerator) Hash(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

func generateRandomHex(byteLen int) (string, error) {
	bytes := make([]byte, byteLen)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
