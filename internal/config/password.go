package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	minBcryptCost = 10
	maxBcryptCost = 14
)

// PasswordConfig hashes and verifies user passwords.
type PasswordConfig struct {
	BcryptCost int
	Pepper     string // optional global secret appended before hashing
}

// NewPasswordConfig builds a PasswordConfig from the auth settings.
func NewPasswordConfig(auth AuthConfig) (*PasswordConfig, error) {
	if auth.BcryptCost < minBcryptCost || auth.BcryptCost > maxBcryptCost {
		return nil, fmt.Errorf("bcrypt cost out of range: %d (must be %d-%d)", auth.BcryptCost, minBcryptCost, maxBcryptCost)
	}
	return &PasswordConfig{
		BcryptCost: auth.BcryptCost,
		Pepper:     auth.PasswordPepper,
	}, nil
}

func (c *PasswordConfig) peppered(pw string) []byte {
	return []byte(pw + c.Pepper)
}

// HashPassword hashes a password using bcrypt.
func (c *PasswordConfig) HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(c.peppered(pw), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether pw matches storedHash.
func (c *PasswordConfig) VerifyPassword(pw, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), c.peppered(pw)) == nil
}
