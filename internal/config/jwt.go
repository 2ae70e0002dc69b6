package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// JWTConfig holds configuration for token generation and validation.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
	// Ephemeral is set when the secret was generated for this process only;
	// tokens stop validating after a restart.
	Ephemeral bool
}

// NewJWTConfig builds a JWTConfig from the auth settings. When no secret is
// configured a random one is generated and the config is marked Ephemeral.
func NewJWTConfig(auth AuthConfig) (*JWTConfig, error) {
	if auth.JWTExpirationHours < 1 {
		return nil, fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", auth.JWTExpirationHours)
	}

	cfg := &JWTConfig{
		Secret:          auth.JWTSecret,
		ExpirationHours: auth.JWTExpirationHours,
	}
	if cfg.Secret == "" {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("failed to generate JWT secret: %w", err)
		}
		cfg.Secret = hex.EncodeToString(buf)
		cfg.Ephemeral = true
	}
	return cfg, nil
}
