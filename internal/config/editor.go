package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// EditorConfig holds credentials and session settings for the content editor.
// The editor authenticates with a single password whose bcrypt hash is configured.
type EditorConfig struct {
	PasswordHash string
	JWTSecret    string
	TokenTTL     time.Duration
	BcryptCost   int
	Pepper       string
}

// NewEditorConfig reads EDITOR_PASSWORD_HASH, JWT_SECRET, JWT_EXPIRATION_HOURS (default 24),
// BCRYPT_COST (default 12) and PASSWORD_PEPPER from the environment.
func NewEditorConfig() (*EditorConfig, error) {
	hours, err := envInt("JWT_EXPIRATION_HOURS", 24)
	if err != nil {
		return nil, err
	}
	cost, err := envInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, err
	}

	cfg := &EditorConfig{
		PasswordHash: os.Getenv("EDITOR_PASSWORD_HASH"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		TokenTTL:     time.Duration(hours) * time.Hour,
		BcryptCost:   cost,
		Pepper:       os.Getenv("PASSWORD_PEPPER"),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Enabled reports whether editing is configured. Without a password hash and a signing
// secret the server runs read-only.
func (c *EditorConfig) Enabled() bool {
	return c != nil && c.PasswordHash != "" && c.JWTSecret != ""
}

func (c *EditorConfig) validate() error {
	if c.TokenTTL < time.Hour {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %s", c.TokenTTL)
	}
	if c.BcryptCost < 10 || c.BcryptCost > 14 {
		return fmt.Errorf("bcrypt cost out of range: %d (must be 10-14)", c.BcryptCost)
	}
	if c.PasswordHash != "" && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when EDITOR_PASSWORD_HASH is set")
	}
	return nil
}

// HashPassword hashes an editor password with bcrypt, appending the pepper if set
func (c *EditorConfig) HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw+c.Pepper), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword checks pw against the configured hash
func (c *EditorConfig) VerifyPassword(pw string) bool {
	if c.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(pw+c.Pepper)) == nil
}

func envInt(name string, fallback int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", name, err)
	}
	return v, nil
}
