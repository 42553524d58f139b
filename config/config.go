package config

import (
	"os"

	"golang.org/x/crypto/bcrypt"
)

// Config carries the process-level settings read once at startup. SMTP
// settings are deliberately absent: the mailer re-reads them from the
// environment on every delivery attempt.
type Config struct {
	Host    string
	Port    string
	DataDir string
	SiteDir string

	// bcrypt hash of ADMIN_PASSWORD; nil when no password is set, which
	// disables the admin surface entirely.
	AdminPasswordHash []byte
}

func Load() (*Config, error) {
	cfg := &Config{
		Host:    envOr("HOST", "0.0.0.0"),
		Port:    envOr("PORT", "8080"),
		DataDir: envOr("DATA_DIR", "data"),
		SiteDir: envOr("SITE_DIR", "site"),
	}

	if pw := os.Getenv("ADMIN_PASSWORD"); pw != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		cfg.AdminPasswordHash = hash
	}
	return cfg, nil
}

// CheckAdminPassword reports whether the given password unlocks the admin
// surface. Always false when ADMIN_PASSWORD is unset.
func (c *Config) CheckAdminPassword(password string) bool {
	if len(c.AdminPasswordHash) == 0 {
		return false
	}
	return bcrypt.CompareHashAndPassword(c.AdminPasswordHash, []byte(password)) == nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
