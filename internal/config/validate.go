package config

import (
	"fmt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if !c.Auth.HasGoogleOAuth() {
		return fmt.Errorf("auth: google_client_id and google_client_secret must be configured")
	}

	if c.Blob.Dir == "" {
		return fmt.Errorf("blob.dir must not be empty")
	}
	if c.Blob.BaseURL == "" {
		return fmt.Errorf("blob.base_url must not be empty")
	}

	if c.Server.RatePerMinute <= 0 {
		return fmt.Errorf("server.rate_per_minute must be > 0 (got %d)", c.Server.RatePerMinute)
	}

	return nil
}
