package auth_test

import (
	"time"

	"github.com/phrazzld/tasks-api/internal/config"
)

func testConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:     "test-jwt-secret-that-is-32-chars-long",
		TokenLifetime: time.Hour,
		BcryptCost:    4,
	}
}
