// internal/canvas/config.go
package canvas

import (
	"time"

	"github.com/google/uuid"
)

type Config struct {
	// Timeout bounds each store call made while serving one request.
	Timeout time.Duration
	Now     func() time.Time
	NewID   func() string
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
		Now:     time.Now,
		NewID:   func() string { return uuid.New().String() },
	}
}
