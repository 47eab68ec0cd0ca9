// internal/inference/config.go
package inference

import (
	"time"

	"github.com/google/uuid"
)

const nameLayout = "2006-01-02 15:04"

type Config struct {
	// Now supplies the creation instant; the canvas name uses its local wall time.
	Now   func() time.Time
	NewID func() string
}

func LoadConfig() *Config {
	return &Config{
		Now:   time.Now,
		NewID: func() string { return uuid.New().String() },
	}
}
