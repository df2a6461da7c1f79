package utils

import (
	"os"

	"go.uber.org/zap"
)

// NewLogger builds the process logger: production config with JSON
// output when ENV=prod, human-readable development config otherwise.
func NewLogger() (*zap.Logger, error) {
	if os.Getenv("ENV") == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
