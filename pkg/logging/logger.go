package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds the process logger: development output for the local environment,
// JSON production output everywhere else.
func New(env string) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if env == "local" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger.With(zap.String("service", "hirepay-console")), nil
}
