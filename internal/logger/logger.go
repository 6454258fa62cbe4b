package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds a JSON production logger at level ("debug", "info", ...).
func New(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	config := zap.NewProductionConfig()
	config.Level = lvl
	config.Sampling = nil
	return config.Build()
}
