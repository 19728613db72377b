// Package logging constructs the zap loggers used across CSVRoll and plumbs
// them through contexts so library code never depends on a global logger.
package logging

import (
	"context"
	"os"

	zap "go.uber.org/zap"

	"github.com/csvroll/csvroll/internal/constants"
)

// NewLogger returns a new zap.SugaredLogger. Development config is used when
// the debug environment variable is set, production config otherwise.
func NewLogger() *zap.SugaredLogger {
	var config zap.Config
	if os.Getenv(constants.EnvDebug) == "yes" {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
	}
	// Results go to stdout, diagnostics to stderr.
	config.OutputPaths = []string{"stderr"}
	logger, err := config.Build()
	if err != nil {
		panic(err)
	}
	return logger.Named("csvroll").Sugar()
}

type loggerKey struct{}

// WithLogger returns a copy of parent context in which the
// value associated with logger key is the supplied logger.
func WithLogger(ctx context.Context, logger *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger in the context.
func FromContext(ctx context.Context) *zap.SugaredLogger {
	if logger, ok := ctx.Value(loggerKey{}).(*zap.SugaredLogger); ok {
		return logger
	}
	return NewLogger()
}
