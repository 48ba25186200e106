// Package logging builds the zap logger profilectl commands share.
package logging

import (
	"go.uber.org/zap"
)

// New returns a logger writing to stderr. With debug enabled the
// development config is used at debug level so API request traces are
// visible; otherwise only warnings and errors surface, keeping command
// output clean for piping.
func New(debug bool) (*zap.Logger, error) {
	if debug {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		return cfg.Build()
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
