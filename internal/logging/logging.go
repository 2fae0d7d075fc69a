// Package logging builds the process-wide zap logger.
//
// Logs always go to stderr (or the configured paths) so that command output
// on stdout stays machine-readable. The console encoder is used for humans;
// JSON is used when the CLI runs with --json.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures New.
type Options struct {
	// Verbose lowers the level to debug.
	Verbose bool

	// JSON selects the JSON encoder instead of the console encoder.
	JSON bool

	// OutputPaths overrides the default of ["stderr"].
	OutputPaths []string
}

// New builds a logger from the production preset. Without Verbose only
// warnings and errors are written.
func New(opts Options) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if opts.Verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	// The production preset samples repeated messages; a probe pass logs
	// one line per candidate and every line matters when debugging.
	config.Sampling = nil
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if !opts.JSON {
		config.Encoding = "console"
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		config.DisableStacktrace = !opts.Verbose
	}

	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	if len(opts.OutputPaths) > 0 {
		config.OutputPaths = opts.OutputPaths
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}
