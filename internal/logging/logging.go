// Package logging holds the zap conventions shared by the builder, the
// orchestrator and the CLI: standard field names, a no-op default, and the
// console/JSON logger the CLI installs.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Standard field names for structured logging.
const (
	FieldComponent     = "component"
	FieldContentTypeID = "content_type_id"
	FieldContentType   = "content_type"
	FieldProperty      = "property"
	FieldDataTypeID    = "data_type_id"
	FieldRenderer      = "renderer"
	FieldAdapter       = "adapter"
	FieldSource        = "source"
	FieldTheme         = "theme"
	FieldCount         = "count"
	FieldDurationMS    = "duration_ms"
	FieldPath          = "path"
)

// OrNop returns logger, or a no-op logger when it is nil.
func OrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// Component returns a child logger tagged with the component name.
func Component(logger *zap.Logger, name string) *zap.Logger {
	return OrNop(logger).With(zap.String(FieldComponent, name))
}

// New builds the process logger. JSON output is meant for machine
// consumption; the console encoder is the interactive default. Logs go to
// stderr so generated code on stdout stays clean.
func New(jsonOutput, verbose bool) (*zap.Logger, error) {
	level := zap.InfoLevel
	if verbose {
		level = zap.DebugLevel
	}

	var cfg zap.Config
	if jsonOutput {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.DisableStacktrace = true
		cfg.DisableCaller = true
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	return cfg.Build()
}
