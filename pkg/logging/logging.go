// Package logging builds the zap logger behind the ectologger interface.
package logging

import (
	"fmt"

	"github.com/Gobusters/ectologger"
	"github.com/Gobusters/ectologger/zapadapter"
	"go.uber.org/zap"
)

// NewZap builds a zap logger. Pretty selects the development console encoder,
// otherwise output is production JSON.
func NewZap(level string, pretty bool) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var cfg zap.Config
	if pretty {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = lvl

	return cfg.Build()
}

// New returns an ectologger.Logger backed by zap, along with a flush func to
// defer at shutdown.
func New(level string, pretty bool) (ectologger.Logger, func(), error) {
	zapLogger, err := NewZap(level, pretty)
	if err != nil {
		return nil, nil, err
	}

	flush := func() {
		_ = zapLogger.Sync()
	}

	return zapadapter.NewZapEctoLogger(zapLogger, nil), flush, nil
}

// Discard returns a logger that drops every entry.
func Discard() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}
