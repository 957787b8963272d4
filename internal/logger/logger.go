package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the zap preset and output format.
type Config struct {
	Development bool
	Level       string
	Encoding    string
}

// New builds a zap logger. Empty settings fall back to the preset defaults.
func New(cfg Config) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.Development {
		zcfg = zap.NewDevelopmentConfig()
	}

	if lvl := strings.TrimSpace(cfg.Level); lvl != "" {
		level, err := zap.ParseAtomicLevel(strings.ToLower(lvl))
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		zcfg.Level = level
	}

	switch enc := strings.ToLower(strings.TrimSpace(cfg.Encoding)); enc {
	case "":
	case "json", "console":
		zcfg.Encoding = enc
	default:
		return nil, fmt.Errorf("unknown log encoding %q", cfg.Encoding)
	}

	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	log, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return log, nil
}
