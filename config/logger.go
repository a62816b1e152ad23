package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the debug logger described by the game settings.
// Output goes to LogFile, or to the xdg state dir when it is empty.
func NewLogger(s GameSettings) (*zap.Logger, error) {
	level, err := parseLevel(s.LogLevel)
	if err != nil {
		return nil, err
	}
	if s.LogLevel == LogLevelOff {
		return zap.NewNop(), nil
	}

	path := s.LogFile
	if path == "" {
		if path, err = xdg.StateFile(logFile); err != nil {
			return nil, fmt.Errorf("locating log file: %w", err)
		}
	} else if err = os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating log dir: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Sampling = nil
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

func parseLevel(name string) (zapcore.Level, error) {
	switch name {
	case "":
		return zapcore.InfoLevel, nil
	case LogLevelOff:
		return zapcore.FatalLevel, nil
	}
	return zapcore.ParseLevel(name)
}
