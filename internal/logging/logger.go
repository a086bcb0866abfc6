// Package logging builds the application logger. The terminal belongs to
// the TUI, so log output goes to a rotating file only.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/verte-zerg/typecrab/internal/model"
)

// LevelOff disables logging entirely.
const LevelOff = "off"

// ParseLevel accepts zap level names and "off".
func ParseLevel(s string) (zapcore.Level, bool, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == LevelOff {
		return zapcore.InfoLevel, false, nil
	}
	if s == "" {
		return zapcore.InfoLevel, true, nil
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return zapcore.InfoLevel, false, fmt.Errorf("%w: invalid log level %q", model.ErrConfig, s)
	}
	return level, true, nil
}

// New returns a JSON logger writing to path at the given level. A level of
// "off" returns a no-op logger and touches no files.
func New(path, level string) (*zap.Logger, error) {
	lvl, enabled, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if !enabled {
		return zap.NewNop(), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("could not create log directory: %w", err)
	}

	encoderConfig := zapcore.EncoderConfig{
		MessageKey:   "message",
		LevelKey:     "level",
		TimeKey:      "time",
		CallerKey:    "caller",
		EncodeLevel:  zapcore.CapitalLevelEncoder,
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		EncodeCaller: zapcore.ShortCallerEncoder,
	}
	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     14, // days
	})
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), writer, lvl)
	return zap.New(core, zap.AddCaller()), nil
}
