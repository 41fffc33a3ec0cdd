package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TimeLayout is the timestamp layout of every run log line.
const TimeLayout = "2006-01-02 15:04:05,000"

// Separator sits between the timestamp, level and message of a run log line.
const Separator = " | "

// RunLog is the append-only run log shared by the installer and the backup.
// Each line reads "timestamp | LEVEL | message".
//
// A RunLog is constructed explicitly with its file path and handed to whoever
// needs it; there is no package-level run log.
type RunLog struct {
	path  string
	file  *os.File
	sugar *zap.SugaredLogger
}

// NewRunLog opens (creating if needed) the log file at path in append mode.
// The file is never truncated or rotated.
func NewRunLog(path string) (*RunLog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory for %s: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	encoderCfg := zapcore.EncoderConfig{
		TimeKey:          "ts",
		LevelKey:         "level",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeTime:       zapcore.TimeEncoderOfLayout(TimeLayout),
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: Separator,
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(f), zapcore.DebugLevel)

	return &RunLog{
		path:  path,
		file:  f,
		sugar: zap.New(core).Sugar(),
	}, nil
}

// Path returns the file the log writes to.
func (l *RunLog) Path() string { return l.path }

func (l *RunLog) Infof(format string, a ...any) { l.sugar.Infof(format, a...) }

func (l *RunLog) Warnf(format string, a ...any) { l.sugar.Warnf(format, a...) }

func (l *RunLog) Errorf(format string, a ...any) { l.sugar.Errorf(format, a...) }

// Close flushes and closes the underlying file.
func (l *RunLog) Close() error {
	_ = l.sugar.Sync()
	return l.file.Close()
}
