package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	logDir      = "logs"
	logFileName = "shuffletext.log"
	maxLogSize  = 10 * 1024 * 1024 // 10MB
)

// setupLogging returns a JSON file logger under logs/ when debug is set, a no-op logger otherwise
// The terminal is owned by the display, so nothing is ever logged to stdout or stderr
func setupLogging(debug bool) (*zap.Logger, error) {
	if !debug {
		return zap.NewNop(), nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logPath := filepath.Join(logDir, logFileName)
	if err := rotateLog(logPath); err != nil {
		return nil, err
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	config.Sampling = nil
	config.OutputPaths = []string{logPath}
	config.ErrorOutputPaths = []string{logPath}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// rotateLog moves an oversized log aside with a timestamp suffix
func rotateLog(logPath string) error {
	info, err := os.Stat(logPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to stat log file: %w", err)
	}
	if info.Size() <= maxLogSize {
		return nil
	}

	rotated := filepath.Join(logDir, fmt.Sprintf("shuffletext-%s.log", time.Now().Format("20060102-150405")))
	if err := os.Rename(logPath, rotated); err != nil {
		return fmt.Errorf("failed to rotate log file: %w", err)
	}
	return nil
}
