package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSetupLogging_DisabledByDefault(t *testing.T) {
	t.Chdir(t.TempDir())

	logger, err := setupLogging(false)
	if err != nil {
		t.Fatalf("setupLogging(false) error: %v", err)
	}
	if logger == nil {
		t.Fatal("Expected a no-op logger, got nil")
	}
	if logger.Core().Enabled(-1) {
		t.Error("Expected no-op logger to have every level disabled")
	}

	if _, err := os.Stat(logDir); !os.IsNotExist(err) {
		t.Error("Expected no logs directory when debug=false")
	}
}

func TestSetupLogging_EnabledWithDebug(t *testing.T) {
	t.Chdir(t.TempDir())

	logger, err := setupLogging(true)
	if err != nil {
		t.Fatalf("setupLogging(true) error: %v", err)
	}

	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Error("Expected logs directory to be created")
	}

	logger.Debug("test log message")
	_ = logger.Sync()

	info, err := os.Stat(filepath.Join(logDir, logFileName))
	if err != nil {
		t.Fatalf("Failed to stat log file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Expected log file to contain content")
	}
}

func TestSetupLogging_Rotation(t *testing.T) {
	t.Chdir(t.TempDir())

	if err := os.MkdirAll(logDir, 0755); err != nil {
		t.Fatalf("Failed to create logs directory: %v", err)
	}
	logPath := filepath.Join(logDir, logFileName)

	// Just over the rotation threshold
	if err := os.WriteFile(logPath, make([]byte, maxLogSize+1), 0644); err != nil {
		t.Fatalf("Failed to write large log file: %v", err)
	}

	logger, err := setupLogging(true)
	if err != nil {
		t.Fatalf("setupLogging(true) error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	entries, err := os.ReadDir(logDir)
	if err != nil {
		t.Fatalf("Failed to read logs directory: %v", err)
	}

	rotatedFound := false
	for _, entry := range entries {
		if entry.Name() != logFileName && filepath.Ext(entry.Name()) == ".log" {
			rotatedFound = true
			break
		}
	}
	if !rotatedFound {
		t.Error("Expected to find rotated log file")
	}

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("Failed to stat new log file: %v", err)
	}
	if info.Size() > maxLogSize {
		t.Errorf("Expected new log file to be smaller than %d bytes, got %d", maxLogSize, info.Size())
	}
}

func TestSetupLogging_SmallFileKept(t *testing.T) {
	t.Chdir(t.TempDir())

	if err := os.MkdirAll(logDir, 0755); err != nil {
		t.Fatalf("Failed to create logs directory: %v", err)
	}
	if err := os.WriteFile(filepath.Join(logDir, logFileName), []byte("{}\n"), 0644); err != nil {
		t.Fatalf("Failed to seed log file: %v", err)
	}

	if _, err := setupLogging(true); err != nil {
		t.Fatalf("setupLogging(true) error: %v", err)
	}

	entries, err := os.ReadDir(logDir)
	if err != nil {
		t.Fatalf("Failed to read logs directory: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the active log file, found %d entries", len(entries))
	}
}
