// ABOUTME: Tests for the global logger lifecycle.
// ABOUTME: Covers init, debug mode, nil safety, and output redirection.
package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestInit(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "data")

	if err := Init(Config{DataDir: dataDir}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { Logger = nil })

	logDir := filepath.Join(dataDir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("log directory was not created: %s", logDir)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after Init")
	}
	if Logger.GetLevel() != log.WarnLevel {
		t.Errorf("level = %v, want warn", Logger.GetLevel())
	}

	Warn("write failed", "key", "habits")
}

func TestInitDebugMode(t *testing.T) {
	if err := Init(Config{Debug: true, DataDir: t.TempDir()}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { Logger = nil })

	if Logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug", Logger.GetLevel())
	}
}

func TestHelpersWithoutInit(t *testing.T) {
	Logger = nil

	Debug("debug")
	Info("info")
	Warn("warn")
	Error("error")
}

func TestSetOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf, log.DebugLevel)
	t.Cleanup(func() { Logger = nil })

	Warn("persist failed", "key", "tasks")

	out := buf.String()
	if !strings.Contains(out, "persist failed") || !strings.Contains(out, "tasks") {
		t.Errorf("log output = %q, want message and key", out)
	}
}
