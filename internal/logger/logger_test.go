package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit_WritesToOutput(t *testing.T) {
	t.Cleanup(func() { Logger = nil })

	var buf bytes.Buffer
	if err := Init(Config{Debug: true, Output: &buf}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	Debug("building grid", "unit", "u1")
	if !strings.Contains(buf.String(), "building grid") || !strings.Contains(buf.String(), "unit=u1") {
		t.Errorf("Expected debug entry in output, got %q", buf.String())
	}
}

func TestInit_WarnLevelByDefault(t *testing.T) {
	t.Cleanup(func() { Logger = nil })

	var buf bytes.Buffer
	if err := Init(Config{Output: &buf}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	Info("hidden")
	Warn("visible")
	if strings.Contains(buf.String(), "hidden") {
		t.Error("Info must be filtered at the default level")
	}
	if !strings.Contains(buf.String(), "visible") {
		t.Error("Expected warning in output")
	}
}

func TestInit_CreatesLogDir(t *testing.T) {
	t.Cleanup(func() { Logger = nil })

	dir := filepath.Join(t.TempDir(), "logs")
	if err := Init(Config{LogDir: dir}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("Expected log directory to exist: %v", err)
	}
}

func TestHelpers_NoopWithoutInit(t *testing.T) {
	Logger = nil
	// Must not panic.
	Debug("x")
	Info("x")
	Warn("x")
	Error("x")
}
