package shared

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestLogger(t *testing.T) {
	t.Run("SetLogLevelName", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)

		if err := SetLogLevelName(logger, "warn"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if logger.GetLevel() != log.WarnLevel {
			t.Errorf("expected warn level, got %v", logger.GetLevel())
		}

		logger.Info("hidden")
		if strings.Contains(buf.String(), "hidden") {
			t.Error("info message should be filtered at warn level")
		}
	})

	t.Run("SetLogLevelName empty keeps level", func(t *testing.T) {
		logger := NewLogger(&bytes.Buffer{})
		before := logger.GetLevel()
		if err := SetLogLevelName(logger, ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if logger.GetLevel() != before {
			t.Error("expected level to be unchanged")
		}
	})

	t.Run("SetLogLevelName invalid", func(t *testing.T) {
		err := SetLogLevelName(NewLogger(&bytes.Buffer{}), "loud")
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("WithLogger", func(t *testing.T) {
		var buf bytes.Buffer
		WithLogger(NewLogger(&buf), "component", "spinner").Info("hello")
		if !strings.Contains(buf.String(), "component=spinner") {
			t.Errorf("expected key-value pair in output, got %q", buf.String())
		}
	})
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tui.log")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	logger.Info("written to file")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("expected message in log file, got %q", data)
	}
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == b {
		t.Error("expected unique IDs")
	}
	if !IsValidID(a) {
		t.Errorf("expected %q to be a valid UUID", a)
	}
	if IsValidID("not-a-uuid") {
		t.Error("expected invalid ID to be rejected")
	}
}
