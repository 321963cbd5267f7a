package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogRotation(t *testing.T) {
	tempDir := t.TempDir()
	logFile := filepath.Join(tempDir, "modeltool.log")

	cfg := FileConfig{
		Path:       logFile,
		MaxSizeMB:  1, // smallest lumberjack allows
		MaxBackups: 2,
		MaxAgeDays: 1,
		Compress:   false,
	}

	if err := InitWithFileConfig("debug", cfg, false); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	defer Sync()

	// ~1.2MB of entries forces at least one rotation.
	payload := strings.Repeat("x", 1000)
	for i := 0; i < 1200; i++ {
		Sugar.Infow("resolved model", "n", i, "payload", payload)
	}
	Sync()

	files, err := os.ReadDir(tempDir)
	if err != nil {
		t.Fatalf("failed to read temp dir: %v", err)
	}

	var rotated []string
	for _, f := range files {
		name := f.Name()
		if name != "modeltool.log" && strings.HasPrefix(name, "modeltool-") {
			rotated = append(rotated, name)
		}
	}

	if _, err := os.Stat(logFile); err != nil {
		t.Errorf("main log file missing: %v", err)
	}
	if len(rotated) == 0 {
		t.Errorf("expected rotated files, found %d entries", len(files))
	}
	for _, name := range rotated {
		// modeltool-YYYY-MM-DDTHH-MM-SS.SSS.log
		if !strings.Contains(name, "-20") {
			t.Errorf("rotated file %s doesn't have expected timestamp format", name)
		}
	}
}

func TestLogLevels(t *testing.T) {
	tempDir := t.TempDir()

	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{level: "error", expected: []string{"ERROR"}, excluded: []string{"WARN", "INFO", "DEBUG"}},
		{level: "warn", expected: []string{"ERROR", "WARN"}, excluded: []string{"INFO", "DEBUG"}},
		{level: "info", expected: []string{"ERROR", "WARN", "INFO"}, excluded: []string{"DEBUG"}},
		{level: "debug", expected: []string{"ERROR", "WARN", "INFO", "DEBUG"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logFile := filepath.Join(tempDir, tt.level+".log")
			err := InitWithFileConfig(tt.level, FileConfig{Path: logFile, MaxSizeMB: 10}, false)
			if err != nil {
				t.Fatalf("failed to init logger: %v", err)
			}

			Log.Debug("debug message")
			Info("info message")
			Warn("warn message")
			Error("error message")
			Sync()

			content, err := os.ReadFile(logFile)
			if err != nil {
				t.Fatalf("failed to read log file: %v", err)
			}
			logContent := string(content)

			for _, exp := range tt.expected {
				if !strings.Contains(logContent, `"level":"`+exp+`"`) {
					t.Errorf("expected %s in log output", exp)
				}
			}
			for _, exc := range tt.excluded {
				if strings.Contains(logContent, `"level":"`+exc+`"`) {
					t.Errorf("unexpected %s in log output for level %s", exc, tt.level)
				}
			}
		})
	}
}

func TestInvalidLevel(t *testing.T) {
	if err := InitWithFileConfig("loud", FileConfig{}, false); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestNamedWritesJSON(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "named.log")
	if err := InitWithFileConfig("info", FileConfig{Path: logFile, MaxSizeMB: 10}, false); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}

	Named("resolver").Info("resolved model")
	Sync()

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(content))), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["logger"] != "resolver" {
		t.Errorf("expected logger name resolver, got %v", entry["logger"])
	}
	if entry["msg"] != "resolved model" {
		t.Errorf("unexpected msg %v", entry["msg"])
	}
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/tmp/modeltool.log")

	if cfg.Path != "/tmp/modeltool.log" {
		t.Errorf("expected path /tmp/modeltool.log, got %s", cfg.Path)
	}
	if cfg.MaxSizeMB != 20 {
		t.Errorf("expected MaxSizeMB 20, got %d", cfg.MaxSizeMB)
	}
	if cfg.MaxBackups != 3 {
		t.Errorf("expected MaxBackups 3, got %d", cfg.MaxBackups)
	}
	if !cfg.Compress {
		t.Error("expected Compress to be true")
	}
}
