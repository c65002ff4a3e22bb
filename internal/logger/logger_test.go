package logger

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{level: "error", expected: []string{"ERROR"}, excluded: []string{"WARN", "INFO", "DEBUG"}},
		{level: "warn", expected: []string{"ERROR", "WARN"}, excluded: []string{"INFO", "DEBUG"}},
		{level: "", expected: []string{"ERROR", "WARN", "INFO"}, excluded: []string{"DEBUG"}},
		{level: "debug", expected: []string{"ERROR", "WARN", "INFO", "DEBUG"}},
	}

	for _, tt := range tests {
		name := tt.level
		if name == "" {
			name = "default"
		}
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Setup(Options{Level: tt.level, Console: &buf}); err != nil {
				t.Fatalf("Setup() error: %v", err)
			}

			Debug("tick")
			Info("jump consumed")
			Warn("step rejected")
			Error("no body")
			Sync()

			out := buf.String()
			for _, exp := range tt.expected {
				if !strings.Contains(out, exp) {
					t.Errorf("expected %s in output:\n%s", exp, out)
				}
			}
			for _, exc := range tt.excluded {
				if strings.Contains(out, exc) {
					t.Errorf("unexpected %s in output for level %q", exc, tt.level)
				}
			}
		})
	}
}

func TestInvalidLevel(t *testing.T) {
	if _, err := New(Options{Level: "verbose"}); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestNoSinksIsNop(t *testing.T) {
	l, err := New(Options{Level: "debug"})
	if err != nil {
		t.Fatal(err)
	}
	if l.Core().Enabled(zap.DebugLevel) {
		t.Error("logger without sinks should be disabled")
	}
}

func TestJSONFileOutput(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "trace.log")
	opts := Options{
		Level: "debug",
		JSON:  true,
		File:  FileConfig{Path: logFile, MaxSizeMB: 1, MaxBackups: 1},
	}
	if err := Setup(opts); err != nil {
		t.Fatalf("Setup() error: %v", err)
	}

	Named("movement").Debug("step up", zap.Float64("top", 0.2))
	Sync()

	f, err := os.Open(logFile)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		t.Fatal("log file is empty")
	}
	var entry map[string]any
	if err := json.Unmarshal(sc.Bytes(), &entry); err != nil {
		t.Fatalf("line is not JSON: %v", err)
	}
	if entry["logger"] != "movement" {
		t.Errorf("logger = %v, want movement", entry["logger"])
	}
	if entry["msg"] != "step up" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["top"] != 0.2 {
		t.Errorf("top = %v, want 0.2", entry["top"])
	}
}

func TestFileRotation(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "sim.log")

	// 1MB is the smallest size lumberjack rotates at.
	opts := Options{
		Level: "debug",
		File:  FileConfig{Path: logFile, MaxSizeMB: 1, MaxBackups: 2, MaxAgeDays: 1},
	}
	if err := Setup(opts); err != nil {
		t.Fatalf("Setup() error: %v", err)
	}
	defer Sync()

	pad := strings.Repeat("v", 200)
	for i := 0; i < 15000; i++ {
		Sugar.Debugf("tick %d speed=%s", i, pad)
	}
	Sync()

	files, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	var rotated int
	for _, f := range files {
		name := f.Name()
		if name != "sim.log" && strings.HasPrefix(name, "sim-") {
			rotated++
		}
	}
	if rotated == 0 {
		t.Errorf("no rotated files in %v", files)
	}
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/tmp/strafesim.log")

	if cfg.Path != "/tmp/strafesim.log" {
		t.Errorf("expected path /tmp/strafesim.log, got %s", cfg.Path)
	}
	if cfg.MaxSizeMB != 20 || cfg.MaxBackups != 3 || cfg.MaxAgeDays != 7 {
		t.Errorf("unexpected rotation settings: %+v", cfg)
	}
	if !cfg.Compress {
		t.Error("expected Compress to be true")
	}
}
