package logging

import (
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitDir(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(prev)
		log.SetOutput(os.Stderr)
	})

	dir := filepath.Join(t.TempDir(), "logs")
	if err := InitDir(dir, "test"); err != nil {
		t.Fatalf("InitDir failed: %v", err)
	}

	slog.Info("drop resolved", "card_id", "c1")

	data, err := os.ReadFile(filepath.Join(dir, "test.log"))
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "card_id=c1") {
		t.Errorf("Expected log line in file, got %q", string(data))
	}
}
