package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLevelsPrefix(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.Info("level %d", 2)
	l.Warn("slow frame")
	l.Error("audio: %s", "gone")
	l.Event("smash", "mosquito-3", "score=4")

	out := buf.String()
	for _, want := range []string{"[INFO] ", "level 2", "[WARN] slow frame", "[ERROR] ", "audio: gone", "[EVENT:smash] mosquito-3 | score=4"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestOpenFileCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	l, f, err := OpenFile(dir, "game.log")
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	l.Info("hello")
	f.Close()

	data, err := os.ReadFile(filepath.Join(dir, "game.log"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Fatalf("log file = %q, want it to contain hello", data)
	}
}
