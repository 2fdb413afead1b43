package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewWritesDebug(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Debug("task added", "index", 3)
	if !strings.Contains(buf.String(), "task added") || !strings.Contains(buf.String(), "index=3") {
		t.Errorf("unexpected log output %q", buf.String())
	}
}

func TestOpenDisabled(t *testing.T) {
	log, closeFn, err := Open(false)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	log.Debug("dropped")
	if err := closeFn(); err != nil {
		t.Errorf("close: %v", err)
	}
}

func TestOpenEnabled(t *testing.T) {
	t.Chdir(t.TempDir())

	log, closeFn, err := Open(true)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	log.Debug("hello")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}
	b, err := os.ReadFile(filepath.Join(".", DebugFile))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), "msg=hello") {
		t.Errorf("log file = %q", b)
	}
}
