package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_Levels(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Info("hidden")
	New(&buf, false).Warn("shown", "k", "v")
	if strings.Contains(buf.String(), "hidden") {
		t.Error("info logged without debug")
	}
	if !strings.Contains(buf.String(), "msg=shown k=v") {
		t.Errorf("unexpected output %q", buf.String())
	}

	buf.Reset()
	New(&buf, true).Debug("detail")
	if !strings.Contains(buf.String(), "detail") {
		t.Error("debug not logged with debug set")
	}
}

func TestToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskboard.log")

	log, closeFn, err := ToFile(path, false)
	if err != nil {
		t.Fatal(err)
	}
	log.Error("dropped")
	closeFn()
	if _, err := os.Stat(path); err == nil {
		t.Error("log file created without debug")
	}

	log, closeFn, err = ToFile(path, true)
	if err != nil {
		t.Fatal(err)
	}
	log.Debug("written")
	if err := closeFn(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "written") {
		t.Errorf("log file missing entry: %q", data)
	}
}
