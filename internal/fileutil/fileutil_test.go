package fileutil_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"subburn/internal/fileutil"
)

func TestWriteTemp(t *testing.T) {
	dir := t.TempDir()
	path, err := fileutil.WriteTemp(dir, "input-*.mp4", []byte("payload"))
	if err != nil {
		t.Fatalf("WriteTemp: %v", err)
	}
	if !strings.HasSuffix(path, ".mp4") {
		t.Fatalf("pattern suffix not applied: %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read temp: %v", err)
	}
	if string(data) != "payload" {
		t.Fatalf("content = %q", data)
	}
}

func TestTempPathIsUnique(t *testing.T) {
	dir := t.TempDir()
	a, err := fileutil.TempPath(dir, "out-*.mp4")
	if err != nil {
		t.Fatalf("TempPath: %v", err)
	}
	b, err := fileutil.TempPath(dir, "out-*.mp4")
	if err != nil {
		t.Fatalf("TempPath: %v", err)
	}
	if a == b {
		t.Fatalf("TempPath returned duplicate path %q", a)
	}
}

func TestRemoveQuietly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "artifact")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	fileutil.RemoveQuietly(path, filepath.Join(dir, "missing"), "")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("artifact still present after RemoveQuietly: %v", err)
	}
}
