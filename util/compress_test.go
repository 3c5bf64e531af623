package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
)

func TestZipDirectory(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "root.txt"), []byte("root content"), 0o644)
	nested := filepath.Join(dir, "subdir", "nested")
	os.MkdirAll(nested, 0o755)
	os.WriteFile(filepath.Join(dir, "subdir", "sub.txt"), []byte("sub content"), 0o644)
	os.WriteFile(filepath.Join(nested, "deep.txt"), []byte("deep content"), 0o644)

	dest := filepath.Join(t.TempDir(), "out.zip")
	if err := ZipDirectory(dir, dest); err != nil {
		t.Fatalf("ZipDirectory failed: %v", err)
	}

	r, err := zip.OpenReader(dest)
	if err != nil {
		t.Fatalf("Failed to open archive: %v", err)
	}
	defer r.Close()

	found := make(map[string]bool)
	for _, f := range r.File {
		found[f.Name] = true
	}
	expected := []string{"root.txt", "subdir/", "subdir/sub.txt", "subdir/nested/", "subdir/nested/deep.txt"}
	for _, name := range expected {
		if !found[name] {
			t.Errorf("Expected entry %q not found in archive. Found: %v", name, found)
		}
	}
	if len(r.File) != len(expected) {
		t.Errorf("Expected %d entries, got %d", len(expected), len(r.File))
	}
}

func TestZipDirectory_FileNotDir(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "notadir.txt")
	os.WriteFile(tmpFile, []byte("content"), 0o644)

	err := ZipDirectory(tmpFile, filepath.Join(t.TempDir(), "output.zip"))
	if err != ErrExpectedDirectory {
		t.Errorf("Expected ErrExpectedDirectory, got: %v", err)
	}
}
