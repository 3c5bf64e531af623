package util

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// CopyToUploadDir copies the archive at path into a fresh subdirectory of
// uploadDir and returns the path of the copy. The base name is preserved
// because synthesized extraction keys are derived from it.
func CopyToUploadDir(path, uploadDir string) (string, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if stat.IsDir() {
		return "", ErrExpectedFile
	}
	src, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer src.Close()

	dir := filepath.Join(uploadDir, uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	dest := filepath.Join(dir, filepath.Base(path))
	dst, err := os.Create(dest)
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to copy %s: %w", path, err)
	}
	return dest, dst.Sync()
}
