package util

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zip"
)

// ZipDirectory packs every file and directory below path into a zip archive
// at dest. Entry names are slash-separated and relative to path; directories
// are written as explicit "name/" entries.
func ZipDirectory(path string, dest string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return ErrExpectedDirectory
	}
	os.Remove(dest)
	file, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer file.Close()
	w := zip.NewWriter(file)

	err = filepath.WalkDir(path, func(subpath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if subpath == path {
			return nil
		}
		rel, err := filepath.Rel(path, subpath)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if d.IsDir() {
			_, err = w.Create(name + "/")
			return err
		}
		return addFileToZip(w, subpath, name)
	})
	if err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func addFileToZip(w *zip.Writer, path, name string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	writer, err := w.Create(name)
	if err != nil {
		return err
	}
	_, err = io.Copy(writer, f)
	return err
}
