package instrumenter

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Fork recursively copies the contract source tree at src into dest, preserving directory structure and
// overwriting any existing files at the destination.
func Fork(src string, dest string) error {
	if err := os.MkdirAll(dest, 0755); err != nil {
		return errors.Wrapf(err, "creating fork destination %s", dest)
	}

	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return errors.Wrapf(err, "walking %s", path)
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return errors.Wrapf(err, "computing relative path for %s", path)
		}
		target := filepath.Join(dest, rel)

		if info.IsDir() {
			return os.MkdirAll(target, info.Mode())
		}
		return copyFile(path, target, info.Mode())
	})
}

// copyFile copies a single regular file from src to dest, creating dest's parent directory if necessary.
func copyFile(src, dest string, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return errors.Wrapf(err, "creating parent directory for %s", dest)
	}

	in, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, "opening %s", src)
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return errors.Wrapf(err, "creating %s", dest)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return errors.Wrapf(err, "copying %s to %s", src, dest)
	}
	return nil
}
