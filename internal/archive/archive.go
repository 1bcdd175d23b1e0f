// Package archive manages the archive folder: unique-name copies of accepted
// images, renames of archived files and the cross-process folder lock.
package archive

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// EnsureDir creates the archive folder if it does not exist yet.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating archive folder %s: %w", dir, err)
	}
	return nil
}

// NewName returns a fresh file name for src: a random UUID followed by the
// original extension.
func NewName(src string) string {
	return uuid.NewString() + filepath.Ext(src)
}

// Save copies src into dir under a freshly generated name and returns the new
// path. The copy is byte-identical and keeps the permission bits and
// modification time of src. src is never modified.
func Save(src, dir string) (dst string, err error) {
	in, err := os.Open(src) //nolint:gosec // path chosen by the user
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", src, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%s is not a regular file", src)
	}

	dst = filepath.Join(dir, NewName(src))
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600) //nolint:gosec // dst is inside the archive folder
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", dst, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(dst)
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		_ = out.Close()
		return "", fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	if err = out.Sync(); err != nil {
		_ = out.Close()
		return "", fmt.Errorf("syncing %s: %w", dst, err)
	}
	if err = out.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", dst, err)
	}

	if err = os.Chmod(dst, info.Mode().Perm()); err != nil {
		return "", fmt.Errorf("copying permissions to %s: %w", dst, err)
	}
	if chErr := os.Chtimes(dst, info.ModTime(), info.ModTime()); chErr != nil && !errors.Is(chErr, os.ErrPermission) {
		log.Printf("[archive] warning: could not keep modification time of %s: %v", src, chErr)
	}

	log.Printf("[archive] saved %s as %s", src, filepath.Base(dst))
	return dst, nil
}
