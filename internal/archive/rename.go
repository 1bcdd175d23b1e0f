package archive

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var (
	ErrEmptyName   = errors.New("please enter a new name")
	ErrInvalidName = errors.New("name must not contain path separators")
	ErrNameExists  = errors.New("a file with that name already exists")
)

// foldName normalizes a file name for collision checks so that names which
// are equal on case-insensitive or normalizing filesystems compare equal.
func foldName(name string) string {
	return cases.Fold().String(norm.NFC.String(name))
}

// TargetPath returns where Rename would move path for newName, after
// validating newName. The extension of path is kept.
func TargetPath(path, newName string) (string, error) {
	name := strings.TrimSpace(newName)
	if name == "" {
		return "", ErrEmptyName
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, os.PathSeparator) {
		return "", ErrInvalidName
	}
	return filepath.Join(filepath.Dir(path), name+filepath.Ext(path)), nil
}

// checkCollision reports ErrNameExists when target, or a name that folds to
// the same value, is already present next to path.
func checkCollision(path, target string) error {
	if _, err := os.Lstat(target); err == nil {
		return ErrNameExists
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", target, err)
	}

	entries, err := os.ReadDir(filepath.Dir(target))
	if err != nil {
		return fmt.Errorf("cannot read folder %s: %w", filepath.Dir(target), err)
	}
	want := foldName(filepath.Base(target))
	self := filepath.Base(path)
	for _, e := range entries {
		if e.Name() == self {
			continue
		}
		if foldName(e.Name()) == want {
			return ErrNameExists
		}
	}
	return nil
}

// Rename renames the archived file at path to newName plus its original
// extension, in the same folder, and returns the new path. Either the file
// ends up at the new path with identical content and the old path is gone, or
// nothing changes.
func Rename(path, newName string) (string, error) {
	target, err := TargetPath(path, newName)
	if err != nil {
		return "", err
	}
	if err := checkCollision(path, target); err != nil {
		return "", err
	}

	// A hard link fails if target appeared in the meantime, so the rename
	// never clobbers an existing file.
	if err := os.Link(path, target); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", ErrNameExists
		}
		if _, statErr := os.Stat(path); statErr != nil {
			return "", fmt.Errorf("rename failed: %w", statErr)
		}
		// Filesystems without hard links.
		if err := os.Rename(path, target); err != nil {
			return "", fmt.Errorf("rename failed: %w", err)
		}
		log.Printf("[archive] renamed %s to %s", filepath.Base(path), filepath.Base(target))
		return target, nil
	}

	if err := os.Remove(path); err != nil {
		_ = os.Remove(target)
		return "", fmt.Errorf("rename failed: %w", err)
	}
	log.Printf("[archive] renamed %s to %s", filepath.Base(path), filepath.Base(target))
	return target, nil
}
