// Package store loads the reference descriptors from the archive folder.
package store

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/kozaktomas/face-compare/internal/recognizer"
)

// Record pairs an image in the archive folder with the descriptor of the
// first face found in it.
type Record struct {
	Path       string
	Descriptor recognizer.Descriptor
}

// SkipReason explains why an eligible image produced no record.
type SkipReason string

const (
	SkipNoFace     SkipReason = "no-face"
	SkipUnreadable SkipReason = "unreadable"
)

// Skipped is an eligible image that produced no record.
type Skipped struct {
	Path   string
	Reason SkipReason
	Err    error // set for SkipUnreadable
}

// Result holds the outcome of a folder scan.
type Result struct {
	Records []Record
	Skipped []Skipped
}

// Descriptors returns the record descriptors in record order.
func (r *Result) Descriptors() []recognizer.Descriptor {
	out := make([]recognizer.Descriptor, len(r.Records))
	for i := range r.Records {
		out[i] = r.Records[i].Descriptor
	}
	return out
}

// Options tunes a scan.
type Options struct {
	// Progress is called after each eligible file with the number of files
	// processed so far and the total.
	Progress func(done, total int)
}

// ListImages returns the eligible image files directly under dir in
// directory listing order.
func ListImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read folder %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() && entry.Type()&os.ModeSymlink == 0 {
			continue
		}
		if !recognizer.IsSupportedImage(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}

// Load scans dir and extracts one descriptor per image that contains a face.
// Images without faces are skipped silently. Images the detector cannot read
// are skipped with a warning and reported in Result.Skipped; only a failure
// to list the folder aborts the scan.
func Load(ctx context.Context, dir string, detector recognizer.Detector, opts Options) (*Result, error) {
	paths, err := ListImages(dir)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("scan of %s interrupted: %w", dir, err)
		}

		descriptors, err := detector.Detect(path)
		switch {
		case err != nil:
			log.Printf("[scan] warning: skipping %s: %v", path, err)
			result.Skipped = append(result.Skipped, Skipped{Path: path, Reason: SkipUnreadable, Err: err})
		case len(descriptors) == 0:
			result.Skipped = append(result.Skipped, Skipped{Path: path, Reason: SkipNoFace})
		default:
			result.Records = append(result.Records, Record{Path: path, Descriptor: descriptors[0]})
		}

		if opts.Progress != nil {
			opts.Progress(i+1, len(paths))
		}
	}
	return result, nil
}
