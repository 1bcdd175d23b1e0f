// Package workflow runs one comparison: scan the archive folder, match the
// chosen image against it and archive the image. It has no UI dependency; the
// desktop window and the CLI both render its Result.
package workflow

import (
	"context"
	"fmt"
	"log"

	"github.com/kozaktomas/face-compare/internal/archive"
	"github.com/kozaktomas/face-compare/internal/config"
	"github.com/kozaktomas/face-compare/internal/matcher"
	"github.com/kozaktomas/face-compare/internal/recognizer"
	"github.com/kozaktomas/face-compare/internal/store"
)

// MatchPair is a stored reference judged to show the same person as the
// submitted image, paired with the submitted image's archived copy.
type MatchPair struct {
	Reference string
	Archived  string
}

// Result is the outcome of Process.
type Result struct {
	Query        string
	QueryHasFace bool
	References   int // records loaded from the archive folder
	Matches      []MatchPair
	Archived     string // empty when archiving was disabled
	Skipped      []store.Skipped
}

// Summary returns the dialog title and message describing the result.
func (r *Result) Summary() (title, message string) {
	if len(r.Matches) > 0 {
		return "Matches Found", fmt.Sprintf("%d match(es) found. Showing images for review.", len(r.Matches))
	}
	if r.Archived == "" {
		return "No Match", "No match found."
	}
	return "No Match", "No match found. Image has been saved for future comparisons."
}

// Options tunes a single Process call.
type Options struct {
	NoArchive bool                   // compare only, leave the archive folder untouched
	Progress  func(done, total int) // forwarded to the folder scan
}

// Processor wires the recognizer, the folder scan, the matcher and archival.
type Processor struct {
	cfg        *config.Config
	detector   recognizer.Detector
	comparator recognizer.Comparator
}

// NewProcessor creates a processor for the archive folder in cfg.
func NewProcessor(cfg *config.Config, detector recognizer.Detector, comparator recognizer.Comparator) *Processor {
	return &Processor{cfg: cfg, detector: detector, comparator: comparator}
}

// Dir returns the archive folder.
func (p *Processor) Dir() string {
	return p.cfg.Store.Dir
}

// Scan loads the reference records without matching or archiving anything.
func (p *Processor) Scan(ctx context.Context, progress func(done, total int)) (*store.Result, error) {
	return store.Load(ctx, p.cfg.Store.Dir, p.detector, store.Options{Progress: progress})
}

// Describe returns the descriptor of the first face in path, or nil when the
// image has no face.
func (p *Processor) Describe(path string) (*recognizer.Descriptor, error) {
	descriptors, err := p.detector.Detect(path)
	if err != nil {
		return nil, fmt.Errorf("reading query image: %w", err)
	}
	if len(descriptors) == 0 {
		return nil, nil
	}
	return &descriptors[0], nil
}

// Process compares the image at path against every reference in the archive
// folder and then archives it, whether or not anything matched. The folder
// lock is held for the whole operation.
func (p *Processor) Process(ctx context.Context, path string, opts Options) (*Result, error) {
	lock, err := archive.Acquire(ctx, p.cfg.Store.Dir, p.cfg.Store.LockTimeout)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			log.Printf("[workflow] warning: %v", err)
		}
	}()

	loaded, err := p.Scan(ctx, opts.Progress)
	if err != nil {
		return nil, err
	}

	query, err := p.Describe(path)
	if err != nil {
		return nil, err
	}

	matched := matcher.Match(query, loaded.Records, p.comparator)

	result := &Result{
		Query:        path,
		QueryHasFace: query != nil,
		References:   len(loaded.Records),
		Skipped:      loaded.Skipped,
		Matches:      make([]MatchPair, 0, len(matched)),
	}

	shown := path
	if !opts.NoArchive {
		result.Archived, err = archive.Save(path, p.cfg.Store.Dir)
		if err != nil {
			return nil, fmt.Errorf("saving image to archive: %w", err)
		}
		shown = result.Archived
	}

	for _, ref := range matched {
		result.Matches = append(result.Matches, MatchPair{Reference: ref, Archived: shown})
	}

	log.Printf("[workflow] %s: %d reference(s), %d match(es), %d skipped", path, result.References, len(result.Matches), len(result.Skipped))
	return result, nil
}

// Rename gives the archived copy a user-chosen name, keeping its extension.
func (p *Processor) Rename(archived, newName string) (string, error) {
	return archive.Rename(archived, newName)
}
