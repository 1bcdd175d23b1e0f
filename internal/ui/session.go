package ui

import (
	"fmt"

	"github.com/kozaktomas/face-compare/internal/workflow"
)

// State is a step of the compare-and-review cycle.
type State int

const (
	Idle       State = iota // waiting for the user to choose an image
	FileChosen              // image chosen, not processed yet
	Processed               // scan, match and archival done
	ReviewOpen              // review window shown
	Renamed                 // archived copy renamed, review window closing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case FileChosen:
		return "file-chosen"
	case Processed:
		return "processed"
	case ReviewOpen:
		return "review-open"
	case Renamed:
		return "renamed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Session tracks one cycle from choosing an image to closing its review.
// It holds no widgets so the transitions can be tested without a display.
type Session struct {
	state   State
	query   string
	result  *workflow.Result
	renamed string
}

func (s *Session) State() State { return s.state }
func (s *Session) Query() string { return s.query }
func (s *Session) Result() *workflow.Result { return s.result }
func (s *Session) RenamedPath() string { return s.renamed }

func (s *Session) transition(from, to State) error {
	if s.state != from {
		return fmt.Errorf("cannot go from %s to %s", s.state, to)
	}
	s.state = to
	return nil
}

// Choose records the chosen image. An empty path means the picker was
// cancelled and the session stays idle; Choose reports whether it moved on.
func (s *Session) Choose(path string) (bool, error) {
	if path == "" {
		return false, nil
	}
	if err := s.transition(Idle, FileChosen); err != nil {
		return false, err
	}
	s.query = path
	return true, nil
}

// Processed stores the workflow result.
func (s *Session) Processed(result *workflow.Result) error {
	if err := s.transition(FileChosen, Processed); err != nil {
		return err
	}
	s.result = result
	return nil
}

// Failed abandons a chosen image whose processing failed.
func (s *Session) Failed() {
	if s.state == FileChosen {
		s.reset()
	}
}

// OpenReview marks the review window as shown.
func (s *Session) OpenReview() error {
	return s.transition(Processed, ReviewOpen)
}

// ArchivedPath returns the archived copy the review window can rename.
func (s *Session) ArchivedPath() string {
	if s.result == nil {
		return ""
	}
	return s.result.Archived
}

// CanRename reports whether the rename action is available.
func (s *Session) CanRename() bool {
	return s.state == ReviewOpen && s.ArchivedPath() != ""
}

// Rename records a successful rename of the archived copy.
func (s *Session) Rename(newPath string) error {
	if err := s.transition(ReviewOpen, Renamed); err != nil {
		return err
	}
	s.renamed = newPath
	s.result.Archived = newPath
	return nil
}

// Close ends the cycle when the review window closes.
func (s *Session) Close() {
	if s.state == ReviewOpen || s.state == Renamed {
		s.reset()
	}
}

func (s *Session) reset() {
	s.state = Idle
	s.query = ""
	s.result = nil
	s.renamed = ""
}
