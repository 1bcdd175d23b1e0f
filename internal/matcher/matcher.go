// Package matcher compares a query descriptor against the loaded references.
package matcher

import (
	"github.com/kozaktomas/face-compare/internal/recognizer"
	"github.com/kozaktomas/face-compare/internal/store"
)

// Match returns the paths of all records the comparator judges to be the same
// person as query, in record order. Every record is tested; all matches are
// kept. A nil query (no face in the submitted image) matches nothing and the
// comparator is not consulted.
func Match(query *recognizer.Descriptor, records []store.Record, cmp recognizer.Comparator) []string {
	matches := []string{}
	if query == nil || len(records) == 0 {
		return matches
	}

	known := make([]recognizer.Descriptor, len(records))
	for i := range records {
		known[i] = records[i].Descriptor
	}

	verdicts := cmp.Compare(known, *query)
	for i := range records {
		if i < len(verdicts) && verdicts[i] {
			matches = append(matches, records[i].Path)
		}
	}
	return matches
}
