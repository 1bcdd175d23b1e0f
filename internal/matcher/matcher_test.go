package matcher

import (
	"testing"

	"github.com/kozaktomas/face-compare/internal/recognizer"
	"github.com/kozaktomas/face-compare/internal/store"
)

// thresholdComparator matches descriptors whose first component differs by at
// most limit, and counts calls.
type thresholdComparator struct {
	limit float32
	calls int
	seen  int
}

func (c *thresholdComparator) Compare(known []recognizer.Descriptor, candidate recognizer.Descriptor) []bool {
	c.calls++
	c.seen += len(known)
	out := make([]bool, len(known))
	for i, k := range known {
		d := k[0] - candidate[0]
		if d < 0 {
			d = -d
		}
		out[i] = d <= c.limit
	}
	return out
}

func desc(v float32) recognizer.Descriptor {
	var d recognizer.Descriptor
	d[0] = v
	return d
}

func records(values ...float32) []store.Record {
	out := make([]store.Record, len(values))
	names := []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg", "e.jpg"}
	for i, v := range values {
		out[i] = store.Record{Path: names[i], Descriptor: desc(v)}
	}
	return out
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name     string
		query    float32
		records  []store.Record
		expected []string
	}{
		{
			name:     "single match",
			query:    1,
			records:  records(1, 5),
			expected: []string{"a.jpg"},
		},
		{
			name:     "no match",
			query:    10,
			records:  records(1, 5),
			expected: []string{},
		},
		{
			name:     "all ties kept in stored order",
			query:    2,
			records:  records(2.1, 9, 1.9, 2),
			expected: []string{"a.jpg", "c.jpg", "d.jpg"},
		},
		{
			name:     "empty store",
			query:    1,
			records:  nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := desc(tt.query)
			cmp := &thresholdComparator{limit: 0.5}
			got := Match(&q, tt.records, cmp)
			if got == nil {
				t.Fatal("Match() returned nil, want empty slice")
			}
			if len(got) != len(tt.expected) {
				t.Fatalf("Match() = %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("Match()[%d] = %s, want %s", i, got[i], tt.expected[i])
				}
			}
			if cmp.seen != len(tt.records) {
				t.Errorf("comparator saw %d descriptors, want %d", cmp.seen, len(tt.records))
			}
		})
	}
}

func TestMatch_NoQueryFace(t *testing.T) {
	cmp := &thresholdComparator{limit: 100}
	got := Match(nil, records(1, 2, 3), cmp)
	if len(got) != 0 {
		t.Errorf("Match(nil) = %v, want empty", got)
	}
	if cmp.calls != 0 {
		t.Errorf("comparator called %d times, want 0", cmp.calls)
	}
}

// shortComparator returns fewer verdicts than requested.
type shortComparator struct{}

func (shortComparator) Compare(known []recognizer.Descriptor, _ recognizer.Descriptor) []bool {
	return []bool{true}
}

func TestMatch_ShortVerdicts(t *testing.T) {
	q := desc(1)
	got := Match(&q, records(1, 1, 1), shortComparator{})
	if len(got) != 1 || got[0] != "a.jpg" {
		t.Errorf("Match() = %v, want [a.jpg]", got)
	}
}
