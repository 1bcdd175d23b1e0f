package matcher

import (
	"cmp"
	"errors"
	"slices"
	"sync"

	"github.com/coder/hnsw"
	"github.com/kozaktomas/face-compare/internal/recognizer"
	"github.com/kozaktomas/face-compare/internal/store"
)

// MaxNeighbors is the HNSW M parameter.
const MaxNeighbors = 16

// Neighbor is a reference ranked by distance to a query.
type Neighbor struct {
	Path     string
	Distance float64
}

// Index ranks references by euclidean distance using an HNSW graph.
// It is a browsing aid; Match remains the authority on what is a match.
type Index struct {
	graph   *hnsw.Graph[int]
	records []store.Record
	mu      sync.RWMutex
}

// NewIndex builds an index over records.
func NewIndex(records []store.Record) *Index {
	idx := &Index{}
	idx.Build(records)
	return idx
}

// Build replaces the index contents.
func (idx *Index) Build(records []store.Record) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.records = records
	if len(records) == 0 {
		idx.graph = nil
		return
	}

	g := hnsw.NewGraph[int]()
	g.M = MaxNeighbors
	g.Ml = 1.0 / float64(MaxNeighbors)
	g.Distance = hnsw.EuclideanDistance
	for i := range records {
		g.Add(hnsw.MakeNode(i, records[i].Descriptor.Vector()))
	}
	idx.graph = g
}

// Len returns the number of indexed references.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.records)
}

// Nearest returns up to k references closest to query, closest first.
func (idx *Index) Nearest(query recognizer.Descriptor, k int) ([]Neighbor, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if k <= 0 {
		return nil, errors.New("k must be positive")
	}
	if idx.graph == nil {
		return []Neighbor{}, nil
	}

	q := query.Vector()
	nodes := idx.graph.Search(q, k)
	neighbors := make([]Neighbor, 0, len(nodes))
	for _, n := range nodes {
		neighbors = append(neighbors, Neighbor{
			Path:     idx.records[n.Key].Path,
			Distance: float64(hnsw.EuclideanDistance(q, n.Value)),
		})
	}
	slices.SortStableFunc(neighbors, func(a, b Neighbor) int {
		return cmp.Compare(a.Distance, b.Distance)
	})
	return neighbors, nil
}
