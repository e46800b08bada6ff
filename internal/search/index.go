package search

import (
	"fmt"
	"sort"
)

// NearestNeighborIndex answers k-nearest queries over a set of fixed-width
// vectors. Distances are squared L2, ascending; when fewer than k vectors are
// stored the tail is padded with the (-1, -1) no-match sentinel.
type NearestNeighborIndex interface {
	Add(vectors [][]float32) error
	Search(query []float32, k int) (distances []float32, indices []int, err error)
}

// FlatIndex is an exact brute-force nearest-neighbor index. Vector i keeps the
// position it was added at, which maps back to the resource snapshot row.
type FlatIndex struct {
	dim     int
	vectors [][]float32
}

// NewFlatIndex creates an empty index for vectors of the given width.
func NewFlatIndex(dim int) *FlatIndex {
	return &FlatIndex{dim: dim}
}

// Len returns the number of stored vectors.
func (ix *FlatIndex) Len() int {
	return len(ix.vectors)
}

// Add appends vectors to the index.
func (ix *FlatIndex) Add(vectors [][]float32) error {
	for _, v := range vectors {
		if len(v) != ix.dim {
			return fmt.Errorf("vector width %d does not match index width %d", len(v), ix.dim)
		}
	}
	ix.vectors = append(ix.vectors, vectors...)
	return nil
}

// Search returns the k nearest stored vectors by squared L2 distance.
func (ix *FlatIndex) Search(query []float32, k int) ([]float32, []int, error) {
	if len(query) != ix.dim {
		return nil, nil, fmt.Errorf("query width %d does not match index width %d", len(query), ix.dim)
	}
	if k <= 0 {
		return nil, nil, fmt.Errorf("k must be positive, got %d", k)
	}

	type candidate struct {
		dist float32
		idx  int
	}
	candidates := make([]candidate, len(ix.vectors))
	for i, v := range ix.vectors {
		candidates[i] = candidate{dist: squaredL2(query, v), idx: i}
	}
	sort.Slice(candidates, func(a, b int) bool {
		if candidates[a].dist != candidates[b].dist {
			return candidates[a].dist < candidates[b].dist
		}
		return candidates[a].idx < candidates[b].idx
	})

	distances := make([]float32, k)
	indices := make([]int, k)
	for i := 0; i < k; i++ {
		if i < len(candidates) {
			distances[i] = candidates[i].dist
			indices[i] = candidates[i].idx
		} else {
			distances[i] = -1
			indices[i] = -1
		}
	}
	return distances, indices, nil
}

func squaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
