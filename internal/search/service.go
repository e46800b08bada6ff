package search

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"resource-hub-backend/internal/model"
	"resource-hub-backend/internal/store"
)

// Result pairs a resource with its similarity score, nearest first.
type Result struct {
	Resource model.Resource `json:"resource"`
	Score    float64        `json:"score"`
}

// Service maintains a vector index over the resource set and answers
// nearest-neighbor queries. The index is rebuilt, never patched: whenever the
// store's resource version differs from the version the current index was
// built at, the next query triggers a full rebuild. Rebuilds are serialized.
type Service struct {
	store    store.Store
	embedder Embedder

	// newIndex is swapped out in tests.
	newIndex func(dim int) NearestNeighborIndex

	mu           sync.RWMutex
	index        NearestNeighborIndex
	snapshot     []model.Resource
	builtVersion uint64
}

// NewService creates a search service over the given store and embedder.
func NewService(s store.Store, embedder Embedder) *Service {
	return &Service{
		store:    s,
		embedder: embedder,
		newIndex: func(dim int) NearestNeighborIndex { return NewFlatIndex(dim) },
	}
}

// Search embeds the query and returns up to k resources with similarity
// scores. An empty or whitespace-only query yields an empty result list.
func (s *Service) Search(ctx context.Context, query string, k int) ([]Result, error) {
	if strings.TrimSpace(query) == "" || k <= 0 {
		return []Result{}, nil
	}

	if err := s.ensureFresh(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.index == nil || len(s.snapshot) == 0 {
		return []Result{}, nil
	}

	vectors, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("embedder returned %d vectors for one query", len(vectors))
	}

	// Over-fetch so sentinel entries can be dropped without starving k.
	distances, indices, err := s.index.Search(vectors[0], 2*k)
	if err != nil {
		return nil, fmt.Errorf("index search failed: %w", err)
	}

	results := make([]Result, 0, k)
	for i := range distances {
		if distances[i] < 0 || indices[i] < 0 || indices[i] >= len(s.snapshot) {
			continue
		}
		score := 1 - float64(distances[i])/2
		if score < 0 {
			score = 0
		}
		results = append(results, Result{Resource: s.snapshot[indices[i]], Score: score})
		if len(results) >= k {
			break
		}
	}
	return results, nil
}

// ensureFresh rebuilds the index when the resource set has changed since the
// last build. At most one rebuild runs at a time; queries arriving during a
// rebuild wait and then read the fresh index.
func (s *Service) ensureFresh(ctx context.Context) error {
	version := s.store.ResourceVersion()

	s.mu.RLock()
	fresh := s.index != nil && s.builtVersion == version
	s.mu.RUnlock()
	if fresh {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another caller may have rebuilt while we waited for the lock.
	version = s.store.ResourceVersion()
	if s.index != nil && s.builtVersion == version {
		return nil
	}
	return s.rebuild(ctx, version)
}

// rebuild embeds every resource's text blob and loads a new index. Caller
// holds the write lock.
func (s *Service) rebuild(ctx context.Context, version uint64) error {
	resources, err := s.store.ListResources(ctx)
	if err != nil {
		return fmt.Errorf("failed to load resources for indexing: %w", err)
	}

	if len(resources) == 0 {
		s.index = nil
		s.snapshot = nil
		s.builtVersion = version
		return nil
	}

	texts := make([]string, len(resources))
	for i, r := range resources {
		texts[i] = r.SearchText()
	}

	vectors, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to embed resource texts: %w", err)
	}
	if len(vectors) != len(resources) {
		return fmt.Errorf("embedder returned %d vectors for %d resources", len(vectors), len(resources))
	}

	index := s.newIndex(len(vectors[0]))
	if err := index.Add(vectors); err != nil {
		return fmt.Errorf("failed to load vectors into index: %w", err)
	}

	s.index = index
	s.snapshot = resources
	s.builtVersion = version
	log.Printf("search index rebuilt: %d resources at version %d", len(resources), version)
	return nil
}
