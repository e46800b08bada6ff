package search

import "context"

// Embedder turns texts into fixed-width vectors. Implementations must be
// deterministic for a given model so that repeated queries rank identically.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
