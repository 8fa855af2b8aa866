package rag

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/intervu-ai/backend/internal/llm"
)

// Retriever is an in-process similarity index over the chunks of one
// resume. Vectors live in memory for the life of the session and are
// searched by cosine similarity; a resume yields a few dozen chunks at
// most, so a linear scan is plenty.
type Retriever struct {
	embedder llm.Embedder
	chunks   []string
	vectors  [][]float32
}

func newRetriever(embedder llm.Embedder, chunks []string, vectors [][]float32) *Retriever {
	return &Retriever{
		embedder: embedder,
		chunks:   chunks,
		vectors:  vectors,
	}
}

// Search embeds the query and returns the k most similar chunks, best first.
// k larger than the chunk count returns everything.
func (r *Retriever) Search(ctx context.Context, query string, k int) ([]string, error) {
	if len(r.chunks) == 0 {
		return nil, fmt.Errorf("retriever has no indexed chunks")
	}
	if k <= 0 {
		return nil, nil
	}

	qv, err := r.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(qv) == 0 {
		return nil, fmt.Errorf("no query embedding returned")
	}

	type scored struct {
		index int
		score float64
	}
	ranked := make([]scored, len(r.vectors))
	for i, v := range r.vectors {
		ranked[i] = scored{index: i, score: cosineSimilarity(qv[0], v)}
	}
	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if k > len(ranked) {
		k = len(ranked)
	}
	out := make([]string, k)
	for i := 0; i < k; i++ {
		out[i] = r.chunks[ranked[i].index]
	}
	return out, nil
}

// Len reports the number of indexed chunks.
func (r *Retriever) Len() int {
	return len(r.chunks)
}

func cosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
