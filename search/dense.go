package search

import (
	"context"
	"fmt"
	"math"

	"github.com/baytlab/bayt/ai"
	"github.com/baytlab/bayt/core"
)

// denseIndex holds one embedding per corpus record for cosine scoring.
// Built once at engine construction and read-only afterwards.
type denseIndex struct {
	ids     []core.ID
	vectors [][]float32
	dim     int
}

// buildDenseIndex assembles the dense index, embedding every record that does
// not already carry a stored vector. Returns ErrDimensionMismatch when the
// vectors disagree on dimensionality; any other failure means the index could
// not be built and the engine degrades to lexical-only retrieval.
func buildDenseIndex(ctx context.Context, records []*core.Record, embedder ai.Embedder) (*denseIndex, error) {
	idx := &denseIndex{
		ids:     make([]core.ID, len(records)),
		vectors: make([][]float32, len(records)),
	}

	var (
		missing   []string
		missingAt []int
	)
	for i, record := range records {
		idx.ids[i] = record.ID
		if len(record.Vector) > 0 {
			idx.vectors[i] = record.Vector
			continue
		}
		missing = append(missing, record.EmbeddingText())
		missingAt = append(missingAt, i)
	}

	if len(missing) > 0 {
		embedded, err := embedder.EmbedTexts(ctx, missing)
		if err != nil {
			return nil, err
		}
		if len(embedded) != len(missing) {
			return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(embedded), len(missing))
		}
		for j, vector := range embedded {
			idx.vectors[missingAt[j]] = vector
		}
	}

	for i, vector := range idx.vectors {
		if len(vector) == 0 {
			return nil, fmt.Errorf("record %s: empty embedding", idx.ids[i])
		}
		if idx.dim == 0 {
			idx.dim = len(vector)
			continue
		}
		if len(vector) != idx.dim {
			return nil, fmt.Errorf("%w: record %s has dimension %d, index has %d",
				ErrDimensionMismatch, idx.ids[i], len(vector), idx.dim)
		}
	}

	return idx, nil
}

// denseSearch embeds the query and ranks the corpus by cosine similarity.
// Embedding failures are not fatal: the query proceeds without dense
// candidates and the failure is logged and reported to the monitor.
func (e *Engine) denseSearch(ctx context.Context, query string, k int, monitor RetrievalMonitor) []core.Candidate {
	if e.dense == nil {
		return nil
	}

	if e.embedTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.embedTimeout)
		defer cancel()
	}

	vector, err := e.embedder.EmbedText(ctx, query)
	if err != nil {
		e.logger.Warn("query embedding failed, continuing without dense retrieval", "err", err)
		monitor.EmbeddingFailed(err)
		return nil
	}
	if len(vector) != e.dense.dim {
		err := fmt.Errorf("%w: query has dimension %d, index has %d", ErrDimensionMismatch, len(vector), e.dense.dim)
		e.logger.Warn("query embedding unusable, continuing without dense retrieval", "err", err)
		monitor.EmbeddingFailed(err)
		return nil
	}

	return e.dense.search(vector, k, e.minDenseSimilarity)
}

// search returns the top k records by cosine similarity to the query vector,
// mapped linearly from [-1, 1] to [0, 1]. Records scoring below minScore are
// not candidates: without the floor every query would rank the whole corpus
// and a no-match query could never come back empty. Ties break by ascending
// ID.
func (idx *denseIndex) search(query []float32, k int, minScore float64) []core.Candidate {
	candidates := make([]core.Candidate, 0, len(idx.ids))
	for i, vector := range idx.vectors {
		score := (cosine(query, vector) + 1) / 2
		if score < minScore {
			continue
		}
		candidates = append(candidates, core.Candidate{ID: idx.ids[i], Score: score, Source: core.SourceDense})
	}
	sortCandidates(candidates)
	if len(candidates) > k {
		candidates = candidates[:k]
	}

	return candidates
}

// cosine computes cosine similarity in [-1, 1]. Zero vectors score 0.
func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
