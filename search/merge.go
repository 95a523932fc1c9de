package search

import (
	"sort"

	"github.com/baytlab/bayt/core"
)

// fuse combines the exact, sparse and dense candidate lists into the final
// ranking of at most k matches.
//
// An exact hit is pinned to rank 1 with its score of 1.0 and removed from the
// other lists. The remaining candidates are normalized against the maximum
// score of their own list, combined as
//
//	fused = sparseWeight*normSparse + denseWeight*normDense
//
// and ordered by descending fused score with ties broken by ascending ID.
// Each match is tagged with the source that contributed the larger normalized
// score, sparse winning ties.
func (e *Engine) fuse(exact *core.Candidate, sparse, dense []core.Candidate, k int) []core.Match {
	matches := make([]core.Match, 0, k)

	if exact != nil {
		matches = append(matches, core.Match{Record: e.byID[exact.ID], Score: exact.Score, Source: exact.Source})
		sparse = dropCandidate(sparse, exact.ID)
		dense = dropCandidate(dense, exact.ID)
	}

	var (
		fusedScores = make(map[core.ID]float64)
		sparseNorm  = make(map[core.ID]float64)
		denseNorm   = make(map[core.ID]float64)
	)
	if max := maxScore(sparse); max > 0 {
		for _, c := range sparse {
			norm := c.Score / max
			sparseNorm[c.ID] = norm
			fusedScores[c.ID] += e.sparseWeight * norm
		}
	}
	if max := maxScore(dense); max > 0 {
		for _, c := range dense {
			norm := c.Score / max
			denseNorm[c.ID] = norm
			fusedScores[c.ID] += e.denseWeight * norm
		}
	}

	fused := make([]core.Candidate, 0, len(fusedScores))
	for id, score := range fusedScores {
		source := core.SourceDense
		if sparseNorm[id] >= denseNorm[id] {
			source = core.SourceSparse
		}
		fused = append(fused, core.Candidate{ID: id, Score: score, Source: source})
	}
	sortCandidates(fused)

	for _, c := range fused {
		if len(matches) == k {
			break
		}
		matches = append(matches, core.Match{Record: e.byID[c.ID], Score: c.Score, Source: c.Source})
	}

	return matches
}

// sortCandidates orders candidates by descending score, ties broken by
// ascending ID. Every ranking in the engine goes through this ordering so
// results stay deterministic.
func sortCandidates(candidates []core.Candidate) {
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].ID < candidates[j].ID
	})
}

func maxScore(candidates []core.Candidate) float64 {
	var max float64
	for _, c := range candidates {
		if c.Score > max {
			max = c.Score
		}
	}
	return max
}

func dropCandidate(candidates []core.Candidate, id core.ID) []core.Candidate {
	for i, c := range candidates {
		if c.ID == id {
			return append(candidates[:i], candidates[i+1:]...)
		}
	}
	return candidates
}
