package search

import (
	"math"

	"github.com/baytlab/bayt/core"
)

// sparseIndex is an inverted index over normalized record text, scored with
// BM25 using the non-negative (Lucene-style) idf. Built once at engine
// construction and read-only afterwards.
type sparseIndex struct {
	k1, b float64

	postings map[string]map[core.ID]int // term -> record -> term frequency
	docLen   map[core.ID]int
	avgLen   float64
	count    int
}

func newSparseIndex(records []*core.Record, k1, b float64) *sparseIndex {
	idx := &sparseIndex{
		k1:       k1,
		b:        b,
		postings: make(map[string]map[core.ID]int),
		docLen:   make(map[core.ID]int, len(records)),
		count:    len(records),
	}

	var total int
	for _, record := range records {
		terms := core.Tokenize(record.Normalized)
		idx.docLen[record.ID] = len(terms)
		total += len(terms)
		for _, term := range terms {
			posting := idx.postings[term]
			if posting == nil {
				posting = make(map[core.ID]int)
				idx.postings[term] = posting
			}
			posting[record.ID]++
		}
	}
	if idx.count > 0 {
		idx.avgLen = float64(total) / float64(idx.count)
	}

	return idx
}

// search scores every record sharing at least one term with the query and
// returns the top k candidates by descending BM25 score, ties broken by
// ascending ID. Records with no overlapping terms are never returned.
func (idx *sparseIndex) search(normQuery string, k int) []core.Candidate {
	scores := make(map[core.ID]float64)
	for _, term := range core.Tokenize(normQuery) {
		posting, ok := idx.postings[term]
		if !ok {
			continue
		}
		df := float64(len(posting))
		idf := math.Log(1 + (float64(idx.count)-df+0.5)/(df+0.5))
		for id, tf := range posting {
			dl := float64(idx.docLen[id])
			norm := idx.k1 * (1 - idx.b + idx.b*dl/idx.avgLen)
			scores[id] += idf * float64(tf) * (idx.k1 + 1) / (float64(tf) + norm)
		}
	}

	candidates := make([]core.Candidate, 0, len(scores))
	for id, score := range scores {
		if score <= 0 {
			continue
		}
		candidates = append(candidates, core.Candidate{ID: id, Score: score, Source: core.SourceSparse})
	}
	sortCandidates(candidates)
	if len(candidates) > k {
		candidates = candidates[:k]
	}

	return candidates
}
