package search

import (
	"strings"
	"unicode/utf8"

	"github.com/baytlab/bayt/core"
)

// exactMatch finds the record whose normalized text contains (or equals) the
// normalized query. An exact hit is authoritative: it carries score 1.0 and
// is pinned to rank 1 regardless of what the other stages score. When several
// records contain the query, the one whose normalized length is closest to
// the query's wins, with ties broken by ascending ID.
func (e *Engine) exactMatch(normQuery string) *core.Candidate {
	queryLen := utf8.RuneCountInString(normQuery)

	var (
		best     *core.Record
		bestDiff int
	)
	for _, record := range e.records {
		if !strings.Contains(record.Normalized, normQuery) {
			continue
		}
		diff := utf8.RuneCountInString(record.Normalized) - queryLen
		if diff < 0 {
			diff = -diff
		}
		switch {
		case best == nil, diff < bestDiff:
			best, bestDiff = record, diff
		case diff == bestDiff && record.ID < best.ID:
			best = record
		}
	}
	if best == nil {
		return nil
	}

	return &core.Candidate{ID: best.ID, Score: 1.0, Source: core.SourceExact}
}
