package search

import (
	"strings"
	"unicode/utf8"

	"github.com/baytlab/bayt/core"
)

// minKeywordRunes filters short function words out of the fallback scan.
const minKeywordRunes = 3

// fallbackScan is the retrieval of last resort, run only when the exact,
// sparse and dense stages all came back empty. It scans the corpus for
// records containing the query's keywords (unique terms of at least
// minKeywordRunes runes) and returns the single best hit, scored by the
// fraction of keywords found. More keyword overlap wins; ties break by
// ascending ID.
func (e *Engine) fallbackScan(normQuery string) *core.Match {
	keywords := fallbackKeywords(normQuery)
	if len(keywords) == 0 {
		return nil
	}

	var (
		best        *core.Record
		bestOverlap int
	)
	for _, record := range e.records {
		overlap := 0
		for _, keyword := range keywords {
			if strings.Contains(record.Normalized, keyword) {
				overlap++
			}
		}
		if overlap == 0 {
			continue
		}
		switch {
		case best == nil, overlap > bestOverlap:
			best, bestOverlap = record, overlap
		case overlap == bestOverlap && record.ID < best.ID:
			best = record
		}
	}
	if best == nil {
		return nil
	}

	return &core.Match{
		Record: best,
		Score:  float64(bestOverlap) / float64(len(keywords)),
		Source: core.SourceFallback,
	}
}

// fallbackKeywords returns the unique query terms of at least minKeywordRunes
// runes, preserving first-seen order.
func fallbackKeywords(normQuery string) []string {
	seen := make(map[string]struct{})
	var keywords []string
	for _, term := range core.Tokenize(normQuery) {
		if utf8.RuneCountInString(term) < minKeywordRunes {
			continue
		}
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		keywords = append(keywords, term)
	}
	return keywords
}
