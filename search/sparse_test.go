package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baytlab/bayt/core"
)

func sparseTestIndex(verses map[core.ID]string) *sparseIndex {
	records := make([]*core.Record, 0, len(verses))
	for id, verse := range verses {
		records = append(records, &core.Record{
			ID:         id,
			Verse:      verse,
			Normalized: core.NormalizeText(verse),
		})
	}
	return newSparseIndex(records, DefaultBM25K1, DefaultBM25B)
}

func TestSparseIndex_Search(t *testing.T) {
	idx := sparseTestIndex(map[core.ID]string{
		"a": "sword sword shield",
		"b": "sword lance",
		"c": "banner drum",
	})

	t.Run("term frequency ranks higher", func(t *testing.T) {
		hits := idx.search("sword", 10)
		require.Len(t, hits, 2)
		assert.Equal(t, core.ID("a"), hits[0].ID)
		assert.Equal(t, core.ID("b"), hits[1].ID)
		assert.Greater(t, hits[0].Score, hits[1].Score)
		for _, hit := range hits {
			assert.Equal(t, core.SourceSparse, hit.Source)
		}
	})

	t.Run("non-matching records never surface", func(t *testing.T) {
		hits := idx.search("sword shield", 10)
		for _, hit := range hits {
			assert.NotEqual(t, core.ID("c"), hit.ID)
		}
	})

	t.Run("unknown terms yield nothing", func(t *testing.T) {
		assert.Empty(t, idx.search("qasida", 10))
	})

	t.Run("truncates to k", func(t *testing.T) {
		hits := idx.search("sword", 1)
		require.Len(t, hits, 1)
		assert.Equal(t, core.ID("a"), hits[0].ID)
	})
}

func TestSparseIndex_TieBreaksByID(t *testing.T) {
	idx := sparseTestIndex(map[core.ID]string{
		"z": "ليل طويل",
		"m": "ليل طويل",
		"a": "ليل طويل",
	})

	hits := idx.search("ليل", 10)
	require.Len(t, hits, 3)
	assert.Equal(t, []core.ID{"a", "m", "z"}, []core.ID{hits[0].ID, hits[1].ID, hits[2].ID})
}
