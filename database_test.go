package bayt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baytlab/bayt/ai/mock"
	"github.com/baytlab/bayt/core"
)

func verseRecords() []*core.Record {
	return []*core.Record{
		{
			ID:          "v1",
			Verse:       "قِفَا نَبْكِ مِنْ ذِكْرَى حَبِيبٍ وَمَنْزِلِ",
			Annotation:  "يستوقف صاحبيه ليبكي على ديار الحبيبة",
			Poet:        "امرؤ القيس",
			Poem:        "معلقة امرئ القيس",
			VerseNumber: 1,
		},
		{
			ID:          "v2",
			Verse:       "لِخَوْلَةَ أَطْلالٌ بِبُرْقَةِ ثَهْمَدِ",
			Annotation:  "يقف على أطلال ديار خولة",
			Poet:        "طرفة بن العبد",
			Poem:        "معلقة طرفة",
			VerseNumber: 1,
		},
	}
}

func newTestDatabase(t *testing.T) *Database {
	t.Helper()

	db, err := NewDatabase(t.TempDir(), WithEmbedder(mock.NewMockEmbedder()))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDatabaseRetrieveBeforeLoad(t *testing.T) {
	db := newTestDatabase(t)

	_, err := db.Retrieve(context.Background(), "قفا نبك", 3)
	assert.ErrorIs(t, err, ErrEngineNotLoaded)
	assert.Nil(t, db.Records())
	assert.False(t, db.Degraded())
}

func TestDatabaseIngestAndRetrieve(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)

	require.NoError(t, db.Ingest(ctx, verseRecords()))
	require.NoError(t, db.LoadEngine(ctx))

	assert.Len(t, db.Records(), 2)
	assert.False(t, db.Degraded())

	matches, err := db.Retrieve(ctx, "قفا نبك من ذكرى حبيب", 2)
	require.NoError(t, err)
	require.NotEmpty(t, matches)
	assert.Equal(t, core.ID("v1"), matches[0].Record.ID)
	assert.Equal(t, 1.0, matches[0].Score)
	assert.Equal(t, core.SourceExact, matches[0].Source)
}

func TestDatabaseIngestPersistsVectors(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)

	require.NoError(t, db.Ingest(ctx, verseRecords()))

	stored, err := db.CorpusRepository().AllRecords(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	for _, rec := range stored {
		assert.NotEmpty(t, rec.Vector)
	}
}

func TestDatabaseReloadSwapsEngine(t *testing.T) {
	ctx := context.Background()
	db := newTestDatabase(t)

	records := verseRecords()
	require.NoError(t, db.Ingest(ctx, records[:1]))
	require.NoError(t, db.LoadEngine(ctx))
	assert.Len(t, db.Records(), 1)

	// Ingesting more records does not affect the loaded engine.
	require.NoError(t, db.Ingest(ctx, records[1:]))
	assert.Len(t, db.Records(), 1)

	// A reload swaps in the enlarged corpus.
	require.NoError(t, db.LoadEngine(ctx))
	assert.Len(t, db.Records(), 2)

	matches, err := db.Retrieve(ctx, "لخولة أطلال", 2)
	require.NoError(t, err)
	require.NotEmpty(t, matches)
	assert.Equal(t, core.ID("v2"), matches[0].Record.ID)
}
