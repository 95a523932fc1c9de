package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baytlab/bayt/ai/mock"
	"github.com/baytlab/bayt/config"
	"github.com/baytlab/bayt/core"
	"github.com/baytlab/bayt/search"
)

func testRecords() []*core.Record {
	records := []*core.Record{
		{
			ID:          "v1",
			Verse:       "قِفَا نَبْكِ مِنْ ذِكْرَى حَبِيبٍ وَمَنْزِلِ",
			Annotation:  "يستوقف صاحبيه ليبكي على ديار الحبيبة",
			Poet:        "امرؤ القيس",
			Poem:        "معلقة امرئ القيس",
			VerseNumber: 1,
			SourceBook:  "شرح المعلقات السبع للزوزني",
		},
		{
			ID:          "v2",
			Verse:       "وُقُوفاً بِهَا صَحْبِي عَلَيَّ مَطِيَّهُمْ",
			Annotation:  "يصف وقوف أصحابه حوله يواسونه",
			Poet:        "امرؤ القيس",
			Poem:        "معلقة امرئ القيس",
			VerseNumber: 4,
			SourceBook:  "شرح المعلقات السبع للزوزني",
		},
		{
			ID:          "v3",
			Verse:       "لِخَوْلَةَ أَطْلالٌ بِبُرْقَةِ ثَهْمَدِ",
			Annotation:  "يقف على أطلال ديار خولة",
			Poet:        "طرفة بن العبد",
			Poem:        "معلقة طرفة",
			VerseNumber: 1,
			SourceBook:  "شرح المعلقات السبع للزوزني",
		},
	}
	for _, r := range records {
		r.Normalized = core.NormalizeText(r.Verse)
	}
	return records
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	engine, err := search.NewEngine(context.Background(), testRecords(), mock.NewMockEmbedder())
	require.NoError(t, err)

	cfg := config.Default()
	return NewServer(engine, &cfg, nil)
}

func doSearch(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleSearchExactMatch(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec := doSearch(t, handler, `{"query": "قفا نبك من ذكرى حبيب", "k": 3}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp searchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Results)
	assert.Equal(t, resp.Count, len(resp.Results))
	assert.Equal(t, "v1", resp.Results[0].ID)
	assert.Equal(t, "امرؤ القيس", resp.Results[0].PoetName)
	assert.Equal(t, 1.0, resp.Results[0].Score)
	assert.Equal(t, string(core.SourceExact), resp.Results[0].Source)
}

func TestHandleSearchDefaultK(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec := doSearch(t, handler, `{"query": "اطلال خوله"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp searchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Results)
}

func TestHandleSearchEmptyQuery(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec := doSearch(t, handler, `{"query": "   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSearchBadBody(t *testing.T) {
	handler := newTestServer(t).Handler()

	rec := doSearch(t, handler, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSearchNoResults(t *testing.T) {
	// Fail query-time embedding so retrieval stays lexical. The Latin
	// tokens then match nothing, including the fallback scan.
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("embedding service down")
	}
	engine, err := search.NewEngine(context.Background(), testRecords(), embedder)
	require.NoError(t, err)

	cfg := config.Default()
	handler := NewServer(engine, &cfg, nil).Handler()

	rec := doSearch(t, handler, `{"query": "zzz yyy"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlePoets(t *testing.T) {
	handler := newTestServer(t).Handler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/poets", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var poets []poetInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &poets))
	require.Len(t, poets, 2)

	// Sorted by name.
	assert.Equal(t, "امرؤ القيس", poets[0].Name)
	assert.Equal(t, 1, poets[0].PoemCount)
	assert.Equal(t, 2, poets[0].VerseCount)
	assert.Equal(t, "طرفة بن العبد", poets[1].Name)
	assert.Equal(t, 1, poets[1].VerseCount)
}

func TestHandleExamples(t *testing.T) {
	handler := newTestServer(t).Handler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/examples", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var examples []exampleItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &examples))
	assert.Len(t, examples, 7)
	assert.Equal(t, "قفا نبك من ذكرى حبيب ومنزل", examples[0].Text)
}

func TestHandleHealth(t *testing.T) {
	handler := newTestServer(t).Handler()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var health struct {
		Status      string `json:"status"`
		RecordCount int    `json:"record_count"`
		Degraded    bool   `json:"degraded"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, 3, health.RecordCount)
	assert.False(t, health.Degraded)
}
