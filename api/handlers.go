package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/baytlab/bayt/core"
	"github.com/baytlab/bayt/search"
)

type searchRequest struct {
	Query string `json:"query"`
	K     int    `json:"k"`
}

type searchResult struct {
	ID          string  `json:"id"`
	PoetName    string  `json:"poet_name"`
	PoemName    string  `json:"poem_name"`
	VerseNumber int     `json:"verse_number"`
	VerseText   string  `json:"verse_text"`
	Explanation string  `json:"explanation"`
	SourceBook  string  `json:"source_book"`
	Score       float64 `json:"score"`
	Source      string  `json:"source"`
}

type searchResponse struct {
	Results []searchResult `json:"results"`
	Count   int            `json:"count"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		s.respondError(w, http.StatusBadRequest, "query is required")
		return
	}

	k := req.K
	if k <= 0 {
		k = s.config.Retrieval.DefaultK
	}
	if k > s.config.Retrieval.MaxK {
		k = s.config.Retrieval.MaxK
	}

	s.logger.Debug("search request", "query", query, "k", k)
	matches, err := s.retriever.Retrieve(r.Context(), query, k)
	if err != nil {
		if errors.Is(err, search.ErrInvalidK) {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("search failed", "error", err)
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if len(matches) == 0 {
		s.respondError(w, http.StatusNotFound, "no matching verses found")
		return
	}

	results := make([]searchResult, 0, len(matches))
	for _, m := range matches {
		results = append(results, matchToResult(m))
	}
	s.respondJSON(w, http.StatusOK, searchResponse{Results: results, Count: len(results)})
}

func matchToResult(m core.Match) searchResult {
	return searchResult{
		ID:          string(m.Record.ID),
		PoetName:    m.Record.Poet,
		PoemName:    m.Record.Poem,
		VerseNumber: m.Record.VerseNumber,
		VerseText:   m.Record.Verse,
		Explanation: m.Record.Annotation,
		SourceBook:  m.Record.SourceBook,
		Score:       m.Score,
		Source:      string(m.Source),
	}
}

func (s *Server) handlePoets(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.poets)
}

type exampleItem struct {
	Text string `json:"text"`
	Poet string `json:"poet"`
	Poem string `json:"poem"`
}

// The opening verses of the seven muallaqat, offered as ready-made queries.
var searchExamples = []exampleItem{
	{Text: "قفا نبك من ذكرى حبيب ومنزل", Poet: "امرؤ القيس", Poem: "معلقة امرئ القيس"},
	{Text: "لخولة أطلال ببرقة ثهمد", Poet: "طرفة بن العبد", Poem: "معلقة طرفة"},
	{Text: "أمن أم أوفى دمنة لم تكلم", Poet: "زهير بن أبي سلمى", Poem: "معلقة زهير"},
	{Text: "عفت الديار محلها فمقامها", Poet: "لبيد بن ربيعة", Poem: "معلقة لبيد"},
	{Text: "ألا هبي بصحنك فاصبحينا", Poet: "عمرو بن كلثوم", Poem: "معلقة عمرو بن كلثوم"},
	{Text: "هل غادر الشعراء من متردم", Poet: "عنترة بن شداد", Poem: "معلقة عنترة"},
	{Text: "آذنتنا ببينها أسماء", Poet: "الحارث بن حلزة", Poem: "معلقة الحارث بن حلزة"},
}

func (s *Server) handleExamples(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, searchExamples)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "ok",
		"record_count": len(s.retriever.Records()),
		"degraded":     s.retriever.Degraded(),
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
