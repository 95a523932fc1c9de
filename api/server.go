// Package api provides the HTTP API for the bayt retrieval service.
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/baytlab/bayt/config"
	"github.com/baytlab/bayt/core"
)

// Retriever answers verse queries. *search.Engine satisfies this, as does
// *bayt.Database.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]core.Match, error)
	Records() []*core.Record
	Degraded() bool
}

// Server is the HTTP server for the bayt API.
type Server struct {
	retriever Retriever
	poets     []poetInfo
	config    *config.Config
	logger    *slog.Logger
	server    *http.Server
}

// NewServer creates a server with the given dependencies. The poet listing
// is aggregated once at construction since the corpus is read-only.
func NewServer(retriever Retriever, cfg *config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		retriever: retriever,
		poets:     aggregatePoets(retriever.Records()),
		config:    cfg,
		logger:    logger,
	}
}

// Handler builds the chi router for the API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(time.Duration(s.config.HTTP.WriteTimeoutSec) * time.Second))

	r.Post("/api/v1/search", s.handleSearch)
	r.Get("/api/v1/poets", s.handlePoets)
	r.Get("/api/v1/examples", s.handleExamples)
	r.Get("/health", s.handleHealth)

	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.HTTP.Host, s.config.HTTP.Port)
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  time.Duration(s.config.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(s.config.HTTP.WriteTimeoutSec) * time.Second,
	}
	s.logger.Info("starting server", "addr", addr)
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

type poetInfo struct {
	Name       string `json:"name"`
	PoemCount  int    `json:"poem_count"`
	VerseCount int    `json:"verse_count"`
}

func aggregatePoets(records []*core.Record) []poetInfo {
	type tally struct {
		poems  map[string]struct{}
		verses int
	}
	byPoet := make(map[string]*tally)
	for _, rec := range records {
		name := rec.Poet
		if name == "" {
			name = "Unknown"
		}
		t, ok := byPoet[name]
		if !ok {
			t = &tally{poems: make(map[string]struct{})}
			byPoet[name] = t
		}
		t.poems[rec.Poem] = struct{}{}
		t.verses++
	}

	poets := make([]poetInfo, 0, len(byPoet))
	for name, t := range byPoet {
		poets = append(poets, poetInfo{
			Name:       name,
			PoemCount:  len(t.poems),
			VerseCount: t.verses,
		})
	}
	sort.Slice(poets, func(i, j int) bool { return poets[i].Name < poets[j].Name })
	return poets
}
