// Copyright 2025 Bayt Lab
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bayt

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/baytlab/bayt/ai"
	"github.com/baytlab/bayt/ai/openai"
	"github.com/baytlab/bayt/core"
	"github.com/baytlab/bayt/ingestion"
	"github.com/baytlab/bayt/search"
	"github.com/baytlab/bayt/storage"
	"github.com/baytlab/bayt/storage/badger"
)

// ErrEngineNotLoaded is returned by Retrieve before LoadEngine has been called.
var ErrEngineNotLoaded = errors.New("retrieval engine not loaded")

// Database ties the corpus store, the embedder, and the retrieval engine
// together. The engine is immutable once built; LoadEngine replaces it
// atomically so readers never observe a partially built index.
type Database struct {
	backend    *badger.Backend
	corpusRepo storage.CorpusRepository
	embedder   ai.Embedder
	engine     atomic.Pointer[search.Engine]
	searchOpts []search.Option
	logger     *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig   *ai.Config
	embedder   ai.Embedder
	searchOpts []search.Option
	logger     *slog.Logger
}

// WithAIConfig sets the embedding service configuration.
func WithAIConfig(cfg *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.aiConfig = cfg
	}
}

// WithEmbedder injects an embedder directly, bypassing the AI config.
func WithEmbedder(embedder ai.Embedder) DatabaseOption {
	return func(o *databaseOptions) {
		o.embedder = embedder
	}
}

// WithSearchOptions sets the options passed to the engine on every rebuild.
func WithSearchOptions(opts ...search.Option) DatabaseOption {
	return func(o *databaseOptions) {
		o.searchOpts = opts
	}
}

// WithDatabaseLogger sets the logger. Default is slog.Default().
func WithDatabaseLogger(logger *slog.Logger) DatabaseOption {
	return func(o *databaseOptions) {
		o.logger = logger
	}
}

func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	// Apply options
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	// Create corpus repository
	corpusRepo, err := badger.NewCorpusRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create embedder with configured settings
	embedder := options.embedder
	if embedder == nil {
		embedder, err = openai.NewEmbedder(options.aiConfig)
		if err != nil {
			corpusRepo.Close()
			backend.Close()
			return nil, err
		}
	}

	return &Database{
		backend:    backend,
		corpusRepo: corpusRepo,
		embedder:   embedder,
		searchOpts: options.searchOpts,
		logger:     options.logger,
	}, nil
}

// Ingest embeds and persists the given records. It does not rebuild the
// retrieval engine; call LoadEngine afterwards.
func (db *Database) Ingest(ctx context.Context, records []*core.Record, opts ...ingestion.Option) error {
	pipeline, err := ingestion.NewPipeline(db.corpusRepo, db.embedder, opts...)
	if err != nil {
		return err
	}
	defer pipeline.Release()

	return pipeline.Run(ctx, records)
}

// LoadEngine builds a retrieval engine from the persisted corpus and swaps
// it in. Concurrent Retrieve calls keep using the previous engine until the
// swap completes.
func (db *Database) LoadEngine(ctx context.Context) error {
	records, err := db.corpusRepo.AllRecords(ctx)
	if err != nil {
		return err
	}

	opts := append([]search.Option{search.WithLogger(db.logger)}, db.searchOpts...)
	engine, err := search.NewEngine(ctx, records, db.embedder, opts...)
	if err != nil {
		return err
	}

	db.engine.Store(engine)
	db.logger.Info("retrieval engine loaded",
		"records", len(records),
		"degraded", engine.Degraded())
	return nil
}

// Retrieve answers a query against the currently loaded engine.
func (db *Database) Retrieve(ctx context.Context, query string, k int) ([]core.Match, error) {
	engine := db.engine.Load()
	if engine == nil {
		return nil, ErrEngineNotLoaded
	}
	return engine.Retrieve(ctx, query, k)
}

// Records returns the records held by the currently loaded engine.
func (db *Database) Records() []*core.Record {
	engine := db.engine.Load()
	if engine == nil {
		return nil
	}
	return engine.Records()
}

// Degraded reports whether the currently loaded engine is running without
// its dense index.
func (db *Database) Degraded() bool {
	engine := db.engine.Load()
	if engine == nil {
		return false
	}
	return engine.Degraded()
}

func (db *Database) CorpusRepository() storage.CorpusRepository {
	return db.corpusRepo
}

func (db *Database) Close() error {
	if err := db.corpusRepo.Close(); err != nil {
		db.logger.Error("error closing corpus repository", "err", err)
		return err
	}

	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
