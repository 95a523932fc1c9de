package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/baytlab/bayt/ai"
	"github.com/baytlab/bayt/core"
	"github.com/baytlab/bayt/storage"
)

const defaultBatchSize = 32

// Pipeline embeds corpus records and persists them.
// Embedding runs in concurrent batches on a worker pool.
type Pipeline struct {
	repository storage.CorpusRepository
	embedder   ai.Embedder
	pool       *ants.Pool
	batchSize  int
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		p.pool = pool
		return nil
	}
}

// WithBatchSize sets how many records are embedded per service call.
// Default is 32.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		p.batchSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	repository storage.CorpusRepository,
	embedder ai.Embedder,
	opts ...Option,
) (*Pipeline, error) {
	if repository == nil {
		return nil, ErrRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		repository: repository,
		embedder:   embedder,
		pool:       pool,
		batchSize:  defaultBatchSize,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Run embeds every record that does not already carry a vector and persists
// the whole corpus. Unlike retrieval, ingestion fails hard on embedding
// errors: nothing is persisted unless every record got its vector.
func (p *Pipeline) Run(ctx context.Context, records []*core.Record) error {
	if err := core.ValidateRecords(records); err != nil {
		return err
	}

	var pending []*core.Record
	for _, record := range records {
		if len(record.Vector) == 0 {
			pending = append(pending, record)
		}
	}

	p.logger.Info("ingesting corpus",
		"records", len(records),
		"to_embed", len(pending),
		"batch_size", p.batchSize)

	if err := p.embedBatches(ctx, pending); err != nil {
		return err
	}

	return p.repository.AddRecords(ctx, records...)
}

// embedBatches embeds the pending records in pool-scheduled batches and
// returns the first failure, if any.
func (p *Pipeline) embedBatches(ctx context.Context, pending []*core.Record) error {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	for start := 0; start < len(pending); start += p.batchSize {
		end := min(start+p.batchSize, len(pending))
		batch := pending[start:end]

		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()
			if err := p.embedBatch(ctx, batch); err != nil {
				p.logger.Error("error embedding batch", "size", len(batch), "err", err)
				fail(err)
			}
		})
		if err != nil {
			wg.Done()
			fail(err)
			break
		}
	}
	wg.Wait()

	return firstErr
}

func (p *Pipeline) embedBatch(ctx context.Context, batch []*core.Record) error {
	texts := make([]string, len(batch))
	for i, record := range batch {
		texts[i] = record.EmbeddingText()
	}

	vectors, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return err
	}
	if len(vectors) != len(batch) {
		return fmt.Errorf("embedder returned %d vectors for %d texts", len(vectors), len(batch))
	}

	for i, record := range batch {
		record.Vector = vectors[i]
	}
	return nil
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
