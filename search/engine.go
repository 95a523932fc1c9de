package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/baytlab/bayt/ai"
	"github.com/baytlab/bayt/core"
)

// Default fusion weights and BM25 parameters.
const (
	DefaultSparseWeight = 0.5
	DefaultDenseWeight  = 0.5
	DefaultBM25K1       = 1.2
	DefaultBM25B        = 0.75

	// DefaultMinDenseSimilarity is the floor on the mapped cosine score
	// below which a record does not become a dense candidate. 0.6 on the
	// [0, 1] scale is a raw cosine of 0.2: unrelated texts embed near
	// orthogonal and land well under it, related ones well over.
	DefaultMinDenseSimilarity = 0.6
)

// Engine provides hybrid retrieval over a fixed corpus of annotated verses.
//
// An Engine is immutable after construction and safe for concurrent use.
// To pick up corpus changes, build a new Engine and swap it in.
type Engine struct {
	records []*core.Record
	byID    map[core.ID]*core.Record

	sparse *sparseIndex
	dense  *denseIndex // nil when the engine degraded to lexical-only retrieval

	embedder ai.Embedder

	sparseWeight       float64
	denseWeight        float64
	bm25K1             float64
	bm25B              float64
	minDenseSimilarity float64
	embedTimeout       time.Duration
	scoreThreshold     float64
	logger             *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// WithWeights sets the fusion weights for the sparse and dense candidate
// lists. The weights are normalized to sum to 1 during construction, so
// only their ratio matters. Default is equal weighting.
func WithWeights(sparse, dense float64) Option {
	return func(e *Engine) error {
		if sparse < 0 || dense < 0 || sparse+dense == 0 {
			return fmt.Errorf("%w: sparse=%v dense=%v", ErrInvalidWeights, sparse, dense)
		}
		e.sparseWeight = sparse
		e.denseWeight = dense
		return nil
	}
}

// WithBM25Parameters sets the BM25 term saturation (k1) and length
// normalization (b) parameters. Defaults are k1=1.2, b=0.75.
func WithBM25Parameters(k1, b float64) Option {
	return func(e *Engine) error {
		if k1 < 0 || b < 0 || b > 1 {
			return fmt.Errorf("invalid BM25 parameters: k1=%v b=%v", k1, b)
		}
		e.bm25K1 = k1
		e.bm25B = b
		return nil
	}
}

// WithMinDenseSimilarity sets the similarity floor for dense candidates on
// the mapped [0, 1] cosine scale. Records scoring below it do not enter the
// dense list at all, so a query with no related verse produces no dense
// candidates rather than a ranking of the whole corpus.
func WithMinDenseSimilarity(min float64) Option {
	return func(e *Engine) error {
		if min < 0 || min > 1 {
			return fmt.Errorf("minimum dense similarity must be in [0, 1], got %v", min)
		}
		e.minDenseSimilarity = min
		return nil
	}
}

// WithScoreThreshold drops results whose score falls below min. An exact
// match always scores 1.0 and so survives any threshold in [0, 1].
// Default is 0, which keeps everything.
func WithScoreThreshold(min float64) Option {
	return func(e *Engine) error {
		if min < 0 || min > 1 {
			return fmt.Errorf("score threshold must be in [0, 1], got %v", min)
		}
		e.scoreThreshold = min
		return nil
	}
}

// WithEmbedTimeout bounds how long a single query embedding call may take
// before dense retrieval is skipped for that query. Zero means no bound
// beyond the caller's context.
func WithEmbedTimeout(timeout time.Duration) Option {
	return func(e *Engine) error {
		e.embedTimeout = timeout
		return nil
	}
}

// NewEngine builds the retrieval engine over the given corpus.
//
// Construction validates the corpus (non-empty, unique ids, non-empty
// verses), builds the sparse inverted index and assembles the dense index,
// embedding any record that does not already carry a stored vector. If
// embedding fails during construction the engine is still returned, degraded
// to exact and sparse retrieval only; a corpus whose stored vectors disagree
// on dimensionality is rejected outright.
func NewEngine(ctx context.Context, records []*core.Record, embedder ai.Embedder, opts ...Option) (*Engine, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if err := core.ValidateRecords(records); err != nil {
		return nil, err
	}

	e := &Engine{
		records:            records,
		byID:               make(map[core.ID]*core.Record, len(records)),
		embedder:           embedder,
		sparseWeight:       DefaultSparseWeight,
		denseWeight:        DefaultDenseWeight,
		bm25K1:             DefaultBM25K1,
		bm25B:              DefaultBM25B,
		minDenseSimilarity: DefaultMinDenseSimilarity,
		logger:             slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	// Only the weight ratio matters; normalize so fused scores land in [0, 1].
	total := e.sparseWeight + e.denseWeight
	e.sparseWeight /= total
	e.denseWeight /= total

	for _, record := range records {
		if record.Normalized == "" {
			record.Normalized = core.NormalizeText(record.Verse)
		}
		e.byID[record.ID] = record
	}

	e.sparse = newSparseIndex(records, e.bm25K1, e.bm25B)

	dense, err := buildDenseIndex(ctx, records, embedder)
	if err != nil {
		if errors.Is(err, ErrDimensionMismatch) {
			return nil, err
		}
		e.logger.Warn("dense index unavailable, retrieval degrades to exact and sparse only", "err", err)
	}
	e.dense = dense

	e.logger.Info("retrieval engine ready",
		"records", len(records),
		"sparse_weight", e.sparseWeight,
		"dense_weight", e.denseWeight,
		"dense_enabled", e.dense != nil)

	return e, nil
}

// Retrieve returns up to k matches for the query, best first.
//
// An empty or whitespace-only query yields an empty result list. Results are
// deterministic: ties at every stage break by ascending record ID, and the
// results for a smaller k are a prefix of the results for a larger k.
func (e *Engine) Retrieve(ctx context.Context, query string, k int) ([]core.Match, error) {
	return e.RetrieveWithMonitor(ctx, query, k, nil)
}

// RetrieveWithMonitor is Retrieve with stage-by-stage observation hooks.
// The monitor receives callbacks at each stage of the retrieval process.
func (e *Engine) RetrieveWithMonitor(ctx context.Context, query string, k int, monitor RetrievalMonitor) ([]core.Match, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if k < 1 {
		return nil, ErrInvalidK
	}

	monitor.Start(query)

	normalized := core.NormalizeText(query)
	if normalized == "" {
		e.logger.Debug("query normalized to empty text", "query", query)
		matches := []core.Match{}
		monitor.Finish(matches)
		return matches, nil
	}

	exact := e.exactMatch(normalized)
	if exact != nil {
		monitor.ExactHit(*exact)
	}

	// Sub-searches rank the whole corpus so that truncating to k below is
	// a prefix of one fixed total order, whatever k the caller asked for.
	pool := len(e.records)

	var (
		sparseHits []core.Candidate
		denseHits  []core.Candidate
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sparseHits = e.sparse.search(normalized, pool)
		return nil
	})
	g.Go(func() error {
		denseHits = e.denseSearch(gctx, query, pool, monitor)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	monitor.AfterSparseSearch(sparseHits)
	monitor.AfterDenseSearch(denseHits)

	matches := e.fuse(exact, sparseHits, denseHits, k)
	monitor.AfterFusion(matches)

	if len(matches) == 0 {
		if match := e.fallbackScan(normalized); match != nil {
			monitor.FallbackHit(*match)
			matches = append(matches, *match)
		}
	}

	// Matches are sorted by descending score, so the threshold cuts a tail.
	for len(matches) > 0 && matches[len(matches)-1].Score < e.scoreThreshold {
		matches = matches[:len(matches)-1]
	}

	if matches == nil {
		matches = []core.Match{}
	}
	monitor.Finish(matches)
	return matches, nil
}

// Records returns the corpus the engine was built over, in load order.
// Callers must treat the returned slice and records as read-only.
func (e *Engine) Records() []*core.Record {
	return e.records
}

// Degraded reports whether the engine is running without its dense index.
func (e *Engine) Degraded() bool {
	return e.dense == nil
}
