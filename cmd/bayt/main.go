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

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/baytlab/bayt"
	"github.com/baytlab/bayt/ai"
	"github.com/baytlab/bayt/api"
	"github.com/baytlab/bayt/config"
	"github.com/baytlab/bayt/corpus"
	"github.com/baytlab/bayt/ingestion"
	"github.com/baytlab/bayt/search"
)

func main() {
	app := &cli.App{
		Name:  "bayt",
		Usage: "Hybrid retrieval over annotated classical Arabic poetry",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "index",
				Usage:  "Load a verse corpus file, embed it, and persist it",
				Action: indexCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "chunks",
						Aliases:  []string{"c"},
						Usage:    "Path to the corpus JSON file",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of records to embed in each batch",
						Value: 32,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of concurrent embedding workers",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Query the indexed corpus from the command line",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
					&cli.IntFlag{
						Name:    "k",
						Aliases: []string{"n"},
						Usage:   "Number of results to return",
						Value:   5,
					},
				},
			},
			{
				Name:   "serve",
				Usage:  "Run the HTTP API server",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to YAML configuration file",
						Value:   "config/bayt.yaml",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func indexCommand(c *cli.Context) error {
	ctx := context.Background()

	records, err := corpus.LoadFile(c.String("chunks"))
	if err != nil {
		return fmt.Errorf("failed to load corpus: %w", err)
	}

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	db, err := bayt.NewDatabase(c.String("db"), bayt.WithAIConfig(aiConfig))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	// Re-indexing replaces the whole corpus.
	if err := db.CorpusRepository().DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear existing corpus: %w", err)
	}

	opts := []ingestion.Option{ingestion.WithBatchSize(c.Int("batch-size"))}
	if poolSize := c.Int("pool-size"); poolSize > 0 {
		opts = append(opts, ingestion.WithPoolSize(poolSize))
	}

	start := time.Now()
	if err := db.Ingest(ctx, records, opts...); err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Indexed %d verses in %s\n", len(records), time.Since(start).Round(time.Millisecond))
	return nil
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("query is required")
	}

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	db, err := bayt.NewDatabase(c.String("db"), bayt.WithAIConfig(aiConfig))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.LoadEngine(ctx); err != nil {
		return fmt.Errorf("failed to load retrieval engine: %w", err)
	}

	matches, err := db.Retrieve(ctx, query, c.Int("k"))
	if err != nil {
		return fmt.Errorf("retrieval failed: %w", err)
	}
	if len(matches) == 0 {
		fmt.Println("No matching verses found.")
		return nil
	}

	for i, m := range matches {
		fmt.Printf("%d. [%.3f %s] %s\n", i+1, m.Score, m.Source, m.Record.Verse)
		fmt.Printf("   %s، %s، البيت %d\n", m.Record.Poet, m.Record.Poem, m.Record.VerseNumber)
		if m.Record.Annotation != "" {
			fmt.Printf("   %s\n", m.Record.Annotation)
		}
	}
	return nil
}

func serveCommand(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	if err := applyLogLevel(cfg.Logging.Level); err != nil {
		return err
	}

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(cfg.Embedding.Host),
		ai.WithEmbeddingModel(cfg.Embedding.Model),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	db, err := bayt.NewDatabase(
		cfg.Database.Path,
		bayt.WithAIConfig(aiConfig),
		bayt.WithSearchOptions(
			search.WithWeights(cfg.Retrieval.SparseWeight, cfg.Retrieval.DenseWeight),
			search.WithBM25Parameters(cfg.Retrieval.BM25K1, cfg.Retrieval.BM25B),
			search.WithMinDenseSimilarity(cfg.Retrieval.MinDenseSimilarity),
			search.WithScoreThreshold(cfg.Retrieval.ScoreThreshold),
			search.WithEmbedTimeout(time.Duration(cfg.Embedding.TimeoutSec)*time.Second),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := db.LoadEngine(ctx); err != nil {
		return fmt.Errorf("failed to load retrieval engine: %w", err)
	}

	server := api.NewServer(db, &cfg, slog.Default())

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.HTTP.ShutdownSec)*time.Second,
	)
	defer cancel()
	return server.Stop(shutdownCtx)
}

func setupLogger(c *cli.Context) error {
	return applyLogLevel(c.String("log-level"))
}

func applyLogLevel(levelStr string) error {
	var level slog.Level
	switch strings.ToLower(levelStr) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
