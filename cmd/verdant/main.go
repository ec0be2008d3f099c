// Copyright 2026 Poiesic Systems
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
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/verdant"
	"github.com/poiesic/verdant/ai"
	"github.com/poiesic/verdant/core"
	"github.com/poiesic/verdant/search"
)

func main() {
	app := &cli.App{
		Name:  "verdant",
		Usage: "Sustainability intelligence search engine",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Ingest documents from a JSON file",
				Action:    ingestCommand,
				ArgsUsage: "<documents.json>",
				Flags: append(engineFlags(),
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of concurrent ingestion workers",
						Value: 8,
					},
				),
			},
			{
				Name:      "search",
				Usage:     "Search the ingested corpus",
				Action:    searchCommand,
				ArgsUsage: "<query>",
				Flags: append(engineFlags(),
					&cli.StringFlag{
						Name:    "mode",
						Aliases: []string{"m"},
						Usage:   "Search mode (hybrid, keyword, vector, realtime)",
						Value:   "hybrid",
					},
					&cli.IntFlag{
						Name:    "max-results",
						Aliases: []string{"n"},
						Usage:   "Maximum number of results",
						Value:   search.DefaultMaxResults,
					},
					&cli.BoolFlag{
						Name:  "no-cache",
						Usage: "Bypass the query cache",
					},
					&cli.StringFlag{
						Name:  "category",
						Usage: "Filter by document or metric category",
					},
					&cli.StringFlag{
						Name:  "source",
						Usage: "Filter by document source",
					},
					&cli.StringFlag{
						Name:  "company",
						Usage: "Filter by company name",
					},
					&cli.TimestampFlag{
						Name:   "from",
						Usage:  "Filter by effective date, inclusive lower bound (YYYY-MM-DD)",
						Layout: "2006-01-02",
					},
					&cli.TimestampFlag{
						Name:   "to",
						Usage:  "Filter by effective date, inclusive upper bound (YYYY-MM-DD)",
						Layout: "2006-01-02",
					},
				),
			},
			{
				Name:   "stats",
				Usage:  "Show corpus and search counters",
				Action: statsCommand,
				Flags:  engineFlags(),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// engineFlags are shared by every command that opens the engine.
func engineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "index-path",
			Usage: "Path to the vector index JSON file",
		},
		&cli.StringFlag{
			Name:  "dictionary",
			Usage: "Path to a YAML entity dictionary merged over the built-ins",
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL (uses the hash-seeded embedder when unset)",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
		},
		&cli.StringFlag{
			Name:    "redis-addr",
			Usage:   "Redis address for a shared query cache",
			EnvVars: []string{"VERDANT_REDIS_ADDR"},
		},
		&cli.DurationFlag{
			Name:  "cache-ttl",
			Usage: "Query cache entry lifetime",
			Value: 10 * time.Minute,
		},
	}
}

func openEngine(c *cli.Context) (*verdant.Engine, error) {
	opts := []verdant.EngineOption{
		verdant.WithCacheTTL(c.Duration("cache-ttl")),
	}
	if path := c.String("index-path"); path != "" {
		opts = append(opts, verdant.WithVectorIndexPath(path))
	}
	if path := c.String("dictionary"); path != "" {
		opts = append(opts, verdant.WithDictionaryFile(path))
	}
	if host := c.String("embedding-host"); host != "" {
		opts = append(opts, verdant.WithAIConfig(ai.NewConfig(
			ai.WithEmbeddingHost(host),
			ai.WithEmbeddingModel(c.String("embedding-model")),
		)))
	}
	if addr := c.String("redis-addr"); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		opts = append(opts, verdant.WithRedisCache(client))
	}
	if size := c.Int("pool-size"); size > 0 {
		opts = append(opts, verdant.WithPoolSize(size))
	}
	return verdant.NewEngine(c.String("db"), opts...)
}

func ingestCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one documents file, got %d arguments", c.NArg())
	}

	data, err := os.ReadFile(c.Args().First())
	if err != nil {
		return fmt.Errorf("reading documents file: %w", err)
	}
	var docs []*core.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return fmt.Errorf("parsing documents file: %w", err)
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	report, err := engine.Ingest(context.Background(), docs...)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Ingested: %d\n", report.Ingested)
	if report.Failed > 0 {
		fmt.Fprintf(os.Stderr, "Failed: %d\n", report.Failed)
		for _, ingestErr := range report.Errors {
			fmt.Fprintf(os.Stderr, "  %v\n", ingestErr)
		}
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one query, got %d arguments", c.NArg())
	}

	mode, err := core.ParseSearchMode(c.String("mode"))
	if err != nil {
		return err
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	response, err := engine.Search(context.Background(), search.Request{
		Query:      c.Args().First(),
		Mode:       mode,
		Filters:    filtersFromFlags(c),
		MaxResults: c.Int("max-results"),
		SkipCache:  c.Bool("no-cache"),
	})
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func filtersFromFlags(c *cli.Context) *search.Filters {
	filters := &search.Filters{
		Category: c.String("category"),
		Source:   c.String("source"),
		Company:  c.String("company"),
	}
	from := c.Timestamp("from")
	to := c.Timestamp("to")
	if from != nil || to != nil {
		dateRange := &search.DateRange{}
		if from != nil {
			dateRange.Start = *from
		}
		if to != nil {
			dateRange.End = *to
		}
		filters.DateRange = dateRange
	}
	if filters.IsZero() {
		return nil
	}
	return filters
}

func statsCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	stats, err := engine.Stats(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Documents: %d\n", stats.Documents)
	fmt.Printf("Indexed: %d\n", stats.Indexed)
	fmt.Printf("Searches: %d\n", stats.Searches)
	if !stats.LastSearch.IsZero() {
		fmt.Printf("Last search: %s\n", stats.LastSearch.Format(time.RFC3339))
	}
	return nil
}

func setup(c *cli.Context) error {
	// .env is optional; flags and real env vars win
	_ = godotenv.Load()

	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
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
