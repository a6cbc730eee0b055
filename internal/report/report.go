// Package report wires the pipeline stages together: load both source
// tables, aggregate, join and score, build the figure, write the HTML
// artifact. One forward pass, no retries or partial-completion states.
package report

import (
	"context"
	"fmt"

	"github.com/dyluth/taskatlas/internal/cache"
	"github.com/dyluth/taskatlas/internal/config"
	"github.com/dyluth/taskatlas/internal/dataset"
	"github.com/dyluth/taskatlas/internal/figure"
	"github.com/dyluth/taskatlas/internal/pipeline"
	"github.com/redis/go-redis/v9"
)

// Generator runs the report pipeline for one configuration.
type Generator struct {
	cfg *config.AtlasConfig

	// BaseURL overrides the dataset resolver root (tests use httptest);
	// empty means the Hugging Face default.
	BaseURL string

	// Warn receives non-fatal notices (cache unavailable, cache write
	// failures). May be nil.
	Warn func(format string, a ...any)
}

// Result summarizes a completed run for the CLI to report.
type Result struct {
	OutputPath     string // Absolute path of the written HTML file
	DesireRows     int    // Per-rater rows loaded from the worker table
	CapabilityRows int    // Per-rater rows loaded from the expert table
	Tasks          int    // Tasks surviving the inner join
	Occupations    int    // Distinct occupation titles in the joined table
}

// New creates a generator for a validated configuration.
func New(cfg *config.AtlasConfig) *Generator {
	return &Generator{cfg: cfg}
}

// Run executes the full pipeline and writes the report.
// Any stage failure aborts the run and is returned to the caller.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	store, closeStore := g.openCache(ctx)
	defer closeStore()

	loader := g.newLoader(store)

	desireRows, err := loader.LoadSource(ctx, g.cfg.Datasets.Desire)
	if err != nil {
		return nil, fmt.Errorf("loading worker desire table: %w", err)
	}
	capabilityRows, err := loader.LoadSource(ctx, g.cfg.Datasets.Capability)
	if err != nil {
		return nil, fmt.Errorf("loading expert capability table: %w", err)
	}

	desire := pipeline.AggregateByTask(desireRows)
	capability := pipeline.AggregateByTask(capabilityRows)
	records := pipeline.JoinAndScore(desire, capability)

	fig := figure.Build(records, figure.Options{
		Title: g.cfg.Renderer.Title,
		TopN:  g.cfg.Renderer.TopN,
	})

	outputPath, err := figure.WriteHTML(fig, g.cfg.Renderer.Output)
	if err != nil {
		return nil, err
	}

	occupations := make(map[string]struct{})
	for _, r := range records {
		occupations[r.Occupation] = struct{}{}
	}

	return &Result{
		OutputPath:     outputPath,
		DesireRows:     len(desireRows),
		CapabilityRows: len(capabilityRows),
		Tasks:          len(records),
		Occupations:    len(occupations),
	}, nil
}

// Prefetch downloads both source files into the cache without rendering.
// Returns the number of files stored. Requires a cache section in the
// configuration.
func (g *Generator) Prefetch(ctx context.Context) (int, error) {
	if g.cfg.Cache == nil {
		return 0, fmt.Errorf("no cache configured: add a cache section to taskatlas.yml")
	}

	client, err := g.newCacheClient()
	if err != nil {
		return 0, err
	}
	defer client.Close()

	if err := client.Ping(ctx); err != nil {
		return 0, fmt.Errorf("cache not reachable at %s: %w", g.cfg.Cache.Addr, err)
	}

	loader := g.newLoader(client)
	files := []string{g.cfg.Datasets.Desire.File, g.cfg.Datasets.Capability.File}
	for _, file := range files {
		if _, err := loader.FetchRaw(ctx, file); err != nil {
			return 0, err
		}
	}

	return len(files), nil
}

// openCache returns the configured cache as a dataset.Store, or nil when
// no cache is configured or the server is unreachable. Cache problems
// never fail a run; they just force direct fetches.
func (g *Generator) openCache(ctx context.Context) (dataset.Store, func()) {
	if g.cfg.Cache == nil {
		return nil, func() {}
	}

	client, err := g.newCacheClient()
	if err != nil {
		g.warn("cache disabled: %v\n", err)
		return nil, func() {}
	}

	if err := client.Ping(ctx); err != nil {
		g.warn("cache not reachable at %s, fetching directly\n", g.cfg.Cache.Addr)
		client.Close()
		return nil, func() {}
	}

	return client, func() { client.Close() }
}

func (g *Generator) newCacheClient() (*cache.Client, error) {
	return cache.NewClient(&redis.Options{
		Addr:     g.cfg.Cache.Addr,
		Password: g.cfg.Cache.Password,
		DB:       g.cfg.Cache.DB,
	}, g.cfg.Cache.CacheTTL())
}

func (g *Generator) newLoader(store dataset.Store) *dataset.Loader {
	loader := dataset.NewLoader(g.cfg.Datasets.Repository, store)
	if g.BaseURL != "" {
		loader.SetBaseURL(g.BaseURL)
	}
	loader.Warn = g.Warn
	return loader
}

func (g *Generator) warn(format string, a ...any) {
	if g.Warn != nil {
		g.Warn(format, a...)
	}
}
