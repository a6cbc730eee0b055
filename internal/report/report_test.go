package report

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/dyluth/taskatlas/internal/config"
	"github.com/dyluth/taskatlas/internal/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const workerCSV = `Task,Occupation (O*NET-SOC Title),Automation Desire Rating
Draft email,Writer,4.0
Draft email,Writer,5.0
File taxes,Accountant,3.0
Worker only task,Writer,5.0
`

const expertCSV = `Task,Automation Capacity Rating
Draft email,3.0
Draft email,4.0
File taxes,4.0
Expert only task,5.0
`

// testConfig returns a validated config pointing output at a temp dir
func testConfig(t *testing.T) *config.AtlasConfig {
	t.Helper()
	cfg := &config.AtlasConfig{
		Version: "1.0",
		Datasets: config.DatasetsConfig{
			Repository: "SALT-NLP/WORKBank",
			Desire: config.SourceConfig{
				File:             "worker_data/domain_worker_desires.csv",
				TaskColumn:       "Task",
				OccupationColumn: "Occupation (O*NET-SOC Title)",
				RatingColumn:     "Automation Desire Rating",
			},
			Capability: config.SourceConfig{
				File:         "expert_ratings/expert_rated_technological_capability.csv",
				TaskColumn:   "Task",
				RatingColumn: "Automation Capacity Rating",
			},
		},
		Renderer: config.RendererConfig{
			Output: filepath.Join(t.TempDir(), "public", "index.html"),
		},
	}
	require.NoError(t, cfg.Validate())
	return cfg
}

func newDatasetServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/SALT-NLP/WORKBank/resolve/main/worker_data/domain_worker_desires.csv",
		func(w http.ResponseWriter, r *http.Request) { fmt.Fprint(w, workerCSV) })
	mux.HandleFunc("/SALT-NLP/WORKBank/resolve/main/expert_ratings/expert_rated_technological_capability.csv",
		func(w http.ResponseWriter, r *http.Request) { fmt.Fprint(w, expertCSV) })
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestRun_EndToEnd(t *testing.T) {
	cfg := testConfig(t)
	server := newDatasetServer(t)

	gen := New(cfg)
	gen.BaseURL = server.URL

	result, err := gen.Run(context.Background())
	require.NoError(t, err)

	// Four per-rater rows each, two tasks surviving the inner join
	assert.Equal(t, 4, result.DesireRows)
	assert.Equal(t, 4, result.CapabilityRows)
	assert.Equal(t, 2, result.Tasks)
	assert.Equal(t, 2, result.Occupations)

	// The artifact exists at the reported absolute path
	assert.True(t, filepath.IsAbs(result.OutputPath))
	data, err := os.ReadFile(result.OutputPath)
	require.NoError(t, err)
	html := string(data)
	assert.Contains(t, html, "Draft email")
	assert.NotContains(t, html, "Worker only task", "one-sided tasks are dropped by the join")
	assert.NotContains(t, html, "Expert only task")
}

func TestRun_SourceUnavailable(t *testing.T) {
	cfg := testConfig(t)
	server := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(server.Close)

	gen := New(cfg)
	gen.BaseURL = server.URL

	_, err := gen.Run(context.Background())
	assert.Error(t, err)
	assert.True(t, dataset.IsUnavailable(err))
}

func TestRun_SchemaMismatch(t *testing.T) {
	cfg := testConfig(t)
	server := newDatasetServer(t)

	cfg.Datasets.Desire.RatingColumn = "No Such Column"
	gen := New(cfg)
	gen.BaseURL = server.URL

	_, err := gen.Run(context.Background())
	assert.Error(t, err)
	assert.True(t, dataset.IsMissingColumn(err))
}

func TestRun_WithCache(t *testing.T) {
	mr := miniredis.NewMiniRedis()
	require.NoError(t, mr.Start())
	t.Cleanup(mr.Close)

	cfg := testConfig(t)
	cfg.Cache = &config.CacheConfig{Addr: mr.Addr()}
	require.NoError(t, cfg.Validate())
	server := newDatasetServer(t)

	gen := New(cfg)
	gen.BaseURL = server.URL

	// First run populates the cache
	_, err := gen.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, mr.Keys(), 2)

	// Second run succeeds entirely from cache, even with the source gone
	server.Close()
	result, err := gen.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Tasks)
}

func TestRun_UnreachableCacheFallsBack(t *testing.T) {
	mr := miniredis.NewMiniRedis()
	require.NoError(t, mr.Start())
	addr := mr.Addr()
	mr.Close() // nothing listening any more

	cfg := testConfig(t)
	cfg.Cache = &config.CacheConfig{Addr: addr}
	require.NoError(t, cfg.Validate())
	server := newDatasetServer(t)

	var warned bool
	gen := New(cfg)
	gen.BaseURL = server.URL
	gen.Warn = func(format string, a ...any) { warned = true }

	result, err := gen.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Tasks)
	assert.True(t, warned, "unreachable cache should be surfaced as a warning")
}

func TestPrefetch(t *testing.T) {
	t.Run("requires a cache section", func(t *testing.T) {
		cfg := testConfig(t)
		gen := New(cfg)
		_, err := gen.Prefetch(context.Background())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "no cache configured")
	})

	t.Run("stores both files", func(t *testing.T) {
		mr := miniredis.NewMiniRedis()
		require.NoError(t, mr.Start())
		t.Cleanup(mr.Close)

		cfg := testConfig(t)
		cfg.Cache = &config.CacheConfig{Addr: mr.Addr()}
		require.NoError(t, cfg.Validate())
		server := newDatasetServer(t)

		gen := New(cfg)
		gen.BaseURL = server.URL

		n, err := gen.Prefetch(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Len(t, mr.Keys(), 2)
	})

	t.Run("fails fast when the cache is unreachable", func(t *testing.T) {
		mr := miniredis.NewMiniRedis()
		require.NoError(t, mr.Start())
		addr := mr.Addr()
		mr.Close()

		cfg := testConfig(t)
		cfg.Cache = &config.CacheConfig{Addr: addr}
		require.NoError(t, cfg.Validate())

		gen := New(cfg)
		_, err := gen.Prefetch(context.Background())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not reachable")
	})
}
