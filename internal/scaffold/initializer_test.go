package scaffold

import (
	"os"
	"testing"

	"github.com/dyluth/taskatlas/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp runs the test in a fresh temporary working directory
func chdirTemp(t *testing.T) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { os.Chdir(orig) })
}

func TestInitialize_CreatesLoadableConfig(t *testing.T) {
	chdirTemp(t)

	err := Initialize(false)
	require.NoError(t, err)

	// The scaffolded file must pass the real config loader
	cfg, err := config.Load(ConfigFile)
	require.NoError(t, err)
	assert.Equal(t, "SALT-NLP/WORKBank", cfg.Datasets.Repository)
	assert.Equal(t, "public/index.html", cfg.Renderer.Output)
	assert.Equal(t, 20, cfg.Renderer.TopN)
	assert.Nil(t, cfg.Cache, "cache is opt-in and must default to off")
}

func TestCheckExisting(t *testing.T) {
	chdirTemp(t)

	t.Run("clean directory passes", func(t *testing.T) {
		assert.NoError(t, CheckExisting())
	})

	t.Run("existing config is rejected", func(t *testing.T) {
		require.NoError(t, Initialize(false))
		err := CheckExisting()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already initialized")
	})
}

func TestInitialize_Force(t *testing.T) {
	chdirTemp(t)

	require.NoError(t, os.WriteFile(ConfigFile, []byte("version: \"0.9\"\n"), 0644))

	err := Initialize(true)
	require.NoError(t, err)

	// The stale file was replaced with the default config
	cfg, err := config.Load(ConfigFile)
	require.NoError(t, err)
	assert.Equal(t, "1.0", cfg.Version)
}
