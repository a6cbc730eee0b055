package commands

import (
	"github.com/dyluth/taskatlas/internal/config"
	"github.com/dyluth/taskatlas/internal/printer"
)

// loadConfig loads and validates taskatlas.yml, translating failures
// into actionable CLI errors.
func loadConfig(path string) (*config.AtlasConfig, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, printer.Error(
			"Configuration error",
			err.Error(),
			[]string{"Run 'taskatlas init' to create a default taskatlas.yml"})
	}
	return cfg, nil
}
