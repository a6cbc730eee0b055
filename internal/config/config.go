package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where commands look for configuration when no --config flag is given.
const DefaultPath = "taskatlas.yml"

// Default renderer values applied by Validate when fields are omitted
const (
	DefaultTitle    = "WORKBank: Automation Landscape"
	DefaultOutput   = "public/index.html"
	DefaultTopN     = 20
	DefaultCacheTTL = 24 * time.Hour
)

// AtlasConfig represents the top-level taskatlas.yml configuration
type AtlasConfig struct {
	Version  string         `yaml:"version"`
	Datasets DatasetsConfig `yaml:"datasets"`
	Renderer RendererConfig `yaml:"renderer"`
	Cache    *CacheConfig   `yaml:"cache,omitempty"` // Optional: omit to fetch directly on every run
}

// DatasetsConfig identifies the two remote source tables and their column bindings
type DatasetsConfig struct {
	Repository string       `yaml:"repository"` // Hugging Face dataset repository, e.g. "SALT-NLP/WORKBank"
	Desire     SourceConfig `yaml:"desire"`
	Capability SourceConfig `yaml:"capability"`
}

// SourceConfig binds one CSV file to the well-known columns the pipeline reads
type SourceConfig struct {
	File             string `yaml:"file"`                        // Path within the dataset repository
	TaskColumn       string `yaml:"task_column"`                 // Task identifier column header
	OccupationColumn string `yaml:"occupation_column,omitempty"` // O*NET occupation title column (desire table only)
	RatingColumn     string `yaml:"rating_column"`               // Numeric 1-5 rating column header
}

// RendererConfig specifies report output behavior
type RendererConfig struct {
	Title  string `yaml:"title,omitempty"`  // Figure title (default applied if empty)
	Output string `yaml:"output,omitempty"` // Output HTML path (default: public/index.html)
	TopN   int    `yaml:"top_n,omitempty"`  // Rows in the ranked table (default: 20)
}

// CacheConfig specifies the optional Redis dataset cache
type CacheConfig struct {
	Addr     string `yaml:"addr"` // Redis address, e.g. "localhost:6379"
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db,omitempty"`
	TTL      string `yaml:"ttl,omitempty"` // Go duration, e.g. "24h" (default: 24h)
}

// Validate performs strict validation on the configuration and applies
// defaults for optional renderer fields.
func (c *AtlasConfig) Validate() error {
	// Required: version
	if c.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected: 1.0)", c.Version)
	}

	// Required: dataset repository
	if c.Datasets.Repository == "" {
		return fmt.Errorf("datasets.repository is required")
	}

	if err := c.Datasets.Desire.validate("desire", true); err != nil {
		return err
	}
	if err := c.Datasets.Capability.validate("capability", false); err != nil {
		return err
	}

	// Apply renderer defaults
	if c.Renderer.Title == "" {
		c.Renderer.Title = DefaultTitle
	}
	if c.Renderer.Output == "" {
		c.Renderer.Output = DefaultOutput
	}
	if c.Renderer.TopN == 0 {
		c.Renderer.TopN = DefaultTopN
	}
	if c.Renderer.TopN < 1 {
		return fmt.Errorf("renderer.top_n must be >= 1, got %d", c.Renderer.TopN)
	}

	// Validate cache section if present
	if c.Cache != nil {
		if c.Cache.Addr == "" {
			return fmt.Errorf("cache.addr is required when the cache section is present")
		}
		if c.Cache.TTL != "" {
			if _, err := time.ParseDuration(c.Cache.TTL); err != nil {
				return fmt.Errorf("cache.ttl is not a valid duration: %s", c.Cache.TTL)
			}
		}
	}

	return nil
}

// validate checks a single dataset source binding.
// needsOccupation is true for the worker-desire table, which must also
// carry the occupation title column.
func (s *SourceConfig) validate(name string, needsOccupation bool) error {
	if s.File == "" {
		return fmt.Errorf("datasets.%s.file is required", name)
	}
	if s.TaskColumn == "" {
		return fmt.Errorf("datasets.%s.task_column is required", name)
	}
	if s.RatingColumn == "" {
		return fmt.Errorf("datasets.%s.rating_column is required", name)
	}
	if needsOccupation && s.OccupationColumn == "" {
		return fmt.Errorf("datasets.%s.occupation_column is required", name)
	}
	return nil
}

// CacheTTL returns the configured cache TTL, or the default when unset.
// Only meaningful after Validate has accepted the config.
func (c *CacheConfig) CacheTTL() time.Duration {
	if c.TTL == "" {
		return DefaultCacheTTL
	}
	d, _ := time.ParseDuration(c.TTL)
	return d
}

// Load reads and validates taskatlas.yml from the specified path
func Load(path string) (*AtlasConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config AtlasConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}
