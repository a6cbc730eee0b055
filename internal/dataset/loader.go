package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dyluth/taskatlas/internal/config"
)

// DefaultBaseURL is the Hugging Face dataset resolver root.
// Files resolve as {base}/{repository}/resolve/main/{file}.
const DefaultBaseURL = "https://huggingface.co/datasets"

// Store is an optional byte cache consulted before the network.
// Get errors (including misses) cause a fall back to a direct fetch;
// Set failures are reported through the loader's Warn hook but never
// fail the load. Implemented by cache.Client.
type Store interface {
	Get(ctx context.Context, repository, file string) ([]byte, error)
	Set(ctx context.Context, repository, file string, data []byte) error
}

// Loader fetches dataset files for a single repository.
// A single attempt per file, no retry policy: this is a one-shot
// report generator and a failed fetch aborts the run.
type Loader struct {
	repository string
	baseURL    string
	store      Store
	httpClient *http.Client

	// Warn, when non-nil, receives non-fatal notices (cache write failures).
	Warn func(format string, a ...any)
}

// NewLoader creates a loader for the given dataset repository.
// store may be nil, in which case every load goes to the network.
func NewLoader(repository string, store Store) *Loader {
	return &Loader{
		repository: repository,
		baseURL:    DefaultBaseURL,
		store:      store,
		httpClient: http.DefaultClient,
	}
}

// SetBaseURL overrides the dataset resolver root (tests point this at httptest).
func (l *Loader) SetBaseURL(base string) {
	l.baseURL = base
}

// LoadSource fetches one source file and decodes it into Rating rows
// using the configured column bindings.
func (l *Loader) LoadSource(ctx context.Context, src config.SourceConfig) ([]Rating, error) {
	data, err := l.FetchRaw(ctx, src.File)
	if err != nil {
		return nil, err
	}

	ratings, err := decodeCSV(data, src)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", src.File, err)
	}

	return ratings, nil
}

// FetchRaw returns the raw bytes of one dataset file, preferring the
// cache when one is wired. A fresh download is stored back to the cache
// best-effort.
func (l *Loader) FetchRaw(ctx context.Context, file string) ([]byte, error) {
	if l.store != nil {
		if data, err := l.store.Get(ctx, l.repository, file); err == nil {
			return data, nil
		}
		// Miss or cache failure: fall through to the network.
	}

	data, err := l.download(ctx, file)
	if err != nil {
		return nil, err
	}

	if l.store != nil {
		if err := l.store.Set(ctx, l.repository, file, data); err != nil {
			l.warn("failed to cache %s: %v\n", file, err)
		}
	}

	return data, nil
}

// download performs the single-attempt GET against the resolver URL.
func (l *Loader) download(ctx context.Context, file string) ([]byte, error) {
	url := fmt.Sprintf("%s/%s/resolve/main/%s", l.baseURL, l.repository, file)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", ErrUnavailable, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: GET %s returned %s", ErrUnavailable, url, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrUnavailable, url, err)
	}

	return data, nil
}

func (l *Loader) warn(format string, a ...any) {
	if l.Warn != nil {
		l.Warn(format, a...)
	}
}

// IsUnavailable returns true if the error indicates the remote source
// could not be fetched (transport failure, non-200, truncated body).
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// IsMissingColumn returns true if the error indicates a configured
// column was absent from a CSV header.
func IsMissingColumn(err error) bool {
	return errors.Is(err, ErrMissingColumn)
}
