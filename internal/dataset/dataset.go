// Package dataset loads the two remote WORKBank tables that feed the
// report pipeline.
//
// Each table is fetched from a Hugging Face dataset repository as raw CSV
// and decoded into per-rater Rating rows using the column bindings from
// taskatlas.yml. An optional Store (see internal/cache) is consulted
// before the network so repeated runs can skip the download.
package dataset

import "errors"

// Sentinel errors for the loader's failure taxonomy.
// Callers check them with errors.Is.
var (
	// ErrUnavailable indicates the remote source could not be reached or
	// the named file is absent (transport failure or non-200 response).
	ErrUnavailable = errors.New("dataset unavailable")

	// ErrMissingColumn indicates the CSV header does not contain a column
	// the configuration expects.
	ErrMissingColumn = errors.New("expected column not found")
)

// Rating is a single per-rater row from one of the source tables.
// Occupation is empty for the expert-capability table, which carries no
// occupation title column.
type Rating struct {
	Task       string
	Occupation string
	Value      float64
}
