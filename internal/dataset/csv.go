package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dyluth/taskatlas/internal/config"
)

// decodeCSV parses raw CSV bytes into Rating rows.
// The first record is the header; configured column names are matched
// exactly (no case or whitespace normalization of task identifiers —
// exact string semantics are a pipeline invariant).
func decodeCSV(data []byte, src config.SourceConfig) ([]Rating, error) {
	reader := csv.NewReader(bytes.NewReader(data))

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: file is empty", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	taskIdx, err := columnIndex(header, src.TaskColumn)
	if err != nil {
		return nil, err
	}
	ratingIdx, err := columnIndex(header, src.RatingColumn)
	if err != nil {
		return nil, err
	}

	// Occupation column only bound for the desire table
	occupationIdx := -1
	if src.OccupationColumn != "" {
		occupationIdx, err = columnIndex(header, src.OccupationColumn)
		if err != nil {
			return nil, err
		}
	}

	var ratings []Rating
	line := 1 // header was line 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}
		line++

		value, err := strconv.ParseFloat(strings.TrimSpace(record[ratingIdx]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid rating value %q in column %q", line, record[ratingIdx], src.RatingColumn)
		}

		rating := Rating{
			Task:  record[taskIdx],
			Value: value,
		}
		if occupationIdx >= 0 {
			rating.Occupation = record[occupationIdx]
		}
		ratings = append(ratings, rating)
	}

	return ratings, nil
}

// columnIndex locates a header column by exact name
func columnIndex(header []string, name string) (int, error) {
	for i, col := range header {
		if col == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q (header has: %s)", ErrMissingColumn, name, strings.Join(header, ", "))
}
