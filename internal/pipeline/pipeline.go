// Package pipeline implements the aggregate → join → score stages that
// turn per-rater rows into the ranked task records the renderer consumes.
//
// Every stage takes immutable inputs and returns fresh values; there is
// no shared state between runs, so re-running on unchanged input yields
// identical output.
package pipeline

import (
	"sort"

	"github.com/dyluth/taskatlas/internal/dataset"
	"gonum.org/v1/gonum/stat"
)

// TaskAggregate is one row of an aggregated source table: the mean
// rating over all raters of a task, plus (for the desire table) the
// first-encountered occupation title.
type TaskAggregate struct {
	Task       string
	Occupation string
	Mean       float64
}

// TaskRecord is one row of the joined, scored table.
// Priority is the product of the two means: with in-domain ratings
// (1-5) it lands in [1,25].
type TaskRecord struct {
	Task           string
	Occupation     string
	DesireMean     float64
	CapabilityMean float64
	Priority       float64
}

// AggregateByTask groups per-rater rows by exact task string and
// computes the arithmetic mean of the rating values. The occupation
// title of the first row seen for a task wins; later rows with a
// different title for the same task are not an error.
//
// Output order is first-seen task order, which keeps the downstream
// sort reproducible. Tasks with no input rows never appear.
func AggregateByTask(ratings []dataset.Rating) []TaskAggregate {
	values := make(map[string][]float64)
	occupations := make(map[string]string)
	var order []string

	for _, r := range ratings {
		if _, seen := values[r.Task]; !seen {
			order = append(order, r.Task)
			occupations[r.Task] = r.Occupation
		}
		values[r.Task] = append(values[r.Task], r.Value)
	}

	aggregates := make([]TaskAggregate, 0, len(order))
	for _, task := range order {
		aggregates = append(aggregates, TaskAggregate{
			Task:       task,
			Occupation: occupations[task],
			Mean:       stat.Mean(values[task], nil),
		})
	}

	return aggregates
}

// JoinAndScore inner-joins the two aggregate tables on task identifier,
// computes Priority = DesireMean * CapabilityMean for every surviving
// row, and returns the rows sorted descending by priority.
//
// Tasks present in only one table are silently dropped — strict inner
// join semantics. The sort is stable: ties keep the desire table's
// first-seen order, so identical input always produces identical output.
func JoinAndScore(desire, capability []TaskAggregate) []TaskRecord {
	capabilityByTask := make(map[string]TaskAggregate, len(capability))
	for _, agg := range capability {
		capabilityByTask[agg.Task] = agg
	}

	var records []TaskRecord
	for _, d := range desire {
		c, ok := capabilityByTask[d.Task]
		if !ok {
			continue
		}
		records = append(records, TaskRecord{
			Task:           d.Task,
			Occupation:     d.Occupation,
			DesireMean:     d.Mean,
			CapabilityMean: c.Mean,
			Priority:       d.Mean * c.Mean,
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Priority > records[j].Priority
	})

	return records
}
