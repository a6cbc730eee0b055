package figure

import (
	"fmt"
	"strconv"

	"github.com/dyluth/taskatlas/internal/pipeline"
)

// Options controls figure construction
type Options struct {
	Title string // Figure title
	TopN  int    // Rows shown in the ranked table
}

// maxLabelRunes is the display-text budget for occupation titles in the
// filter drop-down. Longer titles are truncated with an ellipsis in the
// label only; filtering still keys the full title.
const maxLabelRunes = 40

// ShowAllLabel is the first drop-down entry, restoring every occupation
const ShowAllLabel = "All occupations"

// alphabetPalette is a large qualitative palette, needed because the
// dataset spans ~100 occupations
var alphabetPalette = []string{
	"#AA0DFE", "#3283FE", "#85660D", "#782AB6", "#565656", "#1C8356",
	"#16FF32", "#F7E1A0", "#E2E2E2", "#1CBE4F", "#C4451C", "#DEA0FD",
	"#FE00FA", "#325A9B", "#FEAF16", "#F8A19F", "#90AD1C", "#F6222E",
	"#1CFFCE", "#2ED9FF", "#B10DA1", "#C075A6", "#FC1CBF", "#B00068",
	"#FBE426", "#FA0087",
}

// Build turns the sorted, joined task records into the complete figure:
// one scatter trace per occupation, the ranked table trace, the
// occupation drop-down, and the fixed reference geometry.
//
// records must already be sorted descending by priority (pipeline
// output order); the table and per-occupation slices rely on it.
func Build(records []pipeline.TaskRecord, opts Options) *Figure {
	occupations, groups := groupByOccupation(records)

	// One scatter trace per occupation so each can be toggled independently
	traces := make([]Trace, 0, len(occupations)+1)
	for _, occupation := range occupations {
		rows := groups[occupation]
		trace := Trace{
			Type:       "scatter",
			Mode:       "markers",
			Name:       occupation,
			X:          make([]float64, 0, len(rows)),
			Y:          make([]float64, 0, len(rows)),
			Text:       make([]string, 0, len(rows)),
			CustomData: make([]float64, 0, len(rows)),
			HoverTemplate: "<b>%{text}</b><br>" +
				"Capability: %{x:.2f}<br>" +
				"Desire: %{y:.2f}<br>" +
				"Priority: %{customdata:.2f}" +
				"<extra>%{fullData.name}</extra>",
			Opacity: 0.8,
			Visible: true,
		}
		for _, row := range rows {
			trace.X = append(trace.X, row.CapabilityMean)
			trace.Y = append(trace.Y, row.DesireMean)
			trace.Text = append(trace.Text, row.Task)
			trace.CustomData = append(trace.CustomData, row.Priority)
		}
		traces = append(traces, trace)
	}

	// Ranked table sits below the scatter and stays visible under every filter
	traces = append(traces, Trace{
		Type:    "table",
		Visible: true,
		Header: &TableHeader{
			Values: []string{"Rank", "Task", "Occupation", "Priority"},
			Align:  []string{"right", "left", "left", "right"},
			Fill:   &TableFill{Color: "#f2f2f2"},
		},
		Cells: &TableCells{
			Values: tableColumns(records, opts.TopN),
			Align:  []string{"right", "left", "left", "right"},
		},
		Domain: &Domain{X: []float64{0, 1}, Y: []float64{0, 0.26}},
	})

	return &Figure{
		Data: traces,
		Layout: Layout{
			Title: &Title{Text: opts.Title, Font: &Font{Size: 24}},
			XAxis: &Axis{
				Title:     &Title{Text: "AI Expert-rated Capability"},
				Range:     []float64{0.8, 5.2},
				GridColor: "rgba(0,0,0,0.05)",
			},
			YAxis: &Axis{
				Title:     &Title{Text: "Worker-rated Desire"},
				Range:     []float64{0.8, 5.2},
				Domain:    []float64{0.34, 1},
				GridColor: "rgba(0,0,0,0.05)",
			},
			Width:  1100,
			Height: 1000,
			Legend: &Legend{
				Orientation: "v",
				X:           1.02,
				Y:           1,
				XAnchor:     "left",
				YAnchor:     "top",
				Font:        &Font{Size: 10},
			},
			Margin:      &Margin{L: 50, R: 250, T: 100, B: 50},
			Shapes:      referenceShapes(),
			Annotations: quadrantAnnotations(),
			UpdateMenus: []UpdateMenu{occupationMenu(occupations, groups, records, opts.TopN)},
			Colorway:    alphabetPalette,
			PlotBGColor: "#ffffff",
		},
	}
}

// groupByOccupation partitions records by occupation title, preserving
// the order occupations first appear in the sorted record list.
// Within a group, rows keep their global (priority-descending) order.
func groupByOccupation(records []pipeline.TaskRecord) ([]string, map[string][]pipeline.TaskRecord) {
	groups := make(map[string][]pipeline.TaskRecord)
	var occupations []string

	for _, r := range records {
		if _, seen := groups[r.Occupation]; !seen {
			occupations = append(occupations, r.Occupation)
		}
		groups[r.Occupation] = append(groups[r.Occupation], r)
	}

	return occupations, groups
}

// occupationMenu builds the filter drop-down: a show-all entry followed
// by one entry per occupation. Each button carries a full visibility
// vector over all traces (table included, always visible) and the
// replacement table cells for its selection.
//
// Plotly distributes a top-level array in an update object element-wise
// across traces, so the cell values are wrapped once more: the outer
// slice holds per-trace elements, and its single element (the 2-D
// column set) wraps around onto every trace. Scatter traces have no
// cells attribute and ignore it; the table trace receives the full set.
func occupationMenu(occupations []string, groups map[string][]pipeline.TaskRecord, all []pipeline.TaskRecord, topN int) UpdateMenu {
	traceCount := len(occupations) + 1 // +1 for the table trace
	buttons := make([]Button, 0, len(occupations)+1)

	// Show-all entry: every trace visible, table restored to the global top-N
	showAll := make([]bool, traceCount)
	for i := range showAll {
		showAll[i] = true
	}
	buttons = append(buttons, Button{
		Label:  ShowAllLabel,
		Method: "update",
		Args: []any{map[string]any{
			"visible":      showAll,
			"cells.values": []any{tableColumns(all, topN)},
		}},
	})

	for i, occupation := range occupations {
		visible := make([]bool, traceCount)
		visible[i] = true
		visible[traceCount-1] = true // table stays visible

		buttons = append(buttons, Button{
			Label:  TruncateLabel(occupation),
			Method: "update",
			Args: []any{map[string]any{
				"visible":      visible,
				"cells.values": []any{tableColumns(groups[occupation], topN)},
			}},
		})
	}

	return UpdateMenu{
		Type:       "dropdown",
		Direction:  "down",
		X:          0,
		Y:          1.12,
		XAnchor:    "left",
		YAnchor:    "top",
		ShowActive: true,
		Buttons:    buttons,
	}
}

// tableColumns builds the column-major cell values for the ranked table:
// the top-N rows of the given (already priority-sorted) records.
func tableColumns(records []pipeline.TaskRecord, topN int) [][]string {
	if topN < len(records) {
		records = records[:topN]
	}

	ranks := make([]string, 0, len(records))
	tasks := make([]string, 0, len(records))
	occupations := make([]string, 0, len(records))
	priorities := make([]string, 0, len(records))
	for i, r := range records {
		ranks = append(ranks, strconv.Itoa(i+1))
		tasks = append(tasks, r.Task)
		occupations = append(occupations, r.Occupation)
		priorities = append(priorities, fmt.Sprintf("%.2f", r.Priority))
	}

	return [][]string{ranks, tasks, occupations, priorities}
}

// referenceShapes returns the fixed guide geometry: the dashed
// desire-equals-capability diagonal plus dotted crosshairs at the
// midpoint of each axis. Purely decorative.
func referenceShapes() []Shape {
	return []Shape{
		{
			Type: "line", X0: 1, Y0: 1, X1: 5, Y1: 5,
			Line:  &Line{Dash: "dash", Color: "rgba(0,0,0,0.3)", Width: 1.5},
			Layer: "below",
		},
		{
			Type: "line", X0: 3, Y0: 0.8, X1: 3, Y1: 5.2,
			Line:  &Line{Dash: "dot", Color: "rgba(0,0,0,0.15)", Width: 1},
			Layer: "below",
		},
		{
			Type: "line", X0: 0.8, Y0: 3, X1: 5.2, Y1: 3,
			Line:  &Line{Dash: "dot", Color: "rgba(0,0,0,0.15)", Width: 1},
			Layer: "below",
		},
	}
}

func quadrantAnnotations() []Annotation {
	return []Annotation{
		{X: 4.5, Y: 4.5, Text: "High Desire / High Capability", ShowArrow: false, Font: &Font{Color: "gray"}},
		{X: 1.5, Y: 1.5, Text: "Low Desire / Low Capability", ShowArrow: false, Font: &Font{Color: "gray"}},
	}
}

// TruncateLabel shortens an occupation title to the drop-down display
// budget, appending an ellipsis. Rune-aware so multi-byte titles don't
// get split mid-character.
func TruncateLabel(title string) string {
	runes := []rune(title)
	if len(runes) <= maxLabelRunes {
		return title
	}
	return string(runes[:maxLabelRunes]) + "…"
}
