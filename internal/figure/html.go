package figure

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ErrFilesystem indicates the output directory or file could not be written.
var ErrFilesystem = errors.New("filesystem error")

// IsFilesystem returns true if the error indicates an output directory
// or file could not be written.
func IsFilesystem(err error) bool {
	return errors.Is(err, ErrFilesystem)
}

// PlotlyCDN is the externally-loaded chart runtime. Referencing it from
// the CDN instead of embedding keeps the artifact small.
const PlotlyCDN = "https://cdn.plot.ly/plotly-2.35.2.min.js"

var pageTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8"/>
    <title>{{.Title}}</title>
    <script src="{{.CDN}}"></script>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
    </style>
</head>
<body>
    <div id="{{.DivID}}"></div>
    <script>
        Plotly.newPlot("{{.DivID}}", {{.Data}}, {{.Layout}});
    </script>
</body>
</html>
`))

// WriteHTML serializes the figure into a self-contained HTML document at
// path, creating the parent directory if absent and overwriting any
// existing file. Returns the absolute path of the written file.
func WriteHTML(fig *Figure, path string) (string, error) {
	doc, err := renderHTML(fig)
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("%w: creating output directory %s: %v", ErrFilesystem, dir, err)
	}

	if err := os.WriteFile(path, doc, 0644); err != nil {
		return "", fmt.Errorf("%w: writing %s: %v", ErrFilesystem, path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		// The file is written; fall back to the relative path
		return path, nil
	}
	return abs, nil
}

// renderHTML produces the document bytes without touching the filesystem
func renderHTML(fig *Figure) ([]byte, error) {
	data, err := json.Marshal(fig.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal figure data: %w", err)
	}
	layout, err := json.Marshal(fig.Layout)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal figure layout: %w", err)
	}

	title := ""
	if fig.Layout.Title != nil {
		title = fig.Layout.Title.Text
	}

	var buf bytes.Buffer
	err = pageTemplate.Execute(&buf, map[string]any{
		"Title":  title,
		"CDN":    PlotlyCDN,
		"DivID":  uuid.New().String(),
		"Data":   template.JS(data),
		"Layout": template.JS(layout),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render report template: %w", err)
	}

	return buf.Bytes(), nil
}
