// Package figure builds the interactive report: a Plotly figure with
// one scatter trace per occupation, a drop-down control that toggles
// occupation visibility, a companion ranked table that updates in
// lockstep with the selected occupation, and an HTML writer that embeds
// the figure JSON alongside a CDN-loaded plotly.js.
//
// All interactivity is declarative: every control button carries a
// precomputed visibility vector and replacement table cells, so the
// emitted document contains no custom runtime logic.
package figure

// Figure is the serializable chart: trace data plus layout.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace covers the two trace kinds this report emits: occupation
// scatter traces and the single ranked-table trace. Unused fields are
// omitted from the JSON.
type Trace struct {
	Type          string    `json:"type"`
	Name          string    `json:"name,omitempty"`
	Mode          string    `json:"mode,omitempty"`
	X             []float64 `json:"x,omitempty"`
	Y             []float64 `json:"y,omitempty"`
	Text          []string  `json:"text,omitempty"`
	CustomData    []float64 `json:"customdata,omitempty"`
	HoverTemplate string    `json:"hovertemplate,omitempty"`
	Opacity       float64   `json:"opacity,omitempty"`
	Visible       bool      `json:"visible"`

	// Table trace fields
	Header *TableHeader `json:"header,omitempty"`
	Cells  *TableCells  `json:"cells,omitempty"`
	Domain *Domain      `json:"domain,omitempty"`
}

// TableHeader holds the ranked table's column titles
type TableHeader struct {
	Values []string   `json:"values"`
	Align  []string   `json:"align,omitempty"`
	Fill   *TableFill `json:"fill,omitempty"`
}

// TableCells holds the ranked table's column-major cell values
type TableCells struct {
	Values [][]string `json:"values"`
	Align  []string   `json:"align,omitempty"`
}

// TableFill styles table header cells
type TableFill struct {
	Color string `json:"color,omitempty"`
}

// Domain positions a trace within the figure canvas (0-1 fractions)
type Domain struct {
	X []float64 `json:"x,omitempty"`
	Y []float64 `json:"y,omitempty"`
}

// Layout is the figure-level configuration
type Layout struct {
	Title       *Title       `json:"title,omitempty"`
	XAxis       *Axis        `json:"xaxis,omitempty"`
	YAxis       *Axis        `json:"yaxis,omitempty"`
	Width       int          `json:"width,omitempty"`
	Height      int          `json:"height,omitempty"`
	Legend      *Legend      `json:"legend,omitempty"`
	Margin      *Margin      `json:"margin,omitempty"`
	Shapes      []Shape      `json:"shapes,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
	UpdateMenus []UpdateMenu `json:"updatemenus,omitempty"`
	Colorway    []string     `json:"colorway,omitempty"`
	PlotBGColor string       `json:"plot_bgcolor,omitempty"`
}

// Title is the figure title
type Title struct {
	Text string `json:"text"`
	Font *Font  `json:"font,omitempty"`
}

// Axis configures one plot axis, including its vertical/horizontal
// share of the canvas (Domain) so the table can sit below the scatter.
type Axis struct {
	Title     *Title    `json:"title,omitempty"`
	Range     []float64 `json:"range,omitempty"`
	Domain    []float64 `json:"domain,omitempty"`
	GridColor string    `json:"gridcolor,omitempty"`
	ZeroLine  bool      `json:"zeroline"`
}

// Legend positions the occupation legend
type Legend struct {
	Orientation string  `json:"orientation,omitempty"`
	X           float64 `json:"x,omitempty"`
	Y           float64 `json:"y,omitempty"`
	XAnchor     string  `json:"xanchor,omitempty"`
	YAnchor     string  `json:"yanchor,omitempty"`
	Font        *Font   `json:"font,omitempty"`
}

// Margin is the plot margin in pixels
type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

// Font styles a text element
type Font struct {
	Size  int    `json:"size,omitempty"`
	Color string `json:"color,omitempty"`
}

// Shape is fixed reference geometry (guide lines); no data dependency
type Shape struct {
	Type  string  `json:"type"`
	X0    float64 `json:"x0"`
	Y0    float64 `json:"y0"`
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	Line  *Line   `json:"line,omitempty"`
	Layer string  `json:"layer,omitempty"`
}

// Line styles a shape's stroke
type Line struct {
	Dash  string  `json:"dash,omitempty"`
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
}

// Annotation is a fixed text label on the plot
type Annotation struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Text      string  `json:"text"`
	ShowArrow bool    `json:"showarrow"`
	Font      *Font   `json:"font,omitempty"`
}

// UpdateMenu is the occupation filter drop-down
type UpdateMenu struct {
	Type       string   `json:"type,omitempty"`
	Direction  string   `json:"direction,omitempty"`
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	XAnchor    string   `json:"xanchor,omitempty"`
	YAnchor    string   `json:"yanchor,omitempty"`
	ShowActive bool     `json:"showactive"`
	Buttons    []Button `json:"buttons"`
}

// Button is one occupation filter entry: a display label plus the
// precomputed restyle arguments (visibility vector and replacement
// table cells) applied when it is activated.
type Button struct {
	Label  string `json:"label"`
	Method string `json:"method"`
	Args   []any  `json:"args"`
}
