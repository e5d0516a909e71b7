package domain

// Encoding maps a chart axis or channel to a result column.
type Encoding struct {
	Column string       `json:"column"`
	Type   SemanticType `json:"type"`
}

// ChartSpec is a declarative description of how to render a result set.
// Drawing is left to the presentation layer.
type ChartSpec struct {
	Family ChartFamily `json:"family"`
	Title  string      `json:"title"`
	X      *Encoding   `json:"x,omitempty"`
	Y      *Encoding   `json:"y,omitempty"`
	Series *Encoding   `json:"series,omitempty"`

	// SortDescending applies to the Y encoding for ranked bar charts.
	SortDescending bool `json:"sort_descending,omitempty"`

	// TopN is set when the selector bucketed a long tail into "Others".
	TopN int `json:"top_n,omitempty"`

	// Warning records a degraded choice, e.g. a requested family that was
	// structurally incompatible with the result shape.
	Warning string `json:"warning,omitempty"`
}
