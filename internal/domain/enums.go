package domain

// SemanticType classifies a result column for visualization purposes.
type SemanticType string

const (
	TypeNumeric     SemanticType = "numeric"
	TypeCategorical SemanticType = "categorical"
	TypeTemporal    SemanticType = "temporal"
	TypeText        SemanticType = "text"
)

// ChartFamily identifies a family of chart renderings.
type ChartFamily string

const (
	ChartBar       ChartFamily = "bar"
	ChartLine      ChartFamily = "line"
	ChartScatter   ChartFamily = "scatter"
	ChartPie       ChartFamily = "pie"
	ChartHeatmap   ChartFamily = "heatmap"
	ChartHistogram ChartFamily = "histogram"
	ChartArea      ChartFamily = "area"
	ChartBox       ChartFamily = "box"
)

// ValidChartFamilies is the canonical set of chart families a user may
// request by name.
var ValidChartFamilies = map[ChartFamily]bool{
	ChartBar: true, ChartLine: true, ChartScatter: true, ChartPie: true,
	ChartHeatmap: true, ChartHistogram: true, ChartArea: true, ChartBox: true,
}

// IntentSource records how a query plan was produced.
type IntentSource string

const (
	SourceTemplate  IntentSource = "template"
	SourceGenerated IntentSource = "generated"
)

// RiskClass estimates the blast radius of a query plan. Only read-only
// plans are ever executed.
type RiskClass string

const (
	RiskReadOnly RiskClass = "read_only"
)

// Stage names a step of the request pipeline.
type Stage string

const (
	StageReceived     Stage = "received"
	StageClassifying  Stage = "classifying"
	StageSynthesizing Stage = "synthesizing"
	StageExecuting    Stage = "executing"
	StageVisualizing  Stage = "visualizing"
	StageCompleted    Stage = "completed"
)

// Language is the hint accepted on a QueryRequest. The classifier treats a
// hint as a preference, not a constraint: trigger terms of both supported
// languages are always matched.
type Language string

const (
	LangPortuguese Language = "pt"
	LangEnglish    Language = "en"
	LangUnknown    Language = ""
)
