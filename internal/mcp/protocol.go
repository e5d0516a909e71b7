// Package mcp implements the line-delimited JSON protocol the agent speaks
// with external tool hosts. Each request line produces exactly one response
// line; request ids are echoed back verbatim.
package mcp

import (
	"time"

	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/domain"
)

// Request types.
const (
	TypeQuery   = "query"
	TypeSchema  = "schema"
	TypeHistory = "history"
	TypeStats   = "stats"
)

// Request is one inbound protocol message.
type Request struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Query    string `json:"query,omitempty"`
	Context  string `json:"context,omitempty"`
	Language string `json:"language,omitempty"`

	// Limit bounds history responses. Ignored for other request types.
	Limit int `json:"limit,omitempty"`

	// FailedOnly restricts a history response to failed requests.
	FailedOnly bool `json:"failed_only,omitempty"`

	// NoFallback disables the generation adapter for this query even when
	// the server has it enabled.
	NoFallback bool `json:"no_fallback,omitempty"`
}

// Response is one outbound protocol message.
type Response struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Success   bool      `json:"success"`
	Data      any       `json:"data,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// QueryData is the payload of a query_response.
type QueryData struct {
	Intent          *domain.Intent        `json:"intent,omitempty"`
	SQLPlan         *domain.QueryPlan     `json:"sql_plan,omitempty"`
	ResultSummary   *domain.ResultSummary `json:"result_summary,omitempty"`
	Rows            [][]any               `json:"rows,omitempty"`
	ChartSpec       *domain.ChartSpec     `json:"chart_spec,omitempty"`
	NoVisualization bool                  `json:"no_visualization,omitempty"`
	FailedStage     string                `json:"failed_stage,omitempty"`
	Timings         []domain.StageTiming  `json:"timings,omitempty"`
}

// HistoryData is the payload of a history_response.
type HistoryData struct {
	Queries    []*domain.PipelineResult `json:"queries"`
	TotalCount int                      `json:"total_count"`
}
