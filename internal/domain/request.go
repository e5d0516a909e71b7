package domain

import (
	"time"

	"github.com/google/uuid"
)

// QueryRequest is a single user question. It is immutable and owned by the
// orchestrator for the lifetime of the request.
type QueryRequest struct {
	ID        string
	RawText   string
	Context   string
	Language  Language
	CreatedAt time.Time
}

// NewQueryRequest creates a QueryRequest with a fresh id and timestamp.
func NewQueryRequest(text, context string, lang Language) QueryRequest {
	return QueryRequest{
		ID:        uuid.NewString(),
		RawText:   text,
		Context:   context,
		Language:  lang,
		CreatedAt: time.Now().UTC(),
	}
}

// Intent is a classified, parameterized interpretation of a query.
type Intent struct {
	PatternID  string            `json:"pattern_id"`
	Confidence float64           `json:"confidence"`
	Parameters map[string]string `json:"parameters,omitempty"`
	Source     IntentSource      `json:"source"`

	// RequiredSatisfied counts the required slots that were successfully
	// extracted. Used as the first tie-break between equal scores.
	RequiredSatisfied int `json:"required_satisfied"`

	// CatalogOrder is the pattern's position in the library, the final
	// stable tie-break.
	CatalogOrder int `json:"-"`
}

// Param returns the named extracted parameter, or "" if absent.
func (i *Intent) Param(name string) string {
	if i.Parameters == nil {
		return ""
	}
	return i.Parameters[name]
}

// QueryPlan is a validated, executable query derived from an Intent.
type QueryPlan struct {
	SQL      string            `json:"sql"`
	Bindings map[string]string `json:"bindings,omitempty"`
	Risk     RiskClass         `json:"risk"`
	Source   IntentSource      `json:"source"`

	// PatternID names the template the plan was rendered from. Empty for
	// generated plans.
	PatternID string `json:"pattern_id,omitempty"`
}
