package synth

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/domain"
)

// forbiddenKeywords are statement forms that must never reach the data
// store. Matched on word boundaries, case-insensitive.
var forbiddenKeywords = []string{
	"insert", "update", "delete", "drop", "alter", "create", "truncate",
	"grant", "revoke", "copy", "execute", "call", "merge", "vacuum",
	"comment", "into", "do",
}

var (
	relationRe  = regexp.MustCompile(`(?i)\b(?:from|join)\s+([a-zA-Z_][a-zA-Z0-9_.]*)`)
	cteRe       = regexp.MustCompile(`(?i)\b(?:with|,)\s*([a-zA-Z_][a-zA-Z0-9_]*)\s+as\s*\(`)
	limitRe     = regexp.MustCompile(`(?i)\blimit\s+\d+`)
	forbiddenRe = regexp.MustCompile(`(?i)\b(` + strings.Join(forbiddenKeywords, "|") + `)\b`)
)

// Validator enforces the whitelist policy on every query plan, whether it
// came from a template or from the generation adapter. It is not a SQL
// parser: it accepts only the narrow read-only shapes this system emits.
type Validator struct {
	allowed  map[string]bool
	rowLimit int
}

// NewValidator builds a validator from the known schema. rowLimit is the
// server-side ceiling forced onto statements without a LIMIT clause.
func NewValidator(schema *domain.SchemaSummary, rowLimit int) *Validator {
	allowed := make(map[string]bool)
	if schema != nil {
		for _, rel := range schema.AllowedRelations() {
			allowed[strings.ToLower(rel)] = true
		}
	}
	return &Validator{allowed: allowed, rowLimit: rowLimit}
}

// Validate checks sql against the whitelist policy and returns the
// statement with the row ceiling applied. A non-nil error always wraps
// domain.ErrValidationFailed.
func (v *Validator) Validate(sql string) (string, error) {
	stmt := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(sql), ";"))
	if stmt == "" {
		return "", fmt.Errorf("%w: empty statement", domain.ErrValidationFailed)
	}

	if strings.ContainsRune(stmt, ';') {
		return "", fmt.Errorf("%w: multiple statements", domain.ErrValidationFailed)
	}

	upper := strings.ToUpper(stmt)
	if !strings.HasPrefix(upper, "SELECT") && !strings.HasPrefix(upper, "WITH") {
		return "", fmt.Errorf("%w: only SELECT statements are allowed", domain.ErrValidationFailed)
	}

	if m := forbiddenRe.FindString(stmt); m != "" {
		return "", fmt.Errorf("%w: forbidden keyword %q", domain.ErrValidationFailed, strings.ToUpper(m))
	}

	ctes := make(map[string]bool)
	for _, match := range cteRe.FindAllStringSubmatch(stmt, -1) {
		ctes[strings.ToLower(match[1])] = true
	}

	for _, match := range relationRe.FindAllStringSubmatch(stmt, -1) {
		rel := strings.ToLower(match[1])
		if !v.allowed[rel] && !ctes[rel] {
			return "", fmt.Errorf("%w: relation %q is not on the allow-list", domain.ErrValidationFailed, match[1])
		}
	}

	if v.rowLimit > 0 && !limitRe.MatchString(stmt) {
		stmt = fmt.Sprintf("%s LIMIT %d", stmt, v.rowLimit)
	}

	return stmt, nil
}
