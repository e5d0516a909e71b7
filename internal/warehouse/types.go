package warehouse

import (
	"strings"

	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/domain"
)

// Column names that denote a point on a timeline even when the driver
// reports them as plain integers or text.
var temporalNames = map[string]bool{
	"year":       true,
	"month":      true,
	"year_month": true,
	"date":       true,
	"quarter":    true,
	"week":       true,
}

// inferSemanticType maps a database column to the coarse semantic type the
// chart selector reasons about. The column name wins over the driver type:
// a year stored as an integer is still a timeline axis, not a measure.
func inferSemanticType(name, dbType string) domain.SemanticType {
	if temporalNames[strings.ToLower(name)] {
		return domain.TypeTemporal
	}

	switch strings.ToUpper(dbType) {
	case "DATE", "TIME", "TIMETZ", "TIMESTAMP", "TIMESTAMPTZ", "INTERVAL":
		return domain.TypeTemporal
	case "INT2", "INT4", "INT8", "SMALLINT", "INTEGER", "BIGINT",
		"FLOAT4", "FLOAT8", "REAL", "DOUBLE PRECISION", "NUMERIC", "DECIMAL", "MONEY":
		return domain.TypeNumeric
	case "BOOL", "BOOLEAN":
		return domain.TypeCategorical
	case "VARCHAR", "CHAR", "BPCHAR", "TEXT", "NAME", "UUID":
		return domain.TypeCategorical
	default:
		return domain.TypeText
	}
}
