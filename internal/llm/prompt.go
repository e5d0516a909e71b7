package llm

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rodrigolcschulz/ai-agents-mcp-bmw/internal/domain"
)

// BuildSystemPrompt renders the schema summary into the system prompt for
// SQL generation. Only metadata is sent, never row data.
func BuildSystemPrompt(schema *domain.SchemaSummary) string {
	var b strings.Builder

	b.WriteString(`You are a PostgreSQL query generator for a BMW sales analytics database.
Translate the user's question (Portuguese or English) into exactly ONE read-only SQL statement.

`)
	b.WriteString("DATABASE SCHEMA:\n\n")

	if schema != nil {
		tables := make([]string, 0, len(schema.Tables))
		for name := range schema.Tables {
			tables = append(tables, name)
		}
		sort.Strings(tables)

		b.WriteString("TABLES:\n")
		for _, name := range tables {
			fmt.Fprintf(&b, "%s:\n", name)
			for _, col := range schema.Tables[name] {
				nullable := "NOT NULL"
				if col.Nullable {
					nullable = "NULL"
				}
				fmt.Fprintf(&b, "  - %s: %s %s\n", col.Name, col.DataType, nullable)
			}
		}

		if len(schema.Views) > 0 {
			b.WriteString("\nVIEWS (analytics schema, preferred for aggregate questions):\n")
			for _, view := range schema.Views {
				fmt.Fprintf(&b, "  - %s\n", view)
			}
		}
	}

	b.WriteString(`
RULES:
1. Output ONLY the SQL statement, no explanations and no markdown
2. SELECT statements only, never modify data
3. Use the exact table and column names from the schema
4. Prefer analytics views when one answers the question directly
5. Always ORDER BY for ranking questions and use LIMIT for top-N questions
6. "top X" / "melhores X" means ORDER BY ... DESC LIMIT X
7. Revenue is price_usd * sales_volume when no view provides it`)

	return b.String()
}
