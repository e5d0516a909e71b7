package llm

import "strings"

// ExtractSQL isolates a single SQL statement from raw model output. Models
// wrap statements in markdown fences or prepend prose despite instructions;
// this strips both. Returns false when no statement can be found.
func ExtractSQL(raw string) (string, bool) {
	cleaned := stripCodeFences(raw)

	// Find the first line that begins a statement and take everything up
	// to the first terminating semicolon (or end of text).
	lines := strings.Split(cleaned, "\n")
	start := -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		upper := strings.ToUpper(trimmed)
		if strings.HasPrefix(upper, "SELECT") || strings.HasPrefix(upper, "WITH") {
			start = i
			break
		}
	}
	if start == -1 {
		return "", false
	}

	stmt := strings.Join(lines[start:], "\n")
	if idx := strings.IndexByte(stmt, ';'); idx != -1 {
		stmt = stmt[:idx]
	}
	stmt = strings.TrimSpace(stmt)
	if stmt == "" {
		return "", false
	}
	return stmt, true
}

// stripCodeFences removes markdown code fences (```sql ... ``` or ``` ... ```).
func stripCodeFences(s string) string {
	lines := strings.Split(s, "\n")
	var result []string
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		result = append(result, line)
	}
	return strings.Join(result, "\n")
}
