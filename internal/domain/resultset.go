package domain

// Column describes one column of a result set.
type Column struct {
	Name string       `json:"name"`
	Type SemanticType `json:"type"`
}

// ResultSet is the materialized output of executing a QueryPlan.
// It is read-only once created.
type ResultSet struct {
	Columns []Column
	Rows    [][]any
}

// RowCount returns the number of rows.
func (rs *ResultSet) RowCount() int { return len(rs.Rows) }

// ColumnsOfType returns the indices of columns with the given semantic type.
func (rs *ResultSet) ColumnsOfType(t SemanticType) []int {
	var idx []int
	for i, c := range rs.Columns {
		if c.Type == t {
			idx = append(idx, i)
		}
	}
	return idx
}

// SchemaSummary describes the tables and views available in the warehouse,
// used both for whitelist validation and as generation context.
type SchemaSummary struct {
	Tables map[string][]ColumnDef `json:"tables"`
	Views  []string               `json:"views"`
}

// ColumnDef is one column of a warehouse table.
type ColumnDef struct {
	Name     string `json:"name"`
	DataType string `json:"data_type"`
	Nullable bool   `json:"nullable"`
}

// AllowedRelations returns every relation name a query may reference.
func (s *SchemaSummary) AllowedRelations() []string {
	names := make([]string, 0, len(s.Tables)+len(s.Views))
	for t := range s.Tables {
		names = append(names, t)
	}
	names = append(names, s.Views...)
	return names
}
