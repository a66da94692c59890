package domain

// Table is a parsed tabular source: an ordered column list plus string-typed
// rows keyed by column name. It is a matching artifact produced by the loader
// and consumed by the pipeline; it is never persisted.
//
// An absent value (missing cell, SQL NULL) is stored as the empty string.
// Downstream numeric coercion maps it to zero before imputation.
type Table struct {
	Columns []string
	Rows    []map[string]string
}

// Get returns the value of column col in row i, or "" when the row does not
// carry that column.
func (t *Table) Get(i int, col string) string {
	if i < 0 || i >= len(t.Rows) {
		return ""
	}
	return t.Rows[i][col]
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(col string) bool {
	for _, c := range t.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// AddColumn appends a column filled with the given default value for every
// existing row. Adding an existing column is a no-op.
func (t *Table) AddColumn(col, defaultValue string) {
	if t.HasColumn(col) {
		return
	}
	t.Columns = append(t.Columns, col)
	for _, row := range t.Rows {
		row[col] = defaultValue
	}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}
