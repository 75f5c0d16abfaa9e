package bref

// Table is the normalized result of a batting query. Every row has
// exactly len(Columns) fields, positionally aligned to Columns. Rows from
// earlier seasons precede rows from later seasons.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Empty reports whether the table carries no rows.
func (t *Table) Empty() bool {
	return t == nil || len(t.Rows) == 0
}

// ColumnIndex returns the position of the named column, or -1 if the
// table has no such column.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns all values of the named column in row order. Returns nil
// if the column does not exist.
func (t *Table) Column(name string) []string {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil
	}
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[idx]
	}
	return values
}
