package overlay

import (
	"fmt"
	"sort"
	"strconv"
)

// Table is the result table: named columns of equal length, one row per
// input feature. Columns keep their insertion order through export, so
// the fixed leading columns come first and area columns follow in
// discovery order.
type Table struct {
	rows  int
	names []string
	cols  map[string][]any
}

// NewTable creates an empty table expecting the given row count. Every
// column added later must have exactly that many values.
func NewTable(rows int) *Table {
	return &Table{rows: rows, cols: map[string][]any{}}
}

// Rows returns the row count.
func (t *Table) Rows() int {
	return t.rows
}

// ColumnNames returns the column names in insertion order. The slice is
// shared; callers must not mutate it.
func (t *Table) ColumnNames() []string {
	return t.names
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.cols[name]
	return ok
}

// Column returns the named column's values, or nil if absent.
func (t *Table) Column(name string) []any {
	return t.cols[name]
}

// AddColumn appends a column. Adding a duplicate name or a column whose
// length differs from the table's row count is an error: every column
// must cover every feature exactly once.
func (t *Table) AddColumn(name string, values []any) error {
	if _, exists := t.cols[name]; exists {
		return fmt.Errorf("duplicate column %q", name)
	}
	if len(values) != t.rows {
		return fmt.Errorf("column %q has %d values, want %d", name, len(values), t.rows)
	}
	t.names = append(t.names, name)
	t.cols[name] = values
	return nil
}

// SortByName freezes the table: rows are reordered ascending by the
// "Name" column and all columns follow the same permutation. When every
// name parses as a number the order is numeric, otherwise lexical; the
// sort is stable either way.
func (t *Table) SortByName() error {
	nameCol, ok := t.cols["Name"]
	if !ok {
		return fmt.Errorf("table has no Name column")
	}

	names := make([]string, t.rows)
	for i, v := range nameCol {
		names[i] = fmt.Sprint(v)
	}

	numeric := make([]float64, t.rows)
	allNumeric := t.rows > 0
	for i, s := range names {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			allNumeric = false
			break
		}
		numeric[i] = f
	}

	perm := make([]int, t.rows)
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(a, b int) bool {
		if allNumeric {
			return numeric[perm[a]] < numeric[perm[b]]
		}
		return names[perm[a]] < names[perm[b]]
	})

	for _, name := range t.names {
		old := t.cols[name]
		reordered := make([]any, t.rows)
		for i, from := range perm {
			reordered[i] = old[from]
		}
		t.cols[name] = reordered
	}
	return nil
}
