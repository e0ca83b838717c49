// Package table is the tabular presentation of the active dataset: a header row
// and a body of rows that can be rebuilt or reordered in place.
package table

import "sync"

// DefaultHeader is the header of a freshly created viewer table.
var DefaultHeader = []string{"id", "magnitude", "time"}

// Row is one rendered table row. It carries only display text.
type Row struct {
	Cells []string
}

// Cell returns the text of cell i, or "" when the row is shorter.
func (r Row) Cell(i int) string {
	if i < 0 || i >= len(r.Cells) {
		return ""
	}
	return r.Cells[i]
}

// Table is safe for concurrent readers; writers replace or reorder whole bodies.
type Table struct {
	mu     sync.RWMutex
	header []string
	rows   []Row
}

func New(header ...string) *Table {
	if len(header) == 0 {
		header = DefaultHeader
	}
	return &Table{header: append([]string(nil), header...)}
}

func (t *Table) Header() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]string(nil), t.header...)
}

// SetHeaderCell writes header cell i. It reports false when the cell is absent.
func (t *Table) SetHeaderCell(i int, text string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if i < 0 || i >= len(t.header) {
		return false
	}
	t.header[i] = text
	return true
}

// Rows returns a copy of the body rows in display order.
func (t *Table) Rows() []Row {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Row, len(t.rows))
	copy(out, t.rows)
	return out
}

func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

// Column returns the text of column i for every row.
func (t *Table) Column(i int) []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]string, len(t.rows))
	for n, r := range t.rows {
		out[n] = r.Cell(i)
	}
	return out
}

// ReplaceRows swaps in a new body in one step; the header is untouched.
func (t *Table) ReplaceRows(rows []Row) {
	t.mu.Lock()
	t.rows = rows
	t.mu.Unlock()
}

// Reorder lets fn permute the body under the write lock. fn must not add or
// remove rows.
func (t *Table) Reorder(fn func(rows []Row)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fn(t.rows)
}
