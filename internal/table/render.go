package table

import (
	"github.com/mr1hm/go-quake-viewer/internal/dataset"
	"github.com/mr1hm/go-quake-viewer/internal/fields"
	"github.com/mr1hm/go-quake-viewer/internal/models"
)

// Renderer projects a feature collection into a Table. The second column
// follows the registry's active dataset.
type Renderer struct {
	table      *Table
	registry   *dataset.Registry
	formatTime func(any) string
}

// NewRenderer binds a renderer to a table. A nil table makes every call a no-op.
func NewRenderer(t *Table, registry *dataset.Registry) *Renderer {
	return &Renderer{
		table:      t,
		registry:   registry,
		formatTime: fields.FormatTime,
	}
}

// Render clears the body and appends one row per feature in collection order.
// It returns the number of rows rendered.
func (r *Renderer) Render(fc models.FeatureCollection) int {
	if r.table == nil {
		return 0
	}

	secondary := r.registry.SecondaryResolver()
	rows := make([]Row, 0, len(fc.Features))
	for _, f := range fc.Features {
		rec := fields.Resolve(f, secondary)
		rows = append(rows, Row{Cells: []string{
			rec.ID,
			fields.Text(rec.Secondary),
			r.formatTime(rec.RawTime),
		}})
	}

	r.table.ReplaceRows(rows)
	return len(rows)
}

// SetColumnLabel writes the registry's current label into the second header cell.
func (r *Renderer) SetColumnLabel() {
	if r.table == nil {
		return
	}
	r.table.SetHeaderCell(1, r.registry.ColumnLabel())
}
