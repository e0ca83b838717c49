package models

// ViewSnapshot is a point-in-time copy of what the viewer shows.
type ViewSnapshot struct {
	State       string            `json:"state"`
	Dataset     string            `json:"dataset"`
	ColumnLabel string            `json:"column_label"`
	Header      []string          `json:"header"`
	Rows        [][]string        `json:"rows"`
	Visibility  map[string]string `json:"visibility"`
}
