package tui

import (
	"encoding/json"
	"fmt"
	"sort"

	table "github.com/charmbracelet/bubbles/table"
)

// refreshAttrs rebuilds the table columns/rows from the current collection
func (m *Model) refreshAttrs() {
	cols, rows := m.buildAttributes()
	if len(rows) == 0 {
		m.showAttrs = false
		m.status = "no features to tabulate"
		return
	}
	tcols := make([]table.Column, 0, len(cols))
	maxColW := 24
	for j, c := range cols {
		w := max(len(c)+2, 6)
		for _, r := range rows {
			w = max(w, len(r[j])+1)
		}
		tcols = append(tcols, table.Column{Title: c, Width: min(w, maxColW)})
	}
	trows := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		trows = append(trows, table.Row(r))
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
	if m.selected >= 0 && m.selected < len(trows) {
		m.tbl.SetCursor(m.selected)
	}
}

// buildAttributes returns one row per feature: index, geometry type,
// vertex count, then the union of property keys in sorted order.
func (m *Model) buildAttributes() ([]string, [][]string) {
	if m.fc == nil {
		return nil, nil
	}
	seen := map[string]bool{}
	var keys []string
	for _, f := range m.fc.Features {
		for k := range f.Properties {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	cols := append([]string{"#", "geometry", "vertices"}, keys...)

	rows := make([][]string, 0, len(m.fc.Features))
	for i, f := range m.fc.Features {
		row := make([]string, 0, len(cols))
		row = append(row, fmt.Sprintf("%d", i+1), geometryType(f.Geometry), fmt.Sprintf("%d", vertexCount(f.Geometry)))
		for _, k := range keys {
			row = append(row, formatValue(f.Properties[k]))
		}
		rows = append(rows, row)
	}
	return cols, rows
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return fmt.Sprintf("%g", t)
	case bool:
		return fmt.Sprintf("%t", t)
	default:
		bs, _ := json.Marshal(t)
		return string(bs)
	}
}
