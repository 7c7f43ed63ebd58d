package table

import (
	"slices"

	"github.com/erazemk/assetdesk/internal/model"
)

// DefaultWidth is the width of a column whose schema gives none.
const DefaultWidth = 150

// Column is one entry of a table schema.
type Column struct {
	AccessorKey string `json:"accessorKey"`
	Header      string `json:"header"`
	Width       int    `json:"width,omitempty"`
}

// DefaultColumns derives the presentation config of a schema: every column
// visible, in schema order.
func DefaultColumns(columns []Column) []model.ColumnConfig {
	configs := make([]model.ColumnConfig, len(columns))
	for i, c := range columns {
		width := c.Width
		if width == 0 {
			width = DefaultWidth
		}
		configs[i] = model.ColumnConfig{
			ID:        c.AccessorKey,
			Title:     c.Header,
			IsVisible: true,
			Width:     width,
			Order:     i + 1,
		}
	}
	return configs
}

// Reconcile keeps a stored config only while it describes the same set of
// columns as the schema. Otherwise the defaults apply.
func Reconcile(stored []model.ColumnConfig, columns []Column) []model.ColumnConfig {
	if len(stored) == 0 || !sameKeys(stored, columns) {
		return DefaultColumns(columns)
	}
	return stored
}

// Complete fills configs up to the full schema. Every schema column missing
// from configs is appended hidden, after the listed ones. Listed entries
// without a title take the schema header.
func Complete(configs []model.ColumnConfig, columns []Column) []model.ColumnConfig {
	out := slices.Clone(configs)
	last := 0
	for i := range out {
		last = max(last, out[i].Order)
		if out[i].Title == "" {
			if j := slices.IndexFunc(columns, func(c Column) bool { return c.AccessorKey == out[i].ID }); j >= 0 {
				out[i].Title = columns[j].Header
			}
		}
	}
	for _, def := range DefaultColumns(columns) {
		if slices.ContainsFunc(out, func(c model.ColumnConfig) bool { return c.ID == def.ID }) {
			continue
		}
		last++
		def.IsVisible = false
		def.Order = last
		out = append(out, def)
	}
	return out
}

func sameKeys(stored []model.ColumnConfig, columns []Column) bool {
	a := make([]string, len(stored))
	for i, c := range stored {
		a[i] = c.ID
	}
	b := make([]string, len(columns))
	for i, c := range columns {
		b[i] = c.AccessorKey
	}
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(a, b)
}

// ActiveColumns returns the visible columns in configured order, with the
// configured widths. Config entries unknown to the schema are skipped. An
// empty config renders the schema as is.
func ActiveColumns(configs []model.ColumnConfig, columns []Column) []Column {
	if len(configs) == 0 {
		return columns
	}

	visible := make([]model.ColumnConfig, 0, len(configs))
	for _, c := range configs {
		if c.IsVisible {
			visible = append(visible, c)
		}
	}
	slices.SortStableFunc(visible, func(a, b model.ColumnConfig) int {
		return a.Order - b.Order
	})

	active := make([]Column, 0, len(visible))
	for _, conf := range visible {
		i := slices.IndexFunc(columns, func(c Column) bool { return c.AccessorKey == conf.ID })
		if i < 0 {
			continue
		}
		col := columns[i]
		col.Width = conf.Width
		active = append(active, col)
	}
	return active
}
