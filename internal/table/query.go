package table

import (
	"fmt"

	"github.com/erazemk/assetdesk/internal/model"
)

// Query is the interactive state of a table: the global search, the
// per-column filters and the active sort.
type Query struct {
	Search  string            `json:"search"`
	Mode    SearchMode        `json:"mode"`
	Filters map[string]string `json:"filters"`
	Sort    *Sort             `json:"sort"`
}

// Result is a table ready to render.
type Result struct {
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
	Sort    *Sort    `json:"sort"`
	Shown   int      `json:"shown"`
	Total   int      `json:"total"`
	Summary string   `json:"summary"`
}

// Apply runs rows through search, filters and sort and resolves the columns
// to render. The view's settings gate which filters apply. Global search is
// evaluated against the full schema, not only the visible columns.
func Apply(columns []Column, rows []Row, q Query, view model.TableView) Result {
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if view.Settings.ShowAdvancedSearch && !MatchesSearch(row, columns, q.Search, q.Mode) {
			continue
		}
		if view.Settings.ShowColumnFilter && !MatchesFilters(row, q.Filters) {
			continue
		}
		out = append(out, row)
	}

	if q.Sort != nil && q.Sort.ID != "" {
		SortRows(out, *q.Sort)
	}

	return Result{
		Columns: ActiveColumns(Reconcile(view.Columns, columns), columns),
		Rows:    out,
		Sort:    q.Sort,
		Shown:   len(out),
		Total:   len(rows),
		Summary: Summary(len(out), len(rows)),
	}
}

// Summary is the row count line under a table.
func Summary(shown, total int) string {
	return fmt.Sprintf("Showing %d of %d", shown, total)
}
