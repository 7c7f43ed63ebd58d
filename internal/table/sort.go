package table

import "slices"

// Sort is the single active sort key of a table.
type Sort struct {
	ID   string `json:"id"`
	Desc bool   `json:"desc"`
}

// Toggle returns the sort after a click on key's header. The first click
// on a key sorts ascending, the next flips to descending, the one after
// that returns to ascending.
func (s *Sort) Toggle(key string) Sort {
	desc := s != nil && s.ID == key && !s.Desc
	return Sort{ID: key, Desc: desc}
}

// SortRows orders rows in place by the resolved sort key. Rows comparing
// equal keep their relative order.
func SortRows(rows []Row, s Sort) {
	slices.SortStableFunc(rows, func(a, b Row) int {
		c := Compare(Resolve(a, s.ID), Resolve(b, s.ID))
		if s.Desc {
			return -c
		}
		return c
	})
}
