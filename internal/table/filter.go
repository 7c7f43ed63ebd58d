package table

import (
	"slices"
	"strings"
)

// SearchMode selects how a global query is matched.
type SearchMode string

// Search modes.
const (
	AllWords    SearchMode = "All Words"
	AnyWords    SearchMode = "Any Words"
	ExactPhrase SearchMode = "Exact Phrase"
)

// Valid reports whether m is a known mode. The zero mode is accepted and
// behaves as AllWords.
func (m SearchMode) Valid() bool {
	switch m {
	case "", AllWords, AnyWords, ExactPhrase:
		return true
	}
	return false
}

// MatchesSearch reports whether a row matches the global query across the
// given columns. An empty query matches everything.
func MatchesSearch(row Row, columns []Column, query string, mode SearchMode) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}

	values := make([]string, len(columns))
	for i, c := range columns {
		values[i] = strings.ToLower(Stringify(Resolve(row, c.AccessorKey)))
	}

	if mode == ExactPhrase {
		return slices.Contains(values, query)
	}

	inAnyColumn := func(token string) bool {
		for _, v := range values {
			if strings.Contains(v, token) {
				return true
			}
		}
		return false
	}

	tokens := strings.Fields(query)
	if mode == AnyWords {
		return slices.ContainsFunc(tokens, inAnyColumn)
	}
	for _, tok := range tokens {
		if !inAnyColumn(tok) {
			return false
		}
	}
	return true
}

// MatchesFilters reports whether a row satisfies every per-column substring
// filter. Empty filter values are ignored.
func MatchesFilters(row Row, filters map[string]string) bool {
	for key, want := range filters {
		if want == "" {
			continue
		}
		got := strings.ToLower(Stringify(Resolve(row, key)))
		if !strings.Contains(got, strings.ToLower(want)) {
			return false
		}
	}
	return true
}
