package listing

import "strings"

const (
	// OrderAsc sorts ascending.
	OrderAsc = "asc"
	// OrderDesc sorts descending.
	OrderDesc = "desc"

	// DefaultSortColumn is used when a requested sort field is not allowed.
	DefaultSortColumn = "name"
)

// Sort holds normalized ordering inputs from controllers or services.
type Sort struct {
	Column string
	Order  string
}

// NormalizeOrder maps arbitrary input onto asc or desc, defaulting to asc.
func NormalizeOrder(value string) string {
	if strings.EqualFold(strings.TrimSpace(value), OrderDesc) {
		return OrderDesc
	}
	return OrderAsc
}

// ResolveSort maps a requested sort field onto a real column using the
// provided allow-list. Unknown fields fall back to DefaultSortColumn so
// caller input never reaches SQL identifiers directly.
func ResolveSort(allowed map[string]string, sortBy, sortOrder string) Sort {
	column, ok := allowed[strings.TrimSpace(sortBy)]
	if !ok || column == "" {
		// the allow-list may alias the default (joined queries)
		if aliased, found := allowed[DefaultSortColumn]; found && aliased != "" {
			column = aliased
		} else {
			column = DefaultSortColumn
		}
	}
	return Sort{
		Column: column,
		Order:  NormalizeOrder(sortOrder),
	}
}

// SubstringPattern builds a case-insensitive LIKE pattern for the value,
// intended for use against LOWER(column) with a bound parameter.
func SubstringPattern(value string) string {
	return "%" + strings.ToLower(strings.TrimSpace(value)) + "%"
}

// Clause renders the ORDER BY expression for the resolved sort.
func (s Sort) Clause() string {
	column := s.Column
	if column == "" {
		column = DefaultSortColumn
	}
	order := s.Order
	if order != OrderDesc {
		order = OrderAsc
	}
	return column + " " + order
}
