// Package filter selects row subsets of a working table from a set of
// independently optional per-field value constraints.
package filter

import (
	"sort"
	"strings"

	"github.com/soxboard/soxboard/internal/model"
)

// Spec maps a canonical column name to its set of accepted values. An empty
// or missing set means "no constraint on this field", never "reject
// everything".
type Spec map[string][]string

// Apply returns the rows matching every constraint in the spec, in their
// original order. Pure projection: the source table is never mutated.
// Cost is one pass over the rows per constrained field.
func Apply(t *model.Table, spec Spec) *model.Table {
	out := model.NewTable(t.Headers)
	if len(spec) == 0 {
		out.Rows = append(out.Rows, t.Rows...)
		return out
	}

	type constraint struct {
		accepted map[string]bool
		col      int
	}
	var constraints []constraint
	for field, values := range spec {
		if len(values) == 0 {
			continue
		}
		accepted := make(map[string]bool, len(values))
		for _, v := range values {
			accepted[v] = true
		}
		// Constraints on absent columns reject nothing: an unknown field
		// carries no values to test against.
		if col := t.ColumnIndex(field); col >= 0 {
			constraints = append(constraints, constraint{accepted: accepted, col: col})
		}
	}

	for r := range t.Rows {
		match := true
		for _, c := range constraints {
			if !c.accepted[t.Cell(r, c.col)] {
				match = false
				break
			}
		}
		if match {
			out.Rows = append(out.Rows, t.Rows[r])
		}
	}
	return out
}

// Options returns the distinct non-empty values of a column, sorted, for
// presenting filter choices. Unknown columns yield nil.
func Options(t *model.Table, field string) []string {
	col := t.ColumnIndex(field)
	if col < 0 {
		return nil
	}

	seen := make(map[string]bool)
	var options []string
	for r := range t.Rows {
		v := t.Cell(r, col)
		if strings.TrimSpace(v) == "" || seen[v] {
			continue
		}
		seen[v] = true
		options = append(options, v)
	}
	sort.Strings(options)
	return options
}
