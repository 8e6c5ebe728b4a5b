package schema

import "github.com/soxboard/soxboard/internal/model"

// Canonicalize maps a raw upload onto a dataset's canonical schema: drops
// protected columns, resolves aliased fields, and consolidates the grouped
// reason/cause/conclusion columns. Every schema field is present in the
// result even when no source column matched, backfilled with empty strings.
func Canonicalize(raw *model.Table, ds model.Dataset) *model.Table {
	work := DropProtectedColumns(raw)
	resolved := ResolveFields(work.Headers, ds.Schema)

	consolidated := make(map[string][]string)
	for _, f := range ds.Schema {
		if f.Consolidated() {
			consolidated[f.Name] = ConsolidateGroup(work, *f.Group)
		}
	}

	out := model.NewTable(ds.FieldNames())
	for r := range work.Rows {
		row := make([]string, len(ds.Schema))
		for i, f := range ds.Schema {
			if f.Consolidated() {
				row[i] = consolidated[f.Name][r]
				continue
			}
			if idx := resolved[f.Name]; idx >= 0 {
				row[i] = work.Cell(r, idx)
			}
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}
