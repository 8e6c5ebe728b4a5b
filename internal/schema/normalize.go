// Package schema maps the inconsistent, human-edited headers of uploaded
// spreadsheets onto the canonical dataset schemas. Headers vary upload to
// upload ("MICS ID", "micsid", "MICS_ID"); absence of a column is never an
// error, it degrades to empty values so the canonical schema stays complete.
package schema

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/soxboard/soxboard/internal/model"
)

// protectedMarker is the prefix of hidden workbook-protection columns that
// must be dropped before any matching. Uploads carry it both with and
// without the diacritic, so the check also runs on the folded form.
const (
	protectedMarker       = "(não modificar)"
	protectedMarkerFolded = "(nao modificar)"
)

// NormalizeHeader canonicalizes a raw header for comparison: trimmed and
// lowercased. All alias and token matching happens on this form.
func NormalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

func isProtectedHeader(h string) bool {
	n := NormalizeHeader(h)
	if strings.HasPrefix(n, protectedMarker) {
		return true
	}
	return strings.HasPrefix(stripDiacritics(n), protectedMarkerFolded)
}

// stripDiacritics removes diacritical marks from a string by decomposing it
// into NFD form and dropping combining marks.
func stripDiacritics(s string) string {
	decomposed := norm.NFD.String(s)
	var result strings.Builder
	result.Grow(len(decomposed))

	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		result.WriteRune(r)
	}

	return result.String()
}

// DropProtectedColumns returns a copy of the table without the hidden
// workbook-protection columns. The input table is not modified.
func DropProtectedColumns(t *model.Table) *model.Table {
	keep := make([]int, 0, len(t.Headers))
	headers := make([]string, 0, len(t.Headers))
	for i, h := range t.Headers {
		if isProtectedHeader(h) {
			continue
		}
		keep = append(keep, i)
		headers = append(headers, h)
	}

	out := model.NewTable(headers)
	for r := range t.Rows {
		row := make([]string, len(keep))
		for j, c := range keep {
			row[j] = t.Cell(r, c)
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}

// ResolveFields maps each aliased field of the schema to the source column
// index to read, or -1 when no alias matches. Aliases are tried in priority
// order and the first one present among the normalized headers wins;
// remaining aliases are ignored even if also present. Consolidated fields
// are skipped, they do not resolve to a single column.
func ResolveFields(headers []string, fields []model.Field) map[string]int {
	byNormalized := make(map[string]int, len(headers))
	for i, h := range headers {
		n := NormalizeHeader(h)
		if _, ok := byNormalized[n]; !ok {
			byNormalized[n] = i
		}
	}

	resolved := make(map[string]int, len(fields))
	for _, f := range fields {
		if f.Consolidated() {
			continue
		}
		resolved[f.Name] = -1
		for _, alias := range f.Aliases {
			if idx, ok := byNormalized[alias]; ok {
				resolved[f.Name] = idx
				break
			}
		}
	}
	return resolved
}
