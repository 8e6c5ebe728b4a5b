package schema

import (
	"strings"

	"github.com/soxboard/soxboard/internal/model"
)

// joinSeparator joins consolidated values; the exact literal matters for
// parity with existing exports.
const joinSeparator = " | "

// qualifyingColumns returns the indexes of headers matching the group, in
// discovery order: token matches first (header order), then any literal
// match not already collected. A header containing every token qualifies
// regardless of token order within it.
func qualifyingColumns(headers []string, g model.Group) []int {
	var cols []int
	seen := make(map[int]bool)

	for i, h := range headers {
		if containsAll(NormalizeHeader(h), g.Tokens) {
			cols = append(cols, i)
			seen[i] = true
		}
	}

	if g.Literal != "" {
		for i, h := range headers {
			if !seen[i] && NormalizeHeader(h) == g.Literal {
				cols = append(cols, i)
			}
		}
	}

	return cols
}

func containsAll(header string, tokens []string) bool {
	for _, tok := range tokens {
		if !strings.Contains(header, tok) {
			return false
		}
	}
	return true
}

// ConsolidateGroup derives one value per row for a consolidation group.
// Plain groups join the non-empty trimmed values of every qualifying column
// with " | " in discovery order; a row with nothing to join yields "".
// Phased groups render each phase as "LABEL: value" in fixed phase order.
// The input table is never mutated.
func ConsolidateGroup(t *model.Table, g model.Group) []string {
	if len(g.Phases) > 0 {
		return consolidatePhased(t, g)
	}
	return consolidatePlain(t, g)
}

func consolidatePlain(t *model.Table, g model.Group) []string {
	cols := qualifyingColumns(t.Headers, g)
	out := make([]string, t.NumRows())

	for r := range t.Rows {
		var vals []string
		for _, c := range cols {
			if v := strings.TrimSpace(t.Cell(r, c)); v != "" {
				vals = append(vals, v)
			}
		}
		out[r] = strings.Join(vals, joinSeparator)
	}
	return out
}

func consolidatePhased(t *model.Table, g model.Group) []string {
	// One column scan per phase; the first header carrying all group tokens
	// plus the phase token and a non-empty value supplies that phase.
	normalized := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		normalized[i] = NormalizeHeader(h)
	}

	out := make([]string, t.NumRows())
	for r := range t.Rows {
		var parts []string
		for _, phase := range g.Phases {
			tokens := append(append([]string(nil), g.Tokens...), phase.Token)
			for c, h := range normalized {
				if !containsAll(h, tokens) {
					continue
				}
				if v := strings.TrimSpace(t.Cell(r, c)); v != "" {
					parts = append(parts, phase.Label+": "+v)
					break
				}
			}
		}
		out[r] = strings.Join(parts, joinSeparator)
	}
	return out
}
