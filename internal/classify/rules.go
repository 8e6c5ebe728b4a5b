package classify

import "strings"

var (
	effectiveExact   = []string{"effective", "ok", "success"}
	ineffectiveExact = []string{"fail", "failed", "ineffective", "nok"}
)

// Classify maps one conclusion cell to its label and weight. Matching is
// case-insensitive on the trimmed text, first rule wins:
//
//  1. empty or whitespace-only   -> Not Tested
//  2. prefix "pass", or exactly "effective"/"ok"/"success" -> Effective
//  3. exactly "fail"/"failed"/"ineffective"/"nok"          -> Ineffective
//  4. anything else              -> Not Tested
func Classify(text string) (Label, float64) {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return NotTested, WeightNotTested
	}

	if strings.HasPrefix(s, "pass") {
		return Effective, WeightEffective
	}
	for _, v := range effectiveExact {
		if s == v {
			return Effective, WeightEffective
		}
	}

	for _, v := range ineffectiveExact {
		if s == v {
			return Ineffective, WeightIneffective
		}
	}

	return NotTested, WeightNotTested
}
