// Package classify maps free-text test-conclusion values onto the closed
// reporting taxonomy. Deliberately a literal-list matcher, not a fuzzy one:
// compliance reporting needs predictable, auditable output.
package classify

// Label is one of the three conclusion categories.
type Label string

// The closed taxonomy. Labels are themselves recognized classifier inputs,
// so the mapping is stable under round-trips.
const (
	Effective   Label = "Effective"
	Ineffective Label = "Ineffective"
	NotTested   Label = "Not Tested"
)

// Weights for downstream aggregation. Ineffective is deliberately 0.5
// rather than 0: an ineffective control was still tested, and the scale
// must stay below Effective without collapsing into Not Tested.
const (
	WeightEffective   = 1.0
	WeightIneffective = 0.5
	WeightNotTested   = 0.0
)

// Labels lists the taxonomy in reporting order.
var Labels = []Label{Effective, Ineffective, NotTested}

// Weight returns the numeric weight associated with the label.
func (l Label) Weight() float64 {
	switch l {
	case Effective:
		return WeightEffective
	case Ineffective:
		return WeightIneffective
	default:
		return WeightNotTested
	}
}
