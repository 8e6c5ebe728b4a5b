// Package model defines the core domain types: canonical fields, dataset
// descriptors, tabular data, and upload metadata.
package model

// Phase identifies one testing phase of a control and the label used when
// rendering a consolidated conclusion value.
type Phase struct {
	Label string
	Token string
}

// Phases lists the control testing phases in their fixed rendering order.
// Discovery order of source columns never changes this order.
var Phases = []Phase{
	{Label: "OE1", Token: "oe1"},
	{Label: "OE2", Token: "oe2"},
	{Label: "YE", Token: "ye"},
}

// Group describes a consolidation rule: a header qualifies when every token
// appears as a substring of its normalized form, or when it equals the
// literal header exactly. Phased groups additionally require a phase token
// and render each value as "LABEL: value".
type Group struct {
	Literal string
	Tokens  []string
	Phases  []Phase
}

// Field is one canonical column in a dataset schema. Exactly one of the two
// matching strategies applies: aliased fields resolve to a single source
// column (first alias present wins), consolidated fields merge every
// qualifying source column per row.
type Field struct {
	Group   *Group
	Name    string
	Aliases []string
}

// Consolidated reports whether the field merges multiple source columns.
func (f Field) Consolidated() bool {
	return f.Group != nil
}
