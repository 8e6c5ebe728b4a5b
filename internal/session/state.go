// Package session holds the explicit per-session application state: the
// active dataset, upload selection, filters, and view mode. One State per
// user session, reset on session start; nothing here is package-global.
package session

import (
	"github.com/soxboard/soxboard/internal/filter"
	"github.com/soxboard/soxboard/internal/model"
)

// View selects how the working table is presented.
type View string

// View modes.
const (
	ViewTable   View = "table"
	ViewSummary View = "summary"
)

// State is the mutable interaction state of one session.
type State struct {
	Filters  filter.Spec
	Dataset  model.Dataset
	UploadID string
	View     View
}

// New returns a fresh session state with the default dataset selected and
// no filters active.
func New() *State {
	return &State{
		Dataset: model.Controls,
		Filters: filter.Spec{},
		View:    ViewTable,
	}
}

// Reset returns the state to its session-start defaults.
func (s *State) Reset() {
	*s = *New()
}

// SelectDataset switches the active dataset and clears selections that
// belonged to the previous one.
func (s *State) SelectDataset(name string) error {
	ds, err := model.DatasetByName(name)
	if err != nil {
		return err
	}
	s.Dataset = ds
	s.UploadID = ""
	s.Filters = filter.Spec{}
	return nil
}

// SetFilter replaces the accepted values for one field. An empty value set
// removes the constraint.
func (s *State) SetFilter(field string, values []string) {
	if len(values) == 0 {
		delete(s.Filters, field)
		return
	}
	s.Filters[field] = values
}
