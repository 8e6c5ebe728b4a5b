package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/soxboard/soxboard/internal/common"
	"github.com/soxboard/soxboard/internal/model"
)

// Validation errors.
var (
	ErrNilContext     = errors.New("context cannot be nil")
	ErrEmptyString    = errors.New("string parameter cannot be empty")
	ErrNilParameter   = errors.New("parameter cannot be nil")
	ErrInvalidDataset = errors.New("invalid dataset")
	ErrSchemaMismatch = errors.New("table does not match dataset schema")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateDataset ensures the descriptor names a table and carries a schema.
func validateDataset(ds model.Dataset) error {
	if strings.TrimSpace(ds.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidDataset)
	}
	if len(ds.Schema) == 0 {
		return fmt.Errorf("%w: %s has no schema", ErrInvalidDataset, ds.Name)
	}
	return nil
}

// validateAppendTable ensures a batch is non-empty and column-compatible
// with the dataset before anything touches the database. A mismatch is a
// persistence error: the batch must not partially apply.
func validateAppendTable(ds model.Dataset, t *model.Table) error {
	if t == nil {
		return fmt.Errorf("%w: table", ErrNilParameter)
	}
	if t.IsEmpty() {
		return fmt.Errorf("%w: %s", common.ErrEmptyUpload, ds.Name)
	}

	names := ds.FieldNames()
	if len(t.Headers) != len(names) {
		return fmt.Errorf("%w: %w: got %d columns, want %d",
			common.ErrPersistence, ErrSchemaMismatch, len(t.Headers), len(names))
	}
	for i, n := range names {
		if t.Headers[i] != n {
			return fmt.Errorf("%w: %w: column %d is %q, want %q",
				common.ErrPersistence, ErrSchemaMismatch, i, t.Headers[i], n)
		}
	}
	return nil
}
