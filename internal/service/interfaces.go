// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/soxboard/soxboard/internal/model"
)

// Repository is the contract for the dataset persistence layer. One
// implementation serves every dataset; the Dataset descriptor carries the
// table name and schema.
//
// Read operations are fail-soft: on a storage fault they return an empty
// result together with an error wrapping common.ErrReadFault, which callers
// log and continue past. Write operations are fail-loud: an error means no
// rows from the batch are visible.
type Repository interface {
	// CreateIfAbsent ensures the dataset's table exists. Idempotent; never
	// destroys existing data; safe to call before every other operation.
	CreateIfAbsent(ctx context.Context, ds model.Dataset) error

	// Append stamps every row with a fresh upload id, the capture
	// timestamp, and the source filename, then writes the batch
	// atomically. Returns the new upload id.
	Append(ctx context.Context, ds model.Dataset, t *model.Table, filename string) (string, error)

	// LoadAll returns every row across all uploads, in insertion order.
	LoadAll(ctx context.Context, ds model.Dataset) (*model.Table, error)

	// LoadByUpload returns the rows of one upload; an unknown id yields an
	// empty table, not an error.
	LoadByUpload(ctx context.Context, ds model.Dataset, uploadID string) (*model.Table, error)

	// DeleteUpload removes every row of the upload and returns the count
	// removed (0 for an unknown id). Irreversible.
	DeleteUpload(ctx context.Context, ds model.Dataset, uploadID string) (int64, error)

	// Summarize lists one entry per distinct upload, most recent first.
	Summarize(ctx context.Context, ds model.Dataset) ([]model.Upload, error)

	Close() error
}
