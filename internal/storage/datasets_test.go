package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/soxboard/soxboard/internal/common"
	"github.com/soxboard/soxboard/internal/model"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	return store, func() { _ = store.Close() }
}

// Helper function to create a canonical table for a dataset.
func createTestTable(ds model.Dataset, count int) *model.Table {
	tbl := model.NewTable(ds.FieldNames())
	for i := 0; i < count; i++ {
		row := make([]string, len(ds.Schema))
		for c := range row {
			row[c] = fmt.Sprintf("%s-%d", ds.Schema[c].Name, i+1)
		}
		tbl.AppendRow(row)
	}
	return tbl
}

func TestSQLiteStorage_AppendAndLoadByUpload(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	uploadID, err := store.Append(ctx, model.Controls, createTestTable(model.Controls, 3), "q1.xlsx")
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if uploadID == "" {
		t.Fatal("Append returned empty upload id")
	}

	got, err := store.LoadByUpload(ctx, model.Controls, uploadID)
	if err != nil {
		t.Fatalf("LoadByUpload failed: %v", err)
	}
	if got.NumRows() != 3 {
		t.Errorf("Expected 3 rows, got %d", got.NumRows())
	}

	// System columns are prepended and stamped uniformly.
	idCol := got.ColumnIndex(model.ColUploadID)
	atCol := got.ColumnIndex(model.ColUploadedAt)
	fileCol := got.ColumnIndex(model.ColSourceFilename)
	if idCol != 0 || atCol != 1 || fileCol != 2 {
		t.Fatalf("system columns misplaced: %v", got.Headers)
	}
	for r := 0; r < got.NumRows(); r++ {
		if got.Cell(r, idCol) != uploadID {
			t.Errorf("row %d upload_id = %q, want %q", r, got.Cell(r, idCol), uploadID)
		}
		if got.Cell(r, fileCol) != "q1.xlsx" {
			t.Errorf("row %d source_filename = %q, want q1.xlsx", r, got.Cell(r, fileCol))
		}
		if _, parseErr := time.Parse(model.TimestampLayout, got.Cell(r, atCol)); parseErr != nil {
			t.Errorf("row %d uploaded_at %q not in layout: %v", r, got.Cell(r, atCol), parseErr)
		}
	}
}

func TestSQLiteStorage_AppendGeneratesFreshIDs(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	first, err := store.Append(ctx, model.Controls, createTestTable(model.Controls, 1), "a.csv")
	if err != nil {
		t.Fatalf("first Append failed: %v", err)
	}
	second, err := store.Append(ctx, model.Controls, createTestTable(model.Controls, 1), "b.csv")
	if err != nil {
		t.Fatalf("second Append failed: %v", err)
	}
	if first == second {
		t.Error("upload ids must never repeat")
	}
}

func TestSQLiteStorage_AppendAtomicity(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := store.Append(ctx, model.Controls, createTestTable(model.Controls, 2), "base.csv"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	tests := []struct {
		table   *model.Table
		name    string
		wantErr error
	}{
		{
			name:    "schema mismatch leaves prior data untouched",
			table:   createTestTable(model.Tickets, 2),
			wantErr: common.ErrPersistence,
		},
		{
			name:    "empty batch rejected",
			table:   model.NewTable(model.Controls.FieldNames()),
			wantErr: common.ErrEmptyUpload,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Append(ctx, model.Controls, tt.table, "bad.csv")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Append error = %v, want %v", err, tt.wantErr)
			}

			all, loadErr := store.LoadAll(ctx, model.Controls)
			if loadErr != nil {
				t.Fatalf("LoadAll failed: %v", loadErr)
			}
			if all.NumRows() != 2 {
				t.Errorf("row count changed to %d after failed append, want 2", all.NumRows())
			}
		})
	}
}

func TestSQLiteStorage_LoadAll(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	// Never-written dataset: legitimately empty, not a fault.
	empty, err := store.LoadAll(ctx, model.Effort)
	if err != nil {
		t.Fatalf("LoadAll on empty dataset failed: %v", err)
	}
	if !empty.IsEmpty() {
		t.Errorf("expected empty table, got %d rows", empty.NumRows())
	}

	if _, err := store.Append(ctx, model.Effort, createTestTable(model.Effort, 2), "a.csv"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if _, err := store.Append(ctx, model.Effort, createTestTable(model.Effort, 3), "b.csv"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	all, err := store.LoadAll(ctx, model.Effort)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if all.NumRows() != 5 {
		t.Errorf("Expected 5 rows across uploads, got %d", all.NumRows())
	}

	// Insertion order: the first upload's rows come first.
	fileCol := all.ColumnIndex(model.ColSourceFilename)
	wantFiles := []string{"a.csv", "a.csv", "b.csv", "b.csv", "b.csv"}
	for r, want := range wantFiles {
		if all.Cell(r, fileCol) != want {
			t.Errorf("row %d source = %q, want %q", r, all.Cell(r, fileCol), want)
		}
	}
}

func TestSQLiteStorage_LoadByUploadUnknownID(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := store.Append(ctx, model.Controls, createTestTable(model.Controls, 1), "a.csv"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	got, err := store.LoadByUpload(ctx, model.Controls, "no-such-upload")
	if err != nil {
		t.Fatalf("LoadByUpload failed: %v", err)
	}
	if !got.IsEmpty() {
		t.Errorf("unknown id should yield empty table, got %d rows", got.NumRows())
	}
}

func TestSQLiteStorage_DeleteUpload(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	keep, err := store.Append(ctx, model.Controls, createTestTable(model.Controls, 2), "keep.csv")
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	doomed, err := store.Append(ctx, model.Controls, createTestTable(model.Controls, 3), "doomed.csv")
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	count, err := store.DeleteUpload(ctx, model.Controls, doomed)
	if err != nil {
		t.Fatalf("DeleteUpload failed: %v", err)
	}
	if count != 3 {
		t.Errorf("DeleteUpload removed %d rows, want 3", count)
	}

	gone, err := store.LoadByUpload(ctx, model.Controls, doomed)
	if err != nil {
		t.Fatalf("LoadByUpload failed: %v", err)
	}
	if !gone.IsEmpty() {
		t.Errorf("deleted upload still has %d rows", gone.NumRows())
	}

	all, err := store.LoadAll(ctx, model.Controls)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if all.NumRows() != 2 {
		t.Errorf("LoadAll after delete = %d rows, want 2", all.NumRows())
	}

	kept, err := store.LoadByUpload(ctx, model.Controls, keep)
	if err != nil {
		t.Fatalf("LoadByUpload failed: %v", err)
	}
	if kept.NumRows() != 2 {
		t.Errorf("surviving upload has %d rows, want 2", kept.NumRows())
	}

	// Unknown id: 0 removed, not an error. Repeat deletes are no-ops.
	for _, id := range []string{"no-such-upload", doomed} {
		count, err := store.DeleteUpload(ctx, model.Controls, id)
		if err != nil {
			t.Fatalf("DeleteUpload(%q) failed: %v", id, err)
		}
		if count != 0 {
			t.Errorf("DeleteUpload(%q) = %d, want 0", id, count)
		}
	}
}

func TestSQLiteStorage_Summarize(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	// Empty dataset summarizes to nothing.
	uploads, err := store.Summarize(ctx, model.Tickets)
	if err != nil {
		t.Fatalf("Summarize on empty dataset failed: %v", err)
	}
	if len(uploads) != 0 {
		t.Fatalf("expected no uploads, got %d", len(uploads))
	}

	first, err := store.Append(ctx, model.Tickets, createTestTable(model.Tickets, 2), "jan.csv")
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	second, err := store.Append(ctx, model.Tickets, createTestTable(model.Tickets, 5), "feb.csv")
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	uploads, err = store.Summarize(ctx, model.Tickets)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if len(uploads) != 2 {
		t.Fatalf("expected 2 uploads, got %d", len(uploads))
	}

	byID := make(map[string]model.Upload)
	for _, u := range uploads {
		byID[u.ID] = u
	}
	if u := byID[first]; u.RowCount != 2 || u.SourceFilename != "jan.csv" {
		t.Errorf("first upload summary = %+v", u)
	}
	if u := byID[second]; u.RowCount != 5 || u.SourceFilename != "feb.csv" {
		t.Errorf("second upload summary = %+v", u)
	}

	// Most recent first; equal timestamps may tie in either order.
	if uploads[0].UploadedAt < uploads[1].UploadedAt {
		t.Errorf("uploads not ordered most recent first: %q before %q",
			uploads[0].UploadedAt, uploads[1].UploadedAt)
	}
}

func TestSQLiteStorage_CreateIfAbsentIdempotent(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if err := store.CreateIfAbsent(ctx, model.Controls); err != nil {
		t.Fatalf("CreateIfAbsent failed: %v", err)
	}
	if _, err := store.Append(ctx, model.Controls, createTestTable(model.Controls, 2), "a.csv"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	// Calling again never destroys existing data.
	if err := store.CreateIfAbsent(ctx, model.Controls); err != nil {
		t.Fatalf("second CreateIfAbsent failed: %v", err)
	}

	all, err := store.LoadAll(ctx, model.Controls)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if all.NumRows() != 2 {
		t.Errorf("data lost after CreateIfAbsent: %d rows, want 2", all.NumRows())
	}
}

func TestSQLiteStorage_DatasetsAreIndependent(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	// tickets and security_tickets share a schema shape but never rows.
	if _, err := store.Append(ctx, model.Tickets, createTestTable(model.Tickets, 2), "t.csv"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	sec, err := store.LoadAll(ctx, model.SecurityTickets)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if !sec.IsEmpty() {
		t.Errorf("security_tickets contains %d rows from tickets", sec.NumRows())
	}
}
