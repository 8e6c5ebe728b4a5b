package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/soxboard/soxboard/internal/common"
	"github.com/soxboard/soxboard/internal/model"
)

// CreateIfAbsent ensures the dataset's table and index exist. Idempotent
// lazy init: Append calls it inside its own transaction, so calling it
// explicitly is optional.
func (s *SQLiteStorage) CreateIfAbsent(ctx context.Context, ds model.Dataset) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateDataset(ds); err != nil {
		return err
	}

	for _, stmt := range createStatements(ds) {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%w: failed to create dataset %s: %v", common.ErrPersistence, ds.Name, err)
		}
	}
	return nil
}

func createStatements(ds model.Dataset) []string {
	cols := make([]string, 0, len(ds.Schema)+3)
	for _, name := range model.SystemColumns() {
		cols = append(cols, quoteIdent(name)+" TEXT NOT NULL")
	}
	for _, f := range ds.Schema {
		cols = append(cols, quoteIdent(f.Name)+" TEXT")
	}

	table := quoteIdent(ds.Name)
	return []string{
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", table, strings.Join(cols, ", ")),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)",
			quoteIdent("idx_"+ds.Name+"_upload_id"), table, quoteIdent(model.ColUploadID)),
	}
}

// Append writes the canonical table as one upload batch. Every row is
// stamped with a fresh upload id, a shared capture timestamp, and the
// source filename. The batch is transactional: all rows become visible
// together or none do. Returns the new upload id.
func (s *SQLiteStorage) Append(ctx context.Context, ds model.Dataset, t *model.Table, filename string) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}
	if err := validateDataset(ds); err != nil {
		return "", err
	}
	if err := validateAppendTable(ds, t); err != nil {
		return "", err
	}
	if err := validateString(filename, "filename"); err != nil {
		return "", err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	uploadID := uuid.New().String()
	uploadedAt := time.Now().Format(model.TimestampLayout)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("%w: failed to begin transaction: %v", common.ErrPersistence, err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range createStatements(ds) {
		if _, execErr := tx.ExecContext(ctx, stmt); execErr != nil {
			return "", fmt.Errorf("%w: failed to create dataset %s: %v", common.ErrPersistence, ds.Name, execErr)
		}
	}

	names := append(model.SystemColumns(), ds.FieldNames()...)
	quoted := make([]string, len(names))
	placeholders := make([]string, len(names))
	for i, n := range names {
		quoted[i] = quoteIdent(n)
		placeholders[i] = "?"
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(ds.Name), strings.Join(quoted, ", "), strings.Join(placeholders, ", "),
	))
	if err != nil {
		return "", fmt.Errorf("%w: failed to prepare insert: %v", common.ErrPersistence, err)
	}
	defer func() { _ = stmt.Close() }()

	for r := range t.Rows {
		args := make([]any, 0, len(names))
		args = append(args, uploadID, uploadedAt, filename)
		for c := range ds.Schema {
			args = append(args, t.Cell(r, c))
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return "", fmt.Errorf("%w: failed to insert row %d: %v", common.ErrPersistence, r, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("%w: failed to commit upload: %v", common.ErrPersistence, err)
	}

	common.LogInfo("upload appended", common.Fields{
		"dataset":   ds.Name,
		"upload_id": uploadID,
		"rows":      t.NumRows(),
		"filename":  filename,
	})
	return uploadID, nil
}

// LoadAll returns every persisted row of the dataset in insertion order.
// Read faults degrade to an empty table plus a logged ErrReadFault so the
// dashboard stays navigable.
func (s *SQLiteStorage) LoadAll(ctx context.Context, ds model.Dataset) (*model.Table, error) {
	return s.load(ctx, ds, "", "")
}

// LoadByUpload returns only the rows of one upload. An unknown id yields an
// empty table, not an error.
func (s *SQLiteStorage) LoadByUpload(ctx context.Context, ds model.Dataset, uploadID string) (*model.Table, error) {
	if err := validateString(uploadID, "uploadID"); err != nil {
		return nil, err
	}
	return s.load(ctx, ds, fmt.Sprintf("WHERE %s = ?", quoteIdent(model.ColUploadID)), uploadID)
}

func (s *SQLiteStorage) load(ctx context.Context, ds model.Dataset, where, arg string) (*model.Table, error) {
	names := append(model.SystemColumns(), ds.FieldNames()...)
	empty := model.NewTable(names)

	if err := validateContext(ctx); err != nil {
		return empty, err
	}
	if err := validateDataset(ds); err != nil {
		return empty, err
	}

	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = quoteIdent(n)
	}
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(quoted, ", "), quoteIdent(ds.Name))
	var args []any
	if where != "" {
		query += " " + where
		args = append(args, arg)
	}
	query += " ORDER BY rowid"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		if isMissingTable(err) {
			// Dataset never written to: legitimately empty, not a fault.
			return empty, nil
		}
		readFault := fmt.Errorf("%w: query %s failed: %v", common.ErrReadFault, ds.Name, err)
		common.LogError(readFault, "dataset read failed", common.Fields{"dataset": ds.Name})
		return empty, readFault
	}
	defer func() { _ = rows.Close() }()

	out := model.NewTable(names)
	scan := make([]any, len(names))
	for rows.Next() {
		row := make([]string, len(names))
		for i := range row {
			scan[i] = &row[i]
		}
		if err := rows.Scan(scan...); err != nil {
			readFault := fmt.Errorf("%w: scan %s failed: %v", common.ErrReadFault, ds.Name, err)
			common.LogError(readFault, "dataset read failed", common.Fields{"dataset": ds.Name})
			return empty, readFault
		}
		out.Rows = append(out.Rows, row)
	}
	if err := rows.Err(); err != nil {
		readFault := fmt.Errorf("%w: iterate %s failed: %v", common.ErrReadFault, ds.Name, err)
		common.LogError(readFault, "dataset read failed", common.Fields{"dataset": ds.Name})
		return empty, readFault
	}
	return out, nil
}

// DeleteUpload removes every row of the upload. Returns the count removed;
// an unknown id removes nothing and returns 0.
func (s *SQLiteStorage) DeleteUpload(ctx context.Context, ds model.Dataset, uploadID string) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateDataset(ds); err != nil {
		return 0, err
	}
	if err := validateString(uploadID, "uploadID"); err != nil {
		return 0, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	res, err := s.db.ExecContext(ctx, fmt.Sprintf(
		"DELETE FROM %s WHERE %s = ?", quoteIdent(ds.Name), quoteIdent(model.ColUploadID),
	), uploadID)
	if err != nil {
		if isMissingTable(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: failed to delete upload %s: %v", common.ErrPersistence, uploadID, err)
	}

	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: failed to read delete count: %v", common.ErrPersistence, err)
	}
	if count > 0 {
		common.LogInfo("upload deleted", common.Fields{
			"dataset":   ds.Name,
			"upload_id": uploadID,
			"rows":      count,
		})
	}
	return count, nil
}

// Summarize lists one entry per distinct upload, most recent first.
// Fail-soft like the other read paths.
func (s *SQLiteStorage) Summarize(ctx context.Context, ds model.Dataset) ([]model.Upload, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateDataset(ds); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		"SELECT %s, %s, %s, COUNT(*) FROM %s GROUP BY %s, %s, %s ORDER BY %s DESC",
		quoteIdent(model.ColUploadID), quoteIdent(model.ColUploadedAt), quoteIdent(model.ColSourceFilename),
		quoteIdent(ds.Name),
		quoteIdent(model.ColUploadID), quoteIdent(model.ColUploadedAt), quoteIdent(model.ColSourceFilename),
		quoteIdent(model.ColUploadedAt),
	)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		if isMissingTable(err) {
			return nil, nil
		}
		readFault := fmt.Errorf("%w: summarize %s failed: %v", common.ErrReadFault, ds.Name, err)
		common.LogError(readFault, "dataset summarize failed", common.Fields{"dataset": ds.Name})
		return nil, readFault
	}
	defer func() { _ = rows.Close() }()

	var uploads []model.Upload
	for rows.Next() {
		var u model.Upload
		if err := rows.Scan(&u.ID, &u.UploadedAt, &u.SourceFilename, &u.RowCount); err != nil {
			readFault := fmt.Errorf("%w: summarize scan %s failed: %v", common.ErrReadFault, ds.Name, err)
			common.LogError(readFault, "dataset summarize failed", common.Fields{"dataset": ds.Name})
			return nil, readFault
		}
		uploads = append(uploads, u)
	}
	if err := rows.Err(); err != nil {
		readFault := fmt.Errorf("%w: summarize iterate %s failed: %v", common.ErrReadFault, ds.Name, err)
		common.LogError(readFault, "dataset summarize failed", common.Fields{"dataset": ds.Name})
		return nil, readFault
	}
	return uploads, nil
}

func isMissingTable(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such table")
}
