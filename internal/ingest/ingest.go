// Package ingest reads uploaded spreadsheet files into working tables and
// runs them through validation and canonicalization.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/soxboard/soxboard/internal/common"
	"github.com/soxboard/soxboard/internal/model"
	"github.com/soxboard/soxboard/internal/schema"
)

// Limits bound what an upload may contain. Exceeding either cap rejects the
// upload outright: no partial ingestion.
type Limits struct {
	MaxFileSizeMB int
	MaxRows       int
}

// DefaultLimits returns the stock upload limits.
func DefaultLimits() Limits {
	return Limits{MaxFileSizeMB: 50, MaxRows: 100000}
}

// Load reads one upload file and returns its canonical table for the
// dataset: parsed, capped, protected columns dropped, headers normalized
// and consolidated onto the dataset schema.
func Load(path string, ds model.Dataset, limits Limits) (*model.Table, error) {
	raw, err := ReadFile(path, limits)
	if err != nil {
		return nil, err
	}
	if err := Validate(raw, limits); err != nil {
		return nil, err
	}
	return schema.Canonicalize(raw, ds), nil
}

// ReadFile parses a .csv or .xlsx file into a raw table. The first row is
// the header row.
func ReadFile(path string, limits Limits) (*model.Table, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat upload: %w", err)
	}
	if limits.MaxFileSizeMB > 0 && info.Size() > int64(limits.MaxFileSizeMB)*1024*1024 {
		return nil, fmt.Errorf("%w: %w: %s is %d bytes, cap is %d MB",
			common.ErrValidation, common.ErrFileSize, filepath.Base(path), info.Size(), limits.MaxFileSizeMB)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open upload: %w", err)
		}
		defer func() { _ = f.Close() }()
		return ReadCSV(f)
	case ".xlsx":
		return readWorkbook(path)
	default:
		return nil, fmt.Errorf("%w: unsupported file type %q (want .csv or .xlsx)",
			common.ErrValidation, filepath.Ext(path))
	}
}

// ReadCSV parses comma-delimited UTF-8 data. Ragged rows are tolerated and
// padded to the header width.
func ReadCSV(r io.Reader) (*model.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	headers, err := cr.Read()
	if err == io.EOF {
		return model.NewTable(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse csv header: %v", common.ErrValidation, err)
	}

	t := model.NewTable(headers)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: failed to parse csv row %d: %v", common.ErrValidation, t.NumRows()+2, err)
		}
		t.AppendRow(record)
	}
	return t, nil
}

func readWorkbook(path string) (*model.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open workbook: %v", common.ErrValidation, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return model.NewTable(nil), nil
	}

	// Single-sheet convention: only the first sheet carries data.
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read sheet %q: %v", common.ErrValidation, sheets[0], err)
	}
	if len(rows) == 0 {
		return model.NewTable(nil), nil
	}

	t := model.NewTable(rows[0])
	for _, row := range rows[1:] {
		t.AppendRow(row)
	}
	return t, nil
}

// Validate enforces the structural upload rules: a header-only or empty
// upload is rejected, as is one over the row cap. Column-level gaps are not
// validated here; missing canonical columns backfill downstream.
func Validate(t *model.Table, limits Limits) error {
	if t == nil || t.IsEmpty() {
		return fmt.Errorf("%w: %w", common.ErrValidation, common.ErrEmptyUpload)
	}
	if limits.MaxRows > 0 && t.NumRows() > limits.MaxRows {
		return fmt.Errorf("%w: %w: %d rows, cap is %d",
			common.ErrValidation, common.ErrRowCap, t.NumRows(), limits.MaxRows)
	}
	return nil
}
