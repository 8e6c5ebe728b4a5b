// Package export serializes filtered working tables back to spreadsheet
// formats: UTF-8 CSV and single-sheet xlsx workbooks, header row included,
// no index column.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/soxboard/soxboard/internal/model"
)

// HideSystemColumns returns a view of the table without the upload_id,
// uploaded_at, and source_filename columns. Exports always hide them.
func HideSystemColumns(t *model.Table) *model.Table {
	system := make(map[string]bool)
	for _, n := range model.SystemColumns() {
		system[n] = true
	}

	var names []string
	for _, h := range t.Headers {
		if !system[h] {
			names = append(names, h)
		}
	}
	return t.SelectColumns(names)
}

// CSVBytes renders the table as comma-delimited UTF-8 with a header row.
func CSVBytes(t *model.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(t.Headers); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// WorkbookBytes renders the table as a single-sheet xlsx workbook.
func WorkbookBytes(t *model.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)

	writeRow := func(rowIdx int, values []string) error {
		cell, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return err
		}
		cells := make([]any, len(values))
		for i, v := range values {
			cells[i] = v
		}
		return f.SetSheetRow(sheet, cell, &cells)
	}

	if err := writeRow(1, t.Headers); err != nil {
		return nil, fmt.Errorf("failed to write workbook header: %w", err)
	}
	for i, row := range t.Rows {
		if err := writeRow(i+2, row); err != nil {
			return nil, fmt.Errorf("failed to write workbook row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
