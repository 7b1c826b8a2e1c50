package core

import (
	"fmt"
)

// Workbook is what the spreadsheet decoder hands to the ingester: ordered
// sheet names and, per sheet, rows of cell text (row 0 holds the headers).
type Workbook interface {
	SheetNames() []string
	Rows(sheet string) ([][]string, error)
}

// IngestStats counts what happened to the data rows of a sheet.
type IngestStats struct {
	DataRows int `json:"dataRows"` // rows after the header
	Records  int `json:"records"`
	Skipped  int `json:"skipped"` // rows with too few cells
}

// IngestWorkbook reads the first sheet of wb into records.
// See IngestRows for the per-row rules.
func IngestWorkbook(wb Workbook, maxNameLength int) ([]EquipmentRecord, IngestStats, error) {
	names := wb.SheetNames()
	if len(names) == 0 {
		return nil, IngestStats{}, ErrNoSheets
	}

	rows, err := wb.Rows(names[0])
	if err != nil {
		return nil, IngestStats{}, fmt.Errorf("%w: sheet %q: %v", ErrFileRead, names[0], err)
	}

	return IngestRows(rows, maxNameLength)
}

// IngestRows validates the header row and builds a record from every data
// row that has enough cells, keeping the original order. Short rows are
// dropped and only counted. Zero records is a valid result.
func IngestRows(rows [][]string, maxNameLength int) ([]EquipmentRecord, IngestStats, error) {
	if len(rows) == 0 {
		return nil, IngestStats{}, ErrEmptySheet
	}

	if err := ValidateHeaders(rows[0]); err != nil {
		return nil, IngestStats{}, err
	}

	stats := IngestStats{DataRows: len(rows) - 1}
	records := make([]EquipmentRecord, 0, stats.DataRows)

	for _, row := range rows[1:] {
		rec, ok := BuildRecord(row, maxNameLength)
		if !ok {
			stats.Skipped++
			continue
		}
		records = append(records, rec)
	}

	stats.Records = len(records)
	return records, stats, nil
}
