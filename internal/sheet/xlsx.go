package sheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/stickers/internal/core"
)

func decodeXLSX(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrFileRead, err)
	}
	defer f.Close()

	names := f.GetSheetList()
	rows := make(map[string][][]string, len(names))

	// Only the first sheet is ingested; the others are listed but not read.
	if len(names) > 0 {
		first, err := f.GetRows(names[0])
		if err != nil {
			return nil, fmt.Errorf("%w: sheet %q: %v", core.ErrFileRead, names[0], err)
		}
		rows[names[0]] = trimTrailingEmptyRows(first)
	}

	return NewWorkbook(names, rows), nil
}

// trimTrailingEmptyRows drops rows at the end of a sheet that have no cells,
// which excelize reports for formatted but empty trailing rows.
func trimTrailingEmptyRows(rows [][]string) [][]string {
	end := len(rows)
	for end > 0 && len(rows[end-1]) == 0 {
		end--
	}
	return rows[:end]
}

// WriteTemplate writes an empty export with the expected header row, so
// users can start from a file that passes header validation.
func WriteTemplate(w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Оборудование"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	for _, col := range core.EquipmentColumns {
		cell, err := excelize.CoordinatesToCellName(col.Index+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, col.Header); err != nil {
			return fmt.Errorf("set header %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, bold); err != nil {
			return fmt.Errorf("style header %s: %w", cell, err)
		}
	}

	if err := f.SetColWidth(sheetName, "A", "A", 40); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetName, "B", "G", 20); err != nil {
		return err
	}

	return f.Write(w)
}
