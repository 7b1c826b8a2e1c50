// Package sheet decodes uploaded spreadsheets into rows of cell text.
//
// Supported inputs:
//
//   - .xlsx / .xlsm: read with excelize; cells come back as displayed text,
//     so dates and numbers keep the formatting of the workbook.
//   - .csv: comma or semicolon separated, UTF-8 (with or without BOM) or
//     Windows-1251, which is what Russian Excel writes by default.
//
// The legacy binary .xls format is not supported.
package sheet

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/JonMunkholm/stickers/internal/core"
)

// Workbook is an in-memory decoded file. It implements core.Workbook.
type Workbook struct {
	names []string
	rows  map[string][][]string
}

// NewWorkbook builds a workbook from already decoded sheets. The order of
// names is the sheet order.
func NewWorkbook(names []string, rows map[string][][]string) *Workbook {
	if rows == nil {
		rows = make(map[string][][]string)
	}
	return &Workbook{names: names, rows: rows}
}

// SheetNames returns the sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	return w.names
}

// Rows returns the rows of the named sheet.
func (w *Workbook) Rows(sheet string) ([][]string, error) {
	rows, ok := w.rows[sheet]
	if !ok {
		return nil, fmt.Errorf("sheet %q not found", sheet)
	}
	return rows, nil
}

// Format is a supported input format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// DetectFormat picks the decoder from the file extension.
func DetectFormat(fileName string) (Format, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q", core.ErrInvalidFormat, fileName)
	}
}

// Decode reads r according to the extension of fileName.
// Decoder failures wrap core.ErrFileRead.
func Decode(r io.Reader, fileName string) (*Workbook, error) {
	if r == nil {
		return nil, core.ErrNoFile
	}

	format, err := DetectFormat(fileName)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatXLSX:
		return decodeXLSX(r)
	default:
		return decodeCSV(r)
	}
}

// Decoder adapts Decode to core.DecodeFunc.
func Decoder(r io.Reader, fileName string) (core.Workbook, error) {
	wb, err := Decode(r, fileName)
	if err != nil {
		return nil, err
	}
	return wb, nil
}
