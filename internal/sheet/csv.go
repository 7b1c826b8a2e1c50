package sheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/JonMunkholm/stickers/internal/core"
)

// CSVSheetName is the single sheet name reported for CSV input.
const CSVSheetName = "CSV"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func decodeCSV(r io.Reader) (*Workbook, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrFileRead, err)
	}

	text, err := toUTF8(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrFileRead, err)
	}

	reader := csv.NewReader(bytes.NewReader(text))
	reader.Comma = detectDelimiter(text)
	reader.FieldsPerRecord = -1 // rows may be ragged; short rows are skipped later
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return nil, fmt.Errorf("%w: line %d: %v", core.ErrFileRead, perr.Line, perr.Err)
		}
		return nil, fmt.Errorf("%w: %v", core.ErrFileRead, err)
	}

	return NewWorkbook([]string{CSVSheetName}, map[string][][]string{CSVSheetName: rows}), nil
}

// toUTF8 strips a UTF-8 BOM, or decodes the bytes as Windows-1251 when they
// are not valid UTF-8.
func toUTF8(data []byte) ([]byte, error) {
	if bytes.HasPrefix(data, utf8BOM) {
		return data[len(utf8BOM):], nil
	}
	if utf8.Valid(data) {
		return data, nil
	}

	out, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), charmap.Windows1251.NewDecoder()))
	if err != nil {
		return nil, fmt.Errorf("decode windows-1251: %w", err)
	}
	return out, nil
}

// detectDelimiter picks ';' when the header line has more semicolons than
// commas. Excel with a Russian locale saves CSV with semicolons.
func detectDelimiter(text []byte) rune {
	line := text
	if i := bytes.IndexByte(text, '\n'); i >= 0 {
		line = text[:i]
	}
	if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
		return ';'
	}
	return ','
}
