package sheet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/JonMunkholm/stickers/internal/core"
)

const headerCSV = "Наименование оборудования,Инвентарный номер,Периодичность ТО,График ТО,Год сейчас,,Инженер ОЭиРМО\n"

func firstSheetRows(t *testing.T, wb *Workbook) [][]string {
	t.Helper()
	names := wb.SheetNames()
	require.NotEmpty(t, names)
	rows, err := wb.Rows(names[0])
	require.NoError(t, err)
	return rows
}

func buildXLSX(t *testing.T, sheets map[string][][]any, order []string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name    string
		want    Format
		wantErr bool
	}{
		{"equipment.xlsx", FormatXLSX, false},
		{"EQUIPMENT.XLSX", FormatXLSX, false},
		{"macro.xlsm", FormatXLSX, false},
		{"export.csv", FormatCSV, false},
		{"legacy.xls", "", true},
		{"notes.txt", "", true},
		{"noext", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFormat(tt.name)
			if tt.wantErr {
				assert.ErrorIs(t, err, core.ErrInvalidFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode_NilReader(t *testing.T) {
	_, err := Decode(nil, "a.xlsx")
	assert.ErrorIs(t, err, core.ErrNoFile)
}

func TestDecode_XLSX(t *testing.T) {
	data := buildXLSX(t, map[string][][]any{
		"Оборудование": {
			{"Наименование оборудования", "Инвентарный номер", "Периодичность ТО", "График ТО", "Год сейчас", "", "Инженер ОЭиРМО"},
			{"Насос", "001", "12 месяцев", "Март", 2024, "", "Петров"},
		},
		"Архив": {
			{"что-то другое"},
		},
	}, []string{"Оборудование", "Архив"})

	wb, err := Decode(bytes.NewReader(data), "equipment.xlsx")
	require.NoError(t, err)

	assert.Equal(t, []string{"Оборудование", "Архив"}, wb.SheetNames())

	rows := firstSheetRows(t, wb)
	require.Len(t, rows, 2)
	assert.Equal(t, "Насос", rows[1][0])
	assert.Equal(t, "2024", rows[1][4])

	// Only the first sheet is read.
	_, err = wb.Rows("Архив")
	assert.Error(t, err)

	records, stats, err := core.IngestWorkbook(wb, core.DefaultMaxNameLength)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Март 2025 г.", records[0].MaintenanceNext)
	assert.Equal(t, 0, stats.Skipped)
}

func TestDecode_XLSXCorrupt(t *testing.T) {
	_, err := Decode(strings.NewReader("not a zip"), "broken.xlsx")
	assert.ErrorIs(t, err, core.ErrFileRead)
}

func TestTrimTrailingEmptyRows(t *testing.T) {
	rows := [][]string{{"a"}, {}, {"b"}, {}, {}}
	assert.Equal(t, [][]string{{"a"}, {}, {"b"}}, trimTrailingEmptyRows(rows))
	assert.Empty(t, trimTrailingEmptyRows([][]string{{}, {}}))
}

func TestDecode_CSV(t *testing.T) {
	input := headerCSV +
		"Насос,001,12 месяцев,Март,2024,,Петров\n" +
		"\"Компрессор, малый\",=\"002\",1 год,Май,2023,,Сидоров\n" +
		"Обрывок,003\n"

	wb, err := Decode(strings.NewReader(input), "export.csv")
	require.NoError(t, err)

	assert.Equal(t, []string{CSVSheetName}, wb.SheetNames())
	rows := firstSheetRows(t, wb)
	require.Len(t, rows, 4)
	assert.Equal(t, "Компрессор, малый", rows[2][0])

	records, stats, err := core.IngestWorkbook(wb, core.DefaultMaxNameLength)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 1, stats.Skipped)
	assert.Equal(t, "002", records[1].InventoryNumber)
}

func TestDecode_CSVSemicolon(t *testing.T) {
	input := strings.ReplaceAll(headerCSV, ",", ";") +
		"Насос, большой;001;1 год;Май;2024;;Петров\n"

	wb, err := Decode(strings.NewReader(input), "export.csv")
	require.NoError(t, err)

	rows := firstSheetRows(t, wb)
	require.Len(t, rows, 2)
	assert.Len(t, rows[1], 7)
	assert.Equal(t, "Насос, большой", rows[1][0])
}

func TestDecode_CSVWithBOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte(headerCSV)...)

	wb, err := Decode(bytes.NewReader(input), "export.csv")
	require.NoError(t, err)

	rows := firstSheetRows(t, wb)
	assert.Equal(t, "Наименование оборудования", rows[0][0])
	assert.NoError(t, core.ValidateHeaders(rows[0]))
}

func TestDecode_CSVWindows1251(t *testing.T) {
	utf := headerCSV + "Насос,001,1 год,Май,2024,,Петров\n"

	encoded, err := charmap.Windows1251.NewEncoder().String(utf)
	require.NoError(t, err)

	wb, err := Decode(strings.NewReader(encoded), "export.csv")
	require.NoError(t, err)

	records, _, err := core.IngestWorkbook(wb, core.DefaultMaxNameLength)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Насос", records[0].Name)
	assert.Equal(t, "Май 2024 г.", records[0].MaintenanceDone)
	assert.Equal(t, "Петров", records[0].Engineer)
}

func TestDecode_CSVEmpty(t *testing.T) {
	wb, err := Decode(strings.NewReader(""), "empty.csv")
	require.NoError(t, err)

	_, _, err = core.IngestWorkbook(wb, core.DefaultMaxNameLength)
	assert.ErrorIs(t, err, core.ErrEmptySheet)
}

func TestDecoder_ImplementsCore(t *testing.T) {
	var decode core.DecodeFunc = Decoder

	wb, err := decode(strings.NewReader(headerCSV), "a.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{CSVSheetName}, wb.SheetNames())

	_, err = decode(strings.NewReader(headerCSV), "a.xls")
	assert.ErrorIs(t, err, core.ErrInvalidFormat)
}

func TestWriteTemplate(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTemplate(&buf))

	wb, err := Decode(bytes.NewReader(buf.Bytes()), "template.xlsx")
	require.NoError(t, err)

	rows := firstSheetRows(t, wb)
	require.Len(t, rows, 1)
	assert.NoError(t, core.ValidateHeaders(rows[0]))
	assert.Equal(t, "Инженер ОЭиРМО", rows[0][core.ColEngineer])

	_, _, err = core.IngestWorkbook(wb, core.DefaultMaxNameLength)
	assert.NoError(t, err)
}
