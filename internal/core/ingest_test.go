package core

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type fakeWorkbook struct {
	sheets []string
	rows   map[string][][]string
	err    error
}

func (w fakeWorkbook) SheetNames() []string { return w.sheets }

func (w fakeWorkbook) Rows(sheet string) ([][]string, error) {
	if w.err != nil {
		return nil, w.err
	}
	return w.rows[sheet], nil
}

func equipmentRow(name, inv, period, month, year, engineer string) []string {
	return []string{name, inv, period, month, year, "", engineer}
}

func TestIngestRows(t *testing.T) {
	rows := [][]string{
		validHeaderRow(),
		equipmentRow("Насос", "001", "12 месяцев", "Март", "2024", "Петров"),
		{"Обрывок", "002", "1 год", "Май"},
		equipmentRow("Компрессор", "003", "1 год", "Май", "2023", "Сидоров"),
	}

	records, stats, err := IngestRows(rows, DefaultMaxNameLength)
	if err != nil {
		t.Fatalf("IngestRows() error = %v", err)
	}

	wantStats := IngestStats{DataRows: 3, Records: 2, Skipped: 1}
	if diff := cmp.Diff(wantStats, stats); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}

	var names []string
	for _, r := range records {
		names = append(names, r.Name)
	}
	if diff := cmp.Diff([]string{"Насос", "Компрессор"}, names); diff != "" {
		t.Errorf("record order mismatch (-want +got):\n%s", diff)
	}
	if records[1].MaintenanceNext != "Май 2024 г." {
		t.Errorf("records[1].MaintenanceNext = %q", records[1].MaintenanceNext)
	}
}

func TestIngestRows_HeaderOnly(t *testing.T) {
	records, stats, err := IngestRows([][]string{validHeaderRow()}, DefaultMaxNameLength)
	if err != nil {
		t.Fatalf("IngestRows() error = %v", err)
	}
	if len(records) != 0 || stats.DataRows != 0 {
		t.Errorf("got %d records, %d data rows; want none", len(records), stats.DataRows)
	}
}

func TestIngestRows_Errors(t *testing.T) {
	badHeader := validHeaderRow()
	badHeader[3] = "График"

	tests := []struct {
		name string
		rows [][]string
		want error
	}{
		{"no rows", nil, ErrEmptySheet},
		{"bad header", [][]string{badHeader, equipmentRow("a", "b", "c", "d", "e", "f")}, ErrInvalidHeaders},
		{"short header", [][]string{{"Наименование оборудования"}}, ErrInvalidHeaders},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := IngestRows(tt.rows, DefaultMaxNameLength)
			if !errors.Is(err, tt.want) {
				t.Errorf("IngestRows() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestIngestWorkbook_FirstSheetOnly(t *testing.T) {
	wb := fakeWorkbook{
		sheets: []string{"Оборудование", "Архив"},
		rows: map[string][][]string{
			"Оборудование": {validHeaderRow(), equipmentRow("Насос", "1", "1 год", "Май", "2024", "")},
			"Архив":        {validHeaderRow(), equipmentRow("Старый", "2", "1 год", "Май", "2020", "")},
		},
	}

	records, _, err := IngestWorkbook(wb, DefaultMaxNameLength)
	if err != nil {
		t.Fatalf("IngestWorkbook() error = %v", err)
	}
	if len(records) != 1 || records[0].Name != "Насос" {
		t.Errorf("records = %+v, want only the first sheet", records)
	}
}

func TestIngestWorkbook_Errors(t *testing.T) {
	tests := []struct {
		name string
		wb   fakeWorkbook
		want error
	}{
		{"no sheets", fakeWorkbook{}, ErrNoSheets},
		{"empty sheet", fakeWorkbook{sheets: []string{"Лист1"}}, ErrEmptySheet},
		{"read failure", fakeWorkbook{sheets: []string{"Лист1"}, err: errors.New("corrupt")}, ErrFileRead},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := IngestWorkbook(tt.wb, DefaultMaxNameLength)
			if !errors.Is(err, tt.want) {
				t.Errorf("IngestWorkbook() error = %v, want %v", err, tt.want)
			}
		})
	}
}
