package core

// validation.go checks the header row of an equipment export.
//
// The export is positional: the first five header cells must carry the
// required labels in order (case-insensitive, surrounding spaces ignored).
// Cells after the fifth are not checked. Data rows are read by position, so
// ColumnSpec records which cell feeds which record field.

import (
	"strings"
)

// Column positions of a data row.
const (
	ColName              = 0
	ColInventoryNumber   = 1
	ColMaintenancePeriod = 2
	ColMonth             = 3
	ColYear              = 4
	ColReserved          = 5 // not read
	ColEngineer          = 6

	// MinRowCells is the number of cells a data row needs to become a record.
	MinRowCells = 7
)

// ColumnSpec describes one positional column of the export.
type ColumnSpec struct {
	Index    int
	Header   string
	Required bool // header must match at ingestion time
}

// EquipmentColumns lists every column of the export in order. Only the
// Required ones take part in header validation.
var EquipmentColumns = []ColumnSpec{
	{Index: ColName, Header: "Наименование оборудования", Required: true},
	{Index: ColInventoryNumber, Header: "Инвентарный номер", Required: true},
	{Index: ColMaintenancePeriod, Header: "Периодичность ТО", Required: true},
	{Index: ColMonth, Header: "График ТО", Required: true},
	{Index: ColYear, Header: "Год сейчас", Required: true},
	{Index: ColReserved, Header: ""},
	{Index: ColEngineer, Header: "Инженер ОЭиРМО"},
}

// RequiredHeaders is the ordered header prefix every export must start with.
var RequiredHeaders = requiredHeaders(EquipmentColumns)

func requiredHeaders(cols []ColumnSpec) []string {
	var out []string
	for _, c := range cols {
		if c.Required {
			out = append(out, c.Header)
		}
	}
	return out
}

// ValidateHeaders checks that row starts with RequiredHeaders. It returns a
// *HeaderError for a short row or for the first mismatching position.
func ValidateHeaders(row []string) error {
	if len(row) < len(RequiredHeaders) {
		return &HeaderError{}
	}

	for i, want := range RequiredHeaders {
		got := strings.ToLower(strings.TrimSpace(row[i]))
		if got != strings.ToLower(want) {
			return &HeaderError{
				Expected: want,
				Position: i + 1,
				Actual:   row[i],
			}
		}
	}
	return nil
}
