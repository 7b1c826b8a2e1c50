package core

import "strings"

// CleanCell normalizes a raw cell value from the decoder.
//
// Surrounding whitespace (including non-breaking spaces) is removed, and the
// ="..." wrapper some exporters put around text such as inventory numbers
// with leading zeros is unwrapped.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") && len(s) >= 3 {
		s = s[2 : len(s)-1]
	}

	return strings.TrimSpace(s)
}

// cellAt returns the cleaned cell at position i, or "" if the row is shorter.
func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return CleanCell(row[i])
}

// BuildRecord turns one data row into a record. Rows with fewer than
// MinRowCells cells report false and are meant to be skipped, not reported.
func BuildRecord(row []string, maxNameLength int) (EquipmentRecord, bool) {
	if len(row) < MinRowCells {
		return EquipmentRecord{}, false
	}

	name := cellAt(row, ColName)
	inventory := cellAt(row, ColInventoryNumber)
	period := cellAt(row, ColMaintenancePeriod)
	monthText := cellAt(row, ColMonth)
	yearText := cellAt(row, ColYear)
	engineer := cellAt(row, ColEngineer)

	var done, next string
	if date, ok := ParseMonthYear(monthText, yearText); ok {
		done = FormatDate(date, true)
		next = FormatDate(AddPeriod(date, period), true)
	}

	return NewEquipmentRecord(name, inventory, period, done, next, engineer, maxNameLength), true
}
