package core

import "unicode/utf8"

// Name length limits for EquipmentRecord.Name, in characters.
const (
	DefaultMaxNameLength = 100
	MinNameLength        = 50
	MaxNameLengthLimit   = 500
)

// EquipmentRecord is the content of one maintenance sticker.
//
// Records are built once by BuildRecord and handed around by value; nothing
// mutates them afterwards. Missing cells are empty strings.
type EquipmentRecord struct {
	Name              string `json:"name"`
	InventoryNumber   string `json:"inventoryNumber"`
	MaintenancePeriod string `json:"maintenancePeriod"`
	MaintenanceDone   string `json:"maintenanceDone"`
	MaintenanceNext   string `json:"maintenanceNext"`
	Engineer          string `json:"engineer"`
}

// NewEquipmentRecord builds a record, cutting name to maxNameLength characters.
func NewEquipmentRecord(name, inventoryNumber, period, done, next, engineer string, maxNameLength int) EquipmentRecord {
	return EquipmentRecord{
		Name:              truncateName(name, maxNameLength),
		InventoryNumber:   inventoryNumber,
		MaintenancePeriod: period,
		MaintenanceDone:   done,
		MaintenanceNext:   next,
		Engineer:          engineer,
	}
}

func truncateName(name string, maxLen int) string {
	if maxLen < 0 {
		maxLen = 0
	}
	if utf8.RuneCountInString(name) <= maxLen {
		return name
	}
	runes := []rune(name)
	return string(runes[:maxLen])
}

// ClampNameLength forces a user-supplied limit into [MinNameLength, MaxNameLengthLimit].
func ClampNameLength(n int) int {
	switch {
	case n < MinNameLength:
		return MinNameLength
	case n > MaxNameLengthLimit:
		return MaxNameLengthLimit
	default:
		return n
	}
}

// DisplayLines returns the sticker text of rec, one labelled field per line.
func DisplayLines(rec EquipmentRecord) []string {
	return []string{
		"Наименование: " + rec.Name,
		"Инв. №: " + rec.InventoryNumber,
		"Периодичность ТО: " + rec.MaintenancePeriod,
		"Проведено ТО: " + rec.MaintenanceDone,
		"Следующее ТО: " + rec.MaintenanceNext,
		"Инженер ОЭиРМО: " + rec.Engineer,
	}
}
