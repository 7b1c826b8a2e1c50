package core

import (
	"errors"
	"strings"
	"testing"
)

func validHeaderRow() []string {
	return []string{
		"Наименование оборудования",
		"Инвентарный номер",
		"Периодичность ТО",
		"График ТО",
		"Год сейчас",
		"",
		"Инженер ОЭиРМО",
	}
}

func TestValidateHeaders_Accepts(t *testing.T) {
	tests := []struct {
		name string
		row  []string
	}{
		{"exact", validHeaderRow()},
		{"required prefix only", validHeaderRow()[:5]},
		{"case and spaces", []string{
			"  наименование ОБОРУДОВАНИЯ ",
			"ИНВЕНТАРНЫЙ НОМЕР",
			"периодичность то",
			"График ТО ",
			" год сейчас",
		}},
		{"extra columns ignored", append(validHeaderRow(), "Примечание", "Цех")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateHeaders(tt.row); err != nil {
				t.Errorf("ValidateHeaders() = %v, want nil", err)
			}
		})
	}
}

func TestValidateHeaders_Rejects(t *testing.T) {
	swapped := validHeaderRow()
	swapped[0], swapped[1] = swapped[1], swapped[0]

	tests := []struct {
		name     string
		row      []string
		position int
		expected string
	}{
		{"reordered", swapped, 1, "Наименование оборудования"},
		{"too short", validHeaderRow()[:4], 0, ""},
		{"empty", nil, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHeaders(tt.row)
			if !errors.Is(err, ErrInvalidHeaders) {
				t.Fatalf("ValidateHeaders() = %v, want ErrInvalidHeaders", err)
			}

			var herr *HeaderError
			if !errors.As(err, &herr) {
				t.Fatalf("error %T is not *HeaderError", err)
			}
			if herr.Position != tt.position {
				t.Errorf("Position = %d, want %d", herr.Position, tt.position)
			}
			if herr.Expected != tt.expected {
				t.Errorf("Expected = %q, want %q", herr.Expected, tt.expected)
			}
		})
	}
}

func TestHeaderError_Message(t *testing.T) {
	err := &HeaderError{Expected: "График ТО", Position: 4, Actual: "График"}
	msg := err.Error()

	for _, want := range []string{`"График ТО"`, "позиции 4", `"График"`} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q does not contain %q", msg, want)
		}
	}

	short := (&HeaderError{}).Error()
	if short != "Заголовки отсутствуют или неполные." {
		t.Errorf("short row message = %q", short)
	}
}

func TestRequiredHeaders(t *testing.T) {
	if len(RequiredHeaders) != 5 {
		t.Fatalf("len(RequiredHeaders) = %d, want 5", len(RequiredHeaders))
	}
	if RequiredHeaders[4] != "Год сейчас" {
		t.Errorf("RequiredHeaders[4] = %q", RequiredHeaders[4])
	}
}

func TestValidateHeaders_TypoAtEachPosition(t *testing.T) {
	typos := []string{
		"Наименование оборудованя",
		"Инвентарный номeр", // latin e
		"Периодичность ТО2",
		"График Т0",
		"Год сейчаc", // latin c
	}

	for i, typo := range typos {
		row := validHeaderRow()
		row[i] = typo

		err := ValidateHeaders(row)
		var herr *HeaderError
		if !errors.As(err, &herr) {
			t.Fatalf("typo at position %d: ValidateHeaders() = %v, want *HeaderError", i+1, err)
		}
		if herr.Position != i+1 || herr.Expected != RequiredHeaders[i] || herr.Actual != typo {
			t.Errorf("typo at position %d: got %+v", i+1, herr)
		}
	}
}
