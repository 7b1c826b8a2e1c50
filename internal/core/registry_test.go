package core

import (
	"errors"
	"testing"
)

func TestLookupTemplate(t *testing.T) {
	tests := []struct {
		key        string
		cols, rows int
	}{
		{"3x8", 3, 8},
		{"3x7", 3, 7},
		{"2x10", 2, 10},
		{"4x6", 4, 6},
	}

	for _, tt := range tests {
		tpl, err := LookupTemplate(tt.key)
		if err != nil {
			t.Fatalf("LookupTemplate(%q) error = %v", tt.key, err)
		}
		if tpl.Cols != tt.cols || tpl.Rows != tt.rows {
			t.Errorf("LookupTemplate(%q) = %dx%d, want %dx%d", tt.key, tpl.Cols, tpl.Rows, tt.cols, tt.rows)
		}
	}

	if _, err := LookupTemplate("5x5"); !errors.Is(err, ErrUnknownTemplate) {
		t.Errorf("LookupTemplate(5x5) error = %v, want ErrUnknownTemplate", err)
	}
}

func TestDefaultTemplate(t *testing.T) {
	tpl := DefaultTemplate()
	if tpl.Key != "3x8" || tpl.Capacity() != 24 {
		t.Errorf("DefaultTemplate() = %+v", tpl)
	}
}

func TestTemplates_DefaultFirst(t *testing.T) {
	list := Templates()
	if len(list) != TemplateCount() {
		t.Fatalf("len(Templates()) = %d, TemplateCount() = %d", len(list), TemplateCount())
	}
	if list[0].Key != DefaultTemplateKey {
		t.Errorf("first template = %q, want %q", list[0].Key, DefaultTemplateKey)
	}
	for i := 2; i < len(list); i++ {
		if list[i-1].Key > list[i].Key {
			t.Errorf("templates not sorted after default: %q before %q", list[i-1].Key, list[i].Key)
		}
	}
}

func TestRegisterTemplate_Panics(t *testing.T) {
	tests := []struct {
		name string
		tpl  GridTemplate
	}{
		{"duplicate", GridTemplate{Key: "3x8", Cols: 3, Rows: 8}},
		{"zero cols", GridTemplate{Key: "0x8-test", Cols: 0, Rows: 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("RegisterTemplate() did not panic")
				}
			}()
			RegisterTemplate(tt.tpl)
		})
	}
}
