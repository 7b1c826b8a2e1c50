package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"no file", ErrNoFile, "FILE001"},
		{"file read wrapped", fmt.Errorf("%w: bad zip", ErrFileRead), "FILE002"},
		{"invalid format", ErrInvalidFormat, "FILE003"},
		{"too large", fmt.Errorf("%w: 30MB", ErrFileTooLarge), "FILE004"},
		{"empty result", ErrEmptyResult, "FILE005"},
		{"no sheets", ErrNoSheets, "VAL001"},
		{"empty sheet", ErrEmptySheet, "VAL002"},
		{"headers", &HeaderError{}, "VAL003"},
		{"invalid template", ErrInvalidTemplate, "TPL001"},
		{"unknown template", fmt.Errorf("%w: 9x9", ErrUnknownTemplate), "TPL002"},
		{"no data", ErrNoData, "PDF001"},
		{"too many jobs", ErrTooManyJobs, "JOB001"},
		{"canceled", context.Canceled, "JOB002"},
		{"deadline", fmt.Errorf("render: %w", context.DeadlineExceeded), "JOB003"},
		{"rate limit", errors.New("Rate limit exceeded"), "RATE001"},
		{"unknown", errors.New("boom"), "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError(%v).Code = %q, want %q", tt.err, got.Code, tt.wantCode)
			}
			if got.Message == "" || got.Action == "" {
				t.Errorf("MapError(%v) = %+v, want message and action", tt.err, got)
			}
		})
	}
}

func TestMapError_Nil(t *testing.T) {
	if got := MapError(nil); got != (UserMessage{}) {
		t.Errorf("MapError(nil) = %+v, want zero", got)
	}
	if got := FormatUserError(nil); got != "" {
		t.Errorf("FormatUserError(nil) = %q, want empty", got)
	}
}

func TestMapError_HeaderDetails(t *testing.T) {
	err := fmt.Errorf("ingest: %w", &HeaderError{Expected: "Год сейчас", Position: 5, Actual: "Год"})

	got := MapError(err)
	if got.Code != "VAL003" {
		t.Fatalf("Code = %q, want VAL003", got.Code)
	}
	if !strings.Contains(got.Message, "позиции 5") {
		t.Errorf("Message = %q, want header details", got.Message)
	}
}

func TestFormatUserError(t *testing.T) {
	got := FormatUserError(ErrNoData)
	want := "Нет данных для генерации PDF (Код: PDF001). Загрузите файл с данными об оборудовании"
	if got != want {
		t.Errorf("FormatUserError() = %q, want %q", got, want)
	}
}

func TestIsUserFacing(t *testing.T) {
	if !IsUserFacing(ErrInvalidFormat) {
		t.Error("IsUserFacing(ErrInvalidFormat) = false")
	}
	if IsUserFacing(errors.New("boom")) {
		t.Error("IsUserFacing(boom) = true")
	}
	if IsUserFacing(nil) {
		t.Error("IsUserFacing(nil) = true")
	}
}
