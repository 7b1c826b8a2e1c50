package core

import (
	"errors"
	"fmt"
)

// Run-level failures. Each one rejects the whole ingestion or render run;
// malformed data rows and unparseable dates never produce an error.
var (
	// ErrNoFile is returned when no file was supplied.
	ErrNoFile = errors.New("no file provided")

	// ErrFileRead is returned when the file bytes cannot be read or decoded.
	ErrFileRead = errors.New("file read error")

	// ErrInvalidFormat is returned for file extensions the decoder does not support.
	ErrInvalidFormat = errors.New("invalid file format")

	// ErrFileTooLarge is returned when the upload exceeds the configured size limit.
	ErrFileTooLarge = errors.New("file too large")

	// ErrNoSheets is returned when the workbook has no sheets.
	ErrNoSheets = errors.New("workbook has no sheets")

	// ErrEmptySheet is returned when the first sheet has no rows at all.
	ErrEmptySheet = errors.New("first sheet is empty")

	// ErrInvalidHeaders is the sentinel wrapped by *HeaderError.
	ErrInvalidHeaders = errors.New("invalid headers")

	// ErrInvalidTemplate is returned for grid templates with non-positive dimensions.
	ErrInvalidTemplate = errors.New("invalid template")

	// ErrUnknownTemplate is returned when a template key is not in the catalog.
	ErrUnknownTemplate = errors.New("unknown template")

	// ErrEmptyResult is returned by callers that treat zero usable records as a failure.
	ErrEmptyResult = errors.New("empty file")

	// ErrNoData is returned when rendering is requested for zero records.
	ErrNoData = errors.New("no data to render")
)

// HeaderError describes the first header cell that does not match the
// required label. Position is 1-based; 0 means the header row is too short.
type HeaderError struct {
	Expected string
	Position int
	Actual   string
}

func (e *HeaderError) Error() string {
	if e.Position == 0 {
		return "Заголовки отсутствуют или неполные."
	}
	return fmt.Sprintf("Неверный формат заголовков. Ожидалось %q на позиции %d, найдено %q.",
		e.Expected, e.Position, e.Actual)
}

// Unwrap lets errors.Is(err, ErrInvalidHeaders) match.
func (e *HeaderError) Unwrap() error {
	return ErrInvalidHeaders
}
