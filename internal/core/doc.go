// Package core turns an equipment maintenance export into printable sticker
// layouts.
//
// The package has no UI, decoding or rendering dependencies. It is used by
// the HTTP server, the CLI and tests alike.
//
// # Pipeline
//
//  1. A decoder (see package sheet) yields a [Workbook]: sheet names and rows
//     of cell text.
//  2. [IngestWorkbook] checks the first row with [ValidateHeaders] and turns
//     each data row into an [EquipmentRecord] with [BuildRecord]. Rows with
//     fewer than seven cells are dropped without an error.
//  3. [BuildRecord] uses [ParseMonthYear], [FormatDate] and [AddPeriod] to
//     fill the "done" and "next" maintenance dates. Unparseable dates leave
//     the fields empty.
//  4. [Plan] assigns record positions to the cells of a [GridTemplate],
//     page by page and row-major within a page.
//  5. A [PDFWriter] (see package render) draws the plan.
//
// [Service] wires these steps for uploaded files, bounds concurrency with a
// [JobLimiter] and records every run in a [RunStore].
//
// # Errors
//
// Structural problems (no sheets, empty sheet, bad headers, unknown or
// invalid template) reject the whole run and are reported with sentinel
// errors that [MapError] translates into user messages with support codes.
package core
