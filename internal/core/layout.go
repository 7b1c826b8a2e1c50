package core

// layout.go places a sequence of records onto pages of cols × rows cells.
//
// Planning works on record positions only, so it is independent of both the
// record contents and the renderer. Pages are filled in input order and each
// page row-major: row 0 left to right, then row 1, and so on. Every page has
// exactly Capacity cells; the unused tail of the last page is empty.

import "fmt"

// EmptyCell marks a cell with no record.
const EmptyCell = -1

// Cell is one sticker slot. Record is an index into the planned sequence
// or EmptyCell.
type Cell struct {
	Row    int `json:"row"`
	Col    int `json:"col"`
	Record int `json:"record"`
}

// Empty reports whether the slot holds no record.
func (c Cell) Empty() bool {
	return c.Record == EmptyCell
}

// Page is one printed sheet. Number is 1-based.
type Page struct {
	Number int    `json:"number"`
	Cells  []Cell `json:"cells"`
}

// Used returns the number of populated cells.
func (p Page) Used() int {
	n := 0
	for _, c := range p.Cells {
		if !c.Empty() {
			n++
		}
	}
	return n
}

// At returns the cell at row r, column c.
func (p Page) At(r, c, cols int) Cell {
	return p.Cells[r*cols+c]
}

// LayoutPlan is the page-by-page assignment of records to cells.
type LayoutPlan struct {
	Template    GridTemplate `json:"template"`
	RecordCount int          `json:"recordCount"`
	Pages       []Page       `json:"pages"`
}

// TotalPages returns ceil(RecordCount / capacity).
func (p LayoutPlan) TotalPages() int {
	return len(p.Pages)
}

// LastPageCount returns the populated cells on the last page, 0 for no pages.
func (p LayoutPlan) LastPageCount() int {
	if len(p.Pages) == 0 {
		return 0
	}
	return p.Pages[len(p.Pages)-1].Used()
}

// Flatten returns the record indices of all populated cells in page order.
func (p LayoutPlan) Flatten() []int {
	out := make([]int, 0, p.RecordCount)
	for _, page := range p.Pages {
		for _, c := range page.Cells {
			if !c.Empty() {
				out = append(out, c.Record)
			}
		}
	}
	return out
}

// Plan lays out recordCount records on tpl. Zero records yield zero pages.
func Plan(recordCount int, tpl GridTemplate) (LayoutPlan, error) {
	capacity := tpl.Capacity()
	if tpl.Cols <= 0 || tpl.Rows <= 0 || capacity <= 0 {
		return LayoutPlan{}, fmt.Errorf("%w: %d×%d", ErrInvalidTemplate, tpl.Cols, tpl.Rows)
	}
	if recordCount < 0 {
		recordCount = 0
	}

	totalPages := (recordCount + capacity - 1) / capacity
	plan := LayoutPlan{
		Template:    tpl,
		RecordCount: recordCount,
		Pages:       make([]Page, 0, totalPages),
	}

	for start := 0; start < recordCount; start += capacity {
		page := Page{
			Number: start/capacity + 1,
			Cells:  make([]Cell, 0, capacity),
		}
		for r := 0; r < tpl.Rows; r++ {
			for c := 0; c < tpl.Cols; c++ {
				idx := start + r*tpl.Cols + c
				if idx >= recordCount {
					idx = EmptyCell
				}
				page.Cells = append(page.Cells, Cell{Row: r, Col: c, Record: idx})
			}
		}
		plan.Pages = append(plan.Pages, page)
	}

	return plan, nil
}

// PlanRecords is Plan for a record slice.
func PlanRecords(records []EquipmentRecord, tpl GridTemplate) (LayoutPlan, error) {
	return Plan(len(records), tpl)
}

// Summary is the short report shown after a file is loaded.
type Summary struct {
	Records         int `json:"records"`
	PagesRequired   int `json:"pagesRequired"`
	LastPageCount   int `json:"lastPageCount"`
	StickersPerPage int `json:"stickersPerPage"`
}

// Summarize reports the counts of plan.
func Summarize(plan LayoutPlan) Summary {
	return Summary{
		Records:         plan.RecordCount,
		PagesRequired:   plan.TotalPages(),
		LastPageCount:   plan.LastPageCount(),
		StickersPerPage: plan.Template.Capacity(),
	}
}

// Lines renders the summary as the messages of the upload page.
func (s Summary) Lines() []string {
	return []string{
		fmt.Sprintf("Данные успешно загружены. Кол-во записей: %d", s.Records),
		fmt.Sprintf("Потребуется листов: %d", s.PagesRequired),
		fmt.Sprintf("Наклеек на последнем листе: %d", s.LastPageCount),
	}
}
