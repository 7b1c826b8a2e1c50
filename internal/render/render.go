// Package render draws a layout plan onto pages through a small set of
// text primitives. The PDF implementation lives in pdf.go; tests use an
// in-memory recorder.
package render

import (
	"fmt"

	"github.com/JonMunkholm/stickers/internal/core"
)

// Renderer is the set of drawing primitives the sticker walker needs.
// A new Renderer starts with its first page already open.
type Renderer interface {
	MeasureWrappedLines(text string, maxWidth float64) []string
	DrawText(text string, x, y float64)
	NewPage()
	PageSize() (width, height float64)
	Save(filename string) error
}

// Options are the sticker sheet dimensions, in points.
type Options struct {
	FontSize         float64
	LineHeightOffset float64
	Margin           float64
	Gap              float64
	LeftOffset       float64
	TextPadding      float64
	TextMargin       float64
}

// DefaultOptions matches the pre-cut A4 sticker sheets the service prints on.
func DefaultOptions() Options {
	return Options{
		FontSize:         5.7,
		LineHeightOffset: 2,
		Margin:           20,
		Gap:              15,
		TextPadding:      5,
		TextMargin:       10,
	}
}

// LineHeight is the vertical advance between text lines.
func (o Options) LineHeight() float64 {
	return o.FontSize + o.LineHeightOffset
}

// Geometry is the cell size of a template on a page.
type Geometry struct {
	PageWidth  float64
	PageHeight float64
	ColWidth   float64
	RowHeight  float64
	opts       Options
}

// NewGeometry splits the page area inside the margins into tpl.Cols × tpl.Rows
// cells separated by the gap.
func NewGeometry(pageWidth, pageHeight float64, tpl core.GridTemplate, opts Options) (Geometry, error) {
	if tpl.Cols <= 0 || tpl.Rows <= 0 {
		return Geometry{}, fmt.Errorf("%w: %d×%d", core.ErrInvalidTemplate, tpl.Cols, tpl.Rows)
	}

	usableWidth := pageWidth - opts.Margin*2 - opts.Gap*float64(tpl.Cols-1)
	usableHeight := pageHeight - opts.Margin*2 - opts.Gap*float64(tpl.Rows-1)

	return Geometry{
		PageWidth:  pageWidth,
		PageHeight: pageHeight,
		ColWidth:   usableWidth / float64(tpl.Cols),
		RowHeight:  usableHeight / float64(tpl.Rows),
		opts:       opts,
	}, nil
}

// Origin returns the top-left corner of the cell at row, col.
func (g Geometry) Origin(row, col int) (x, y float64) {
	x = g.opts.Margin + g.opts.LeftOffset + float64(col)*(g.ColWidth+g.opts.Gap)
	y = g.opts.Margin + float64(row)*(g.RowHeight+g.opts.Gap)
	return x, y
}

// Draw walks plan and draws every populated cell. It opens a new page
// between plan pages, never before the first one.
func Draw(r Renderer, records []core.EquipmentRecord, plan core.LayoutPlan, opts Options) error {
	if len(records) < plan.RecordCount {
		return fmt.Errorf("draw: plan covers %d records, got %d", plan.RecordCount, len(records))
	}

	width, height := r.PageSize()
	geom, err := NewGeometry(width, height, plan.Template, opts)
	if err != nil {
		return err
	}

	for i, page := range plan.Pages {
		if i > 0 {
			r.NewPage()
		}
		for _, cell := range page.Cells {
			if cell.Empty() {
				continue
			}
			x, y := geom.Origin(cell.Row, cell.Col)
			drawSticker(r, records[cell.Record], x, y, geom, opts)
		}
	}
	return nil
}

// drawSticker writes the record's lines top-down inside its cell, wrapping
// long lines and dropping whatever does not fit the cell height.
func drawSticker(r Renderer, rec core.EquipmentRecord, x, y float64, geom Geometry, opts Options) {
	lineHeight := opts.LineHeight()
	bottom := y + geom.RowHeight
	maxWidth := geom.ColWidth - opts.TextMargin
	currentY := y + lineHeight

	for _, line := range core.DisplayLines(rec) {
		if currentY+lineHeight > bottom {
			return
		}
		for _, wrapped := range r.MeasureWrappedLines(line, maxWidth) {
			if currentY+lineHeight > bottom {
				break
			}
			r.DrawText(wrapped, x+opts.TextPadding, currentY)
			currentY += lineHeight
		}
	}
}

// Render draws plan and saves the document to filename.
func Render(r Renderer, records []core.EquipmentRecord, plan core.LayoutPlan, opts Options, filename string) error {
	if len(plan.Pages) == 0 {
		return core.ErrNoData
	}
	if err := Draw(r, records, plan, opts); err != nil {
		return err
	}
	return r.Save(filename)
}
