package render

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/JonMunkholm/stickers/internal/core"
)

const (
	defaultFontFamily = "DejaVu"
	coreFontFamily    = "Helvetica"
)

// PDF is a Renderer backed by an A4 portrait fpdf document in points.
type PDF struct {
	doc       *fpdf.Fpdf
	sanitize  func(string) string
	translate func(string) string
}

// NewPDF opens a document with its first page. When font is nil the core
// Helvetica font is used, which has no Cyrillic glyphs.
func NewPDF(font *Font, fontSize float64) (*PDF, error) {
	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.SetMargins(0, 0, 0)

	identity := func(s string) string { return s }
	p := &PDF{doc: doc, sanitize: identity, translate: identity}
	if font != nil {
		doc.AddUTF8FontFromBytes(font.Family, "", font.Data)
		doc.SetFont(font.Family, "", fontSize)
	} else {
		doc.SetFont(coreFontFamily, "", fontSize)
		p.sanitize = latin1Only
		p.translate = doc.UnicodeTranslatorFromDescriptor("")
	}
	doc.AddPage()

	if err := doc.Error(); err != nil {
		return nil, fmt.Errorf("init pdf: %w", err)
	}
	return p, nil
}

func (p *PDF) MeasureWrappedLines(text string, maxWidth float64) []string {
	if text == "" {
		return nil
	}
	text = p.sanitize(text)
	if maxWidth <= 0 {
		return []string{text}
	}
	return p.doc.SplitText(text, maxWidth)
}

func (p *PDF) DrawText(text string, x, y float64) {
	p.doc.Text(x, y, p.translate(p.sanitize(text)))
}

func (p *PDF) NewPage() {
	p.doc.AddPage()
}

func (p *PDF) PageSize() (width, height float64) {
	return p.doc.GetPageSize()
}

func (p *PDF) Save(filename string) error {
	if err := p.doc.OutputFileAndClose(filename); err != nil {
		return fmt.Errorf("save pdf %s: %w", filename, err)
	}
	return nil
}

// Write streams the document to w.
func (p *PDF) Write(w io.Writer) error {
	if err := p.doc.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// latin1Only replaces runes the core fonts have no width for.
func latin1Only(s string) string {
	return strings.Map(func(r rune) rune {
		if r > 0xFF {
			return '?'
		}
		return r
	}, s)
}

// Font is a UTF-8 TrueType font loaded into memory.
type Font struct {
	Family string
	Data   []byte
}

// LoadFont reads a TTF file. An empty family defaults to "DejaVu".
func LoadFont(path, family string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load font %s: %w", path, err)
	}
	if family == "" {
		family = defaultFontFamily
	}
	return &Font{Family: family, Data: data}, nil
}

// PDFWriter renders sticker sheets to PDF. It implements core.PDFWriter.
type PDFWriter struct {
	font *Font
	opts Options
}

// NewPDFWriter loads the font at fontPath once. A blank path or an
// unreadable font falls back to Helvetica with a warning.
func NewPDFWriter(fontPath, fontFamily string, opts Options) *PDFWriter {
	w := &PDFWriter{opts: opts}
	if fontPath == "" {
		slog.Warn("no sticker font configured, Cyrillic text will not render", "fallback", coreFontFamily)
		return w
	}

	font, err := LoadFont(fontPath, fontFamily)
	if err != nil {
		slog.Warn("sticker font unavailable", "path", fontPath, "error", err, "fallback", coreFontFamily)
		return w
	}
	w.font = font
	return w
}

// Options returns the layout options used for every document.
func (w *PDFWriter) Options() Options {
	return w.opts
}

// WritePDF draws plan into a fresh document and streams it to out.
func (w *PDFWriter) WritePDF(out io.Writer, records []core.EquipmentRecord, plan core.LayoutPlan) error {
	if len(plan.Pages) == 0 {
		return core.ErrNoData
	}

	doc, err := NewPDF(w.font, w.opts.FontSize)
	if err != nil {
		return err
	}
	if err := Draw(doc, records, plan, w.opts); err != nil {
		return err
	}
	return doc.Write(out)
}

// WriteFile renders plan to a file at path.
func (w *PDFWriter) WriteFile(path string, records []core.EquipmentRecord, plan core.LayoutPlan) error {
	doc, err := NewPDF(w.font, w.opts.FontSize)
	if err != nil {
		return err
	}
	return Render(doc, records, plan, w.opts, path)
}
