// Package render turns a laid out sheet into a single-page PDF document.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"datesheet/internal/core"
)

const fontFamily = "datesheet"

// ErrSerialize is returned when the PDF library fails to produce a document.
var ErrSerialize = errors.New("pdf serialization error")

// Renderer draws sheets with one preloaded font. The font bytes are never
// modified, so a Renderer may be shared between goroutines.
type Renderer struct {
	font     []byte
	fontName string
}

// New loads the font once and returns a ready Renderer.
func New(src FontSource) (*Renderer, error) {
	data, err := loadFont(src)
	if err != nil {
		return nil, err
	}
	return &Renderer{font: data, fontName: src.Name()}, nil
}

// FontName identifies the font source the renderer was built from.
func (r *Renderer) FontName() string {
	return r.fontName
}

// RenderMonth lays out the month containing start and renders it.
func (r *Renderer) RenderMonth(start time.Time, size core.PageSize) ([]byte, error) {
	sheet, err := core.Layout(start, size)
	if err != nil {
		return nil, err
	}
	return r.Render(sheet)
}

// Render draws the primitives of sheet in order and returns the PDF bytes.
// Nothing is returned unless the whole document was produced.
func (r *Renderer) Render(sheet core.Sheet) ([]byte, error) {
	page := sheet.Geometry.Page
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: page.Width, Ht: page.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(Title(sheet.Month), false)
	pdf.SetCreator("datesheet", false)

	if err := addFont(pdf, r.font); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFont, r.fontName, err)
	}

	pdf.AddPage()
	pdf.SetFont(fontFamily, "", 12)

	for _, p := range sheet.Primitives {
		switch p := p.(type) {
		case core.Shape:
			drawShape(pdf, p)
		case core.Label:
			drawLabel(pdf, p)
		default:
			return nil, fmt.Errorf("%w: unknown primitive %T", ErrSerialize, p)
		}
		if pdf.Err() {
			return nil, fmt.Errorf("%w: draw %s: %v", ErrSerialize, p.Kind(), pdf.Error())
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialize, err)
	}
	return buf.Bytes(), nil
}

// addFont registers the font with the document. fpdf panics on some
// malformed TrueType tables, so panics are reported as errors.
func addFont(pdf *fpdf.Fpdf, data []byte) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("register font: %v", rec)
		}
	}()
	pdf.AddUTF8FontFromBytes(fontFamily, "", data)
	if pdf.Err() {
		return pdf.Error()
	}
	return nil
}

func drawShape(pdf *fpdf.Fpdf, s core.Shape) {
	if len(s.Points) < 2 || (!s.Stroke && !s.Fill) {
		return
	}
	style := ""
	if s.Stroke {
		pdf.SetDrawColor(int(s.LineColor.R), int(s.LineColor.G), int(s.LineColor.B))
		pdf.SetLineWidth(s.Thickness)
		style += "D"
	}
	if s.Fill {
		pdf.SetFillColor(int(s.FillColor.R), int(s.FillColor.G), int(s.FillColor.B))
		style += "F"
	}

	pdf.MoveTo(s.Points[0].X, s.Points[0].Y)
	for _, pt := range s.Points[1:] {
		pdf.LineTo(pt.X, pt.Y)
	}
	if s.Closed {
		pdf.ClosePath()
	}
	pdf.DrawPath(style)
}

func drawLabel(pdf *fpdf.Fpdf, l core.Label) {
	pdf.SetTextColor(int(l.Color.R), int(l.Color.G), int(l.Color.B))
	pdf.SetFontUnitSize(l.FontSize)
	pdf.Text(l.Pos.X, l.Pos.Y, l.Text)
}

// Title is the document title stored in the PDF metadata.
func Title(m core.Month) string {
	return "datesheet " + m.String()
}

// Filename is the suggested download name for a month's datesheet.
func Filename(year, month int) string {
	return fmt.Sprintf("datesheet-%04d-%02d.pdf", year, month)
}
