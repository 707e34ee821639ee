package core

import (
	"errors"
	"fmt"
)

// Fixed layout constants, all in millimetres.
const (
	PagePadding    = 5.0
	CellPadding    = 1.0
	HeaderHeight   = 7.0
	LabelWidth     = 50.0
	ColumnFontSize = 5.0
	HeaderOffsetX  = 1.0
	HeaderOffsetY  = (HeaderHeight - ColumnFontSize) / 2

	// Columns is the number of hour columns in every sheet.
	Columns = 24
	// QuarterEvery marks every n-th column boundary as a quarter-day separator.
	QuarterEvery = 6

	rowFontRatio = 0.75
	maxRows      = 31
)

type (
	// PageSize is a page's width and height in millimetres.
	PageSize struct {
		Width  float64
		Height float64
	}

	// Geometry holds every length the layout needs. Coordinates are page
	// millimetres with the origin in the top-left corner and y growing down.
	Geometry struct {
		Page PageSize
		Rows int

		// Left and Top are the outer edges of the label strips.
		Left float64
		Top  float64

		BodyLeft   float64
		BodyTop    float64
		BodyRight  float64
		BodyBottom float64

		CellWidth  float64
		CellHeight float64

		RowFontSize float64
		RowOffsetY  float64
	}
)

// A4Landscape is the default page.
var A4Landscape = PageSize{Width: 297, Height: 210}

var (
	ErrPageTooSmall = errors.New("page too small")
	ErrInvalidRows  = errors.New("invalid row count")
)

// NewGeometry derives the grid geometry for a page holding the given number
// of day rows.
func NewGeometry(size PageSize, rows int) (Geometry, error) {
	if rows < 1 || rows > maxRows {
		return Geometry{}, fmt.Errorf("%w: %d", ErrInvalidRows, rows)
	}

	tableWidth := size.Width - 2*PagePadding - LabelWidth
	tableHeight := size.Height - 2*PagePadding - HeaderHeight
	if tableWidth <= 0 || tableHeight <= 0 {
		return Geometry{}, fmt.Errorf("%w: %gx%gmm", ErrPageTooSmall, size.Width, size.Height)
	}

	g := Geometry{
		Page:       size,
		Rows:       rows,
		Left:       PagePadding,
		Top:        PagePadding,
		BodyLeft:   PagePadding + LabelWidth,
		BodyTop:    PagePadding + HeaderHeight,
		BodyRight:  size.Width - PagePadding,
		BodyBottom: size.Height - PagePadding,
		CellWidth:  tableWidth / Columns,
		CellHeight: tableHeight / float64(rows),
	}
	g.RowFontSize = g.CellHeight * rowFontRatio
	g.RowOffsetY = (g.CellHeight - g.RowFontSize) / 2
	return g, nil
}

// ColumnX returns the x position of column boundary i (0..Columns).
func (g Geometry) ColumnX(i int) float64 {
	return g.BodyLeft + float64(i)*g.CellWidth
}

// RowY returns the y position of row boundary i (0..Rows), counted from the top.
func (g Geometry) RowY(i int) float64 {
	return g.BodyTop + float64(i)*g.CellHeight
}
