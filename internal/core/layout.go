package core

import (
	"fmt"
	"time"
)

// pointMM is one typographic point in millimetres.
const pointMM = 25.4 / 72

// Stroke widths in millimetres.
const (
	ThinLine  = 0.5 * pointMM
	ThickLine = 1.0 * pointMM
)

const (
	LayerBorder Layer = iota
	LayerExtension
	LayerShading
	LayerColumnLine
	LayerRowLine
	LayerColumnLabel
	LayerRowLabel
)

type (
	// Layer tags what a primitive represents in the grid.
	Layer int

	Point struct {
		X, Y float64
	}

	Color struct {
		R, G, B uint8
	}

	// Primitive is a self-contained drawing instruction. Every primitive
	// carries its own style; nothing depends on previously drawn ones.
	Primitive interface {
		Kind() Layer
	}

	// Shape is a polyline or polygon.
	Shape struct {
		Layer     Layer
		Points    []Point
		Closed    bool
		Stroke    bool
		Fill      bool
		LineColor Color
		FillColor Color
		Thickness float64
	}

	// Label is a run of text whose baseline starts at Pos.
	Label struct {
		Layer    Layer
		Text     string
		Pos      Point
		FontSize float64
		Color    Color
	}

	// Sheet is a fully laid out month, ready to be rendered.
	Sheet struct {
		Month      Month
		Geometry   Geometry
		Primitives []Primitive
	}
)

var (
	Black = Color{0, 0, 0}
	// Shade is the 90% gray used for alternating rows.
	Shade = Color{230, 230, 230}
)

func (s Shape) Kind() Layer { return s.Layer }
func (l Label) Kind() Layer { return l.Layer }

func (l Layer) String() string {
	switch l {
	case LayerBorder:
		return "border"
	case LayerExtension:
		return "extension"
	case LayerShading:
		return "shading"
	case LayerColumnLine:
		return "column_line"
	case LayerRowLine:
		return "row_line"
	case LayerColumnLabel:
		return "column_label"
	case LayerRowLabel:
		return "row_label"
	}
	return fmt.Sprintf("layer(%d)", int(l))
}

// IsQuarter reports whether column boundary i separates two quarters of the
// day. The closing boundary is excluded; the border already encloses it.
func IsQuarter(i int) bool {
	return i < Columns && i%QuarterEvery == 0
}

// Layout computes the sheet for the month containing start on a page of the
// given size. Primitives are returned in drawing order.
func Layout(start time.Time, size PageSize) (Sheet, error) {
	month, err := NewMonth(start)
	if err != nil {
		return Sheet{}, err
	}
	g, err := NewGeometry(size, month.Len())
	if err != nil {
		return Sheet{}, err
	}

	sheet := Sheet{Month: month, Geometry: g}
	add := func(p Primitive) { sheet.Primitives = append(sheet.Primitives, p) }

	add(line(LayerBorder, ThinLine, true,
		Point{g.BodyLeft, g.BodyBottom},
		Point{g.BodyLeft, g.BodyTop},
		Point{g.BodyRight, g.BodyTop},
		Point{g.BodyRight, g.BodyBottom},
	))
	add(line(LayerExtension, ThinLine, false, Point{g.Left, g.BodyBottom}, Point{g.Left, g.BodyTop}))
	add(line(LayerExtension, ThinLine, false, Point{g.BodyLeft, g.Top}, Point{g.BodyRight, g.Top}))

	for i := 0; i < g.Rows; i += 2 {
		y0, y1 := g.RowY(i), g.RowY(i+1)
		add(Shape{
			Layer:     LayerShading,
			Points:    []Point{{g.Left, y0}, {g.Left, y1}, {g.BodyRight, y1}, {g.BodyRight, y0}},
			Closed:    true,
			Fill:      true,
			FillColor: Shade,
		})
	}

	for i := 0; i <= Columns; i++ {
		width := ThinLine
		if IsQuarter(i) {
			width = ThickLine
		}
		x := g.ColumnX(i)
		add(line(LayerColumnLine, width, false, Point{x, g.BodyBottom}, Point{x, g.Top}))
	}

	for i := 0; i <= g.Rows; i++ {
		y := g.RowY(i)
		add(line(LayerRowLine, ThinLine, false, Point{g.Left, y}, Point{g.BodyRight, y}))
	}

	for i := 0; i < Columns; i++ {
		add(Label{
			Layer: LayerColumnLabel,
			Text:  fmt.Sprintf("%02d", i),
			Pos: Point{
				X: g.ColumnX(i) + CellPadding + HeaderOffsetX,
				Y: g.BodyTop - CellPadding - HeaderOffsetY,
			},
			FontSize: ColumnFontSize,
			Color:    Black,
		})
	}

	for i := range month.Days {
		add(Label{
			Layer: LayerRowLabel,
			Text:  month.Label(i),
			Pos: Point{
				X: g.Left + CellPadding,
				Y: g.RowY(i+1) - CellPadding - g.RowOffsetY,
			},
			FontSize: g.RowFontSize,
			Color:    Black,
		})
	}

	return sheet, nil
}

func line(layer Layer, width float64, closed bool, pts ...Point) Shape {
	return Shape{
		Layer:     layer,
		Points:    pts,
		Closed:    closed,
		Stroke:    true,
		LineColor: Black,
		Thickness: width,
	}
}

// Filter returns the primitives of the sheet tagged with layer, in order.
func (s Sheet) Filter(layer Layer) []Primitive {
	var out []Primitive
	for _, p := range s.Primitives {
		if p.Kind() == layer {
			out = append(out, p)
		}
	}
	return out
}
