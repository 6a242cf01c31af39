// Package render draws curves onto paged output: one SVG or PNG file per
// page, or a single multi-page PDF.
//
// All drawing calls take user coordinates. [Canvas.SetScale] chooses which
// part of the plane fills the page.
package render

import (
	"errors"
	"math"

	"honnef.co/go/tricuspid"
)

var (
	ErrNoPage        = errors.New("no page started")
	ErrPageOpen      = errors.New("page already started")
	ErrUnknownFormat = errors.New("unknown output format")
	ErrUnknownPaper  = errors.New("unknown paper size")
	ErrClosed        = errors.New("canvas closed")

	// ErrNonFinite is reported for a page on which something with infinite
	// or NaN device coordinates was drawn. Only that page is lost. Nothing
	// drawn on it before the failure is kept.
	ErrNonFinite = errors.New("non-finite coordinates")
)

// Canvas is a paged drawing surface.
//
// Drawing methods don't return errors. The first error encountered while
// drawing a page is reported by EndPage.
type Canvas interface {
	// StartPage begins a new page. The title is printed at the top of it.
	StartPage(title string) error
	// SetScale maps view onto the page, preserving its aspect ratio.
	SetScale(view tricuspid.Rect)
	// Scale returns the number of device units per user unit.
	Scale() float64
	// SetColor sets the stroke color, with components in [0, 1].
	SetColor(r, g, b float64)
	Line(p, q tricuspid.Point)
	// Spline strokes a smooth curve through points, after dropping points
	// closer than tolerance, in user units, to the simplified curve.
	Spline(points []tricuspid.Point, closed bool, tolerance float64)
	Path(p tricuspid.BezPath)
	EndPage() error
	Close() error
}

// Color is an RGB color with components in [0, 1].
type Color struct {
	R, G, B float64
}

// RGB8 returns the components scaled to [0, 255].
func (c Color) RGB8() (r, g, b uint8) {
	conv := func(f float64) uint8 {
		return uint8(math.Round(255 * min(max(f, 0), 1)))
	}
	return conv(c.R), conv(c.G), conv(c.B)
}

// Page holds the state of the current page shared by all backends: its
// device size, the mapping from user coordinates and the stroke style.
type Page struct {
	Title string
	// Size is the page in device units, with y pointing down.
	Size      tricuspid.Rect
	Margin    float64
	LineWidth float64
	Color     Color

	view tricuspid.Rect
	xf   tricuspid.Affine
	err  error
}

// NewPage returns a page of the given device size. Until SetScale is
// called, user coordinates are device coordinates.
func NewPage(title string, width, height, margin, lineWidth float64) *Page {
	p := &Page{
		Title:     title,
		Size:      tricuspid.Rect{X0: 0, Y0: 0, X1: width, Y1: height},
		Margin:    margin,
		LineWidth: lineWidth,
		xf:        tricuspid.Identity,
	}
	p.view = p.Size
	return p
}

// SetScale fits view into the page inside the margin. The y axis is flipped
// so that user y points up.
func (p *Page) SetScale(view tricuspid.Rect) {
	p.view = view.Abs()
	p.xf = tricuspid.FitView(p.view, p.Size, p.Margin)
}

// View returns the view set by the last call to SetScale.
func (p *Page) View() tricuspid.Rect { return p.view }

// Transform returns the mapping from user to device coordinates.
func (p *Page) Transform() tricuspid.Affine { return p.xf }

// Scale returns the number of device units per user unit.
func (p *Page) Scale() float64 {
	return p.xf.LinearScale()
}

// ToDevice maps pt to device coordinates.
func (p *Page) ToDevice(pt tricuspid.Point) tricuspid.Point {
	return pt.Transform(p.xf)
}

// Tolerance converts a distance in device units to user units.
func (p *Page) Tolerance(device float64) float64 {
	return device / p.Scale()
}

// SplinePath returns the device-space path of a spline through points.
func (p *Page) SplinePath(points []tricuspid.Point, closed bool, tolerance float64) tricuspid.BezPath {
	return tricuspid.SplineWithin(points, closed, tolerance).Transform(p.xf)
}

// Fail records the first drawing error of the page.
func (p *Page) Fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

// Err returns the first drawing error of the page.
func (p *Page) Err() error { return p.err }

// Caption is where page titles are drawn, in device units from the top left
// corner.
var Caption = tricuspid.Pt(8, 16)
