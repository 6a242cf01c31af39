package render

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"honnef.co/go/tricuspid"
)

// SVG writes each page to its own SVG file, named prefix-NNN.svg.
type SVG struct {
	dir, prefix   string
	width, height float64
	// Precision is the number of decimals written for coordinates.
	Precision int

	page   *Page
	buf    bytes.Buffer
	n      int
	files  []string
	closed bool
}

var _ Canvas = (*SVG)(nil)

// NewSVG returns a canvas writing pages of width × height points into dir,
// which is created if needed.
func NewSVG(dir, prefix string, width, height float64) (*SVG, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &SVG{dir: dir, prefix: prefix, width: width, height: height, Precision: 3}, nil
}

// Files returns the paths of the pages written so far.
func (c *SVG) Files() []string { return c.files }

func (c *SVG) StartPage(title string) error {
	if c.closed {
		return ErrClosed
	}
	if c.page != nil {
		return ErrPageOpen
	}
	c.page = NewPage(title, c.width, c.height, 0.05*min(c.width, c.height), 0.5)
	c.n++
	c.buf.Reset()
	fmt.Fprintf(&c.buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="0 0 %g %g">`+"\n",
		c.width, c.height, c.width, c.height)
	c.buf.WriteString("<title>")
	xml.EscapeText(&c.buf, []byte(title))
	c.buf.WriteString("</title>\n")
	c.buf.WriteString(`<rect width="100%" height="100%" fill="white"/>` + "\n")
	return nil
}

func (c *SVG) SetScale(view tricuspid.Rect) {
	if c.page == nil {
		return
	}
	c.page.SetScale(view)
}

func (c *SVG) Scale() float64 {
	if c.page == nil {
		return 1
	}
	return c.page.Scale()
}

func (c *SVG) SetColor(r, g, b float64) {
	if c.page == nil {
		return
	}
	c.page.Color = Color{r, g, b}
}

func (c *SVG) Line(p, q tricuspid.Point) {
	c.Path(tricuspid.BezPath{tricuspid.MoveTo(p), tricuspid.LineTo(q)})
}

func (c *SVG) Spline(points []tricuspid.Point, closed bool, tolerance float64) {
	if c.page == nil || len(points) < 2 {
		return
	}
	c.stroke(c.page.SplinePath(points, closed, tolerance))
}

func (c *SVG) Path(p tricuspid.BezPath) {
	if c.page == nil || len(p) == 0 {
		return
	}
	c.stroke(p.Transform(c.page.Transform()))
}

func (c *SVG) stroke(device tricuspid.BezPath) {
	if !device.IsFinite() {
		c.page.Fail(fmt.Errorf("page %q: path: %w", c.page.Title, ErrNonFinite))
		return
	}
	r, g, b := c.page.Color.RGB8()
	c.buf.WriteString(`<path d="`)
	if err := tricuspid.WriteSVG(&c.buf, device.Elements(), tricuspid.SVGOptions{MaxPrecision: c.Precision}); err != nil {
		c.page.Fail(err)
	}
	fmt.Fprintf(&c.buf, `" fill="none" stroke="rgb(%d,%d,%d)" stroke-width="%g"/>`+"\n", r, g, b, c.page.LineWidth)
}

func (c *SVG) EndPage() error {
	if c.page == nil {
		return ErrNoPage
	}
	page := c.page
	c.page = nil
	fmt.Fprintf(&c.buf, `<text x="%g" y="%g" font-family="monospace" font-size="10">`, Caption.X, Caption.Y)
	xml.EscapeText(&c.buf, []byte(page.Title))
	c.buf.WriteString("</text>\n</svg>\n")
	if err := page.Err(); err != nil {
		return err
	}

	name := filepath.Join(c.dir, fmt.Sprintf("%s-%03d.svg", c.prefix, c.n))
	if err := os.WriteFile(name, c.buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing page %q: %w", page.Title, err)
	}
	c.files = append(c.files, name)
	return nil
}

func (c *SVG) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	if c.page != nil {
		return c.EndPage()
	}
	return nil
}
