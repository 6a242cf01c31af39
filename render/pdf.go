package render

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"codeberg.org/go-pdf/fpdf"

	"honnef.co/go/tricuspid"
)

// Papers lists the paper sizes accepted by [NewPDF], in points, portrait.
var Papers = map[string][2]float64{
	"a3":      {841.89, 1190.55},
	"a4":      {595.28, 841.89},
	"a5":      {420.94, 595.28},
	"letter":  {612, 792},
	"legal":   {612, 1008},
	"tabloid": {792, 1224},
}

// PaperNames returns the accepted paper names, sorted.
func PaperNames() []string {
	names := make([]string, 0, len(Papers))
	for name := range Papers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PDF writes all pages into a single PDF document.
type PDF struct {
	w      io.Writer
	doc    *fpdf.Fpdf
	width  float64
	height float64

	page *Page
	// ops draws the open page. They run at EndPage, so a page that fails
	// never reaches the document.
	ops    []func()
	pages  int
	closed bool
}

var _ Canvas = (*PDF)(nil)

// NewPDF returns a canvas writing a PDF document on the named paper, in
// portrait orientation, to w when closed.
func NewPDF(w io.Writer, paper string) (*PDF, error) {
	key := strings.ToLower(paper)
	if _, ok := Papers[key]; !ok {
		return nil, fmt.Errorf("%q (want one of %s): %w", paper, strings.Join(PaperNames(), ", "), ErrUnknownPaper)
	}
	doc := fpdf.New("P", "pt", key, "")
	doc.SetAutoPageBreak(false, 0)
	doc.SetCompression(true)
	width, height := doc.GetPageSize()
	return &PDF{w: w, doc: doc, width: width, height: height}, nil
}

// Pages returns the number of pages finished so far.
func (c *PDF) Pages() int { return c.pages }

func (c *PDF) StartPage(title string) error {
	if c.closed {
		return ErrClosed
	}
	if c.page != nil {
		return ErrPageOpen
	}
	c.page = NewPage(title, c.width, c.height, 36, 0.5)
	c.ops = c.ops[:0]
	return nil
}

func (c *PDF) SetScale(view tricuspid.Rect) {
	if c.page == nil {
		return
	}
	c.page.SetScale(view)
}

func (c *PDF) Scale() float64 {
	if c.page == nil {
		return 1
	}
	return c.page.Scale()
}

func (c *PDF) SetColor(r, g, b float64) {
	if c.page == nil {
		return
	}
	c.page.Color = Color{r, g, b}
	r8, g8, b8 := c.page.Color.RGB8()
	c.ops = append(c.ops, func() { c.doc.SetDrawColor(int(r8), int(g8), int(b8)) })
}

func (c *PDF) Line(p, q tricuspid.Point) {
	if c.page == nil {
		return
	}
	p, q = c.page.ToDevice(p), c.page.ToDevice(q)
	if !p.IsFinite() || !q.IsFinite() {
		c.page.Fail(fmt.Errorf("page %q: line: %w", c.page.Title, ErrNonFinite))
		return
	}
	c.ops = append(c.ops, func() { c.doc.Line(p.X, p.Y, q.X, q.Y) })
}

func (c *PDF) Spline(points []tricuspid.Point, closed bool, tolerance float64) {
	if c.page == nil || len(points) < 2 {
		return
	}
	c.stroke(c.page.SplinePath(points, closed, tolerance))
}

func (c *PDF) Path(p tricuspid.BezPath) {
	if c.page == nil || len(p) == 0 {
		return
	}
	c.stroke(p.Transform(c.page.Transform()))
}

func (c *PDF) stroke(device tricuspid.BezPath) {
	if !device.IsFinite() {
		c.page.Fail(fmt.Errorf("page %q: path: %w", c.page.Title, ErrNonFinite))
		return
	}
	c.ops = append(c.ops, func() {
		for _, el := range device {
			switch el.Kind {
			case tricuspid.MoveToKind:
				c.doc.MoveTo(el.P0.X, el.P0.Y)
			case tricuspid.LineToKind:
				c.doc.LineTo(el.P0.X, el.P0.Y)
			case tricuspid.CubicToKind:
				c.doc.CurveBezierCubicTo(el.P0.X, el.P0.Y, el.P1.X, el.P1.Y, el.P2.X, el.P2.Y)
			case tricuspid.ClosePathKind:
				c.doc.ClosePath()
			}
		}
		c.doc.DrawPath("D")
	})
}

func (c *PDF) EndPage() error {
	if c.page == nil {
		return ErrNoPage
	}
	page, ops := c.page, c.ops
	c.page, c.ops = nil, ops[:0]
	if err := page.Err(); err != nil {
		return err
	}
	c.doc.AddPage()
	c.doc.SetLineWidth(page.LineWidth)
	c.doc.SetDrawColor(0, 0, 0)
	for _, op := range ops {
		op()
	}
	c.doc.SetDrawColor(0, 0, 0)
	c.doc.SetFont("Helvetica", "", 10)
	c.doc.Text(Caption.X, Caption.Y, page.Title)
	if err := c.doc.Error(); err != nil {
		return fmt.Errorf("page %q: %w", page.Title, err)
	}
	c.pages++
	return nil
}

// Close finishes any open page and writes the document. The document is
// written even if that last page fails.
func (c *PDF) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	var err error
	if c.page != nil {
		err = c.EndPage()
	}
	if oerr := c.doc.Output(c.w); oerr != nil {
		return errors.Join(err, fmt.Errorf("writing PDF: %w", oerr))
	}
	return err
}
