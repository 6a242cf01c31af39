package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"honnef.co/go/tricuspid"
)

// PNG rasterizes each page with gg's software renderer and writes it to its
// own file, named prefix-NNN.png.
type PNG struct {
	dir, prefix   string
	width, height int

	page   *Page
	dc     *gg.Context
	n      int
	files  []string
	closed bool
}

var _ Canvas = (*PNG)(nil)

// NewPNG returns a canvas writing width × height pixel pages into dir,
// which is created if needed.
func NewPNG(dir, prefix string, width, height int) (*PNG, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image size %d×%d", width, height)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &PNG{dir: dir, prefix: prefix, width: width, height: height}, nil
}

// Files returns the paths of the pages written so far.
func (c *PNG) Files() []string { return c.files }

func (c *PNG) StartPage(title string) error {
	if c.closed {
		return ErrClosed
	}
	if c.page != nil {
		return ErrPageOpen
	}
	w, h := float64(c.width), float64(c.height)
	c.page = NewPage(title, w, h, 0.05*min(w, h), 1)
	c.n++
	c.dc = gg.NewContext(c.width, c.height)
	c.dc.ClearWithColor(gg.RGB(1, 1, 1))
	c.dc.SetRGB(0, 0, 0)
	c.dc.SetLineWidth(c.page.LineWidth)
	return nil
}

func (c *PNG) SetScale(view tricuspid.Rect) {
	if c.page == nil {
		return
	}
	c.page.SetScale(view)
}

func (c *PNG) Scale() float64 {
	if c.page == nil {
		return 1
	}
	return c.page.Scale()
}

func (c *PNG) SetColor(r, g, b float64) {
	if c.page == nil {
		return
	}
	c.page.Color = Color{r, g, b}
	c.dc.SetRGB(r, g, b)
}

func (c *PNG) Line(p, q tricuspid.Point) {
	c.Path(tricuspid.BezPath{tricuspid.MoveTo(p), tricuspid.LineTo(q)})
}

func (c *PNG) Spline(points []tricuspid.Point, closed bool, tolerance float64) {
	if c.page == nil || len(points) < 2 {
		return
	}
	c.stroke(c.page.SplinePath(points, closed, tolerance))
}

func (c *PNG) Path(p tricuspid.BezPath) {
	if c.page == nil || len(p) == 0 {
		return
	}
	c.stroke(p.Transform(c.page.Transform()))
}

func (c *PNG) stroke(device tricuspid.BezPath) {
	if !device.IsFinite() {
		c.page.Fail(fmt.Errorf("page %q: path: %w", c.page.Title, ErrNonFinite))
		return
	}
	for _, el := range device {
		switch el.Kind {
		case tricuspid.MoveToKind:
			c.dc.MoveTo(el.P0.X, el.P0.Y)
		case tricuspid.LineToKind:
			c.dc.LineTo(el.P0.X, el.P0.Y)
		case tricuspid.CubicToKind:
			c.dc.CubicTo(el.P0.X, el.P0.Y, el.P1.X, el.P1.Y, el.P2.X, el.P2.Y)
		case tricuspid.ClosePathKind:
			c.dc.ClosePath()
		}
	}
	if err := c.dc.Stroke(); err != nil {
		c.page.Fail(err)
	}
}

// Image returns the current page, with its caption, as an image.
func (c *PNG) Image() (*image.RGBA, error) {
	if c.page == nil {
		return nil, ErrNoPage
	}
	if err := c.dc.FlushGPU(); err != nil {
		return nil, err
	}
	src := c.dc.Image()
	img, ok := src.(*image.RGBA)
	if !ok {
		img = image.NewRGBA(src.Bounds())
		draw.Draw(img, img.Bounds(), src, src.Bounds().Min, draw.Src)
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(int(Caption.X), int(Caption.Y)),
	}
	d.DrawString(c.page.Title)
	return img, nil
}

func (c *PNG) EndPage() error {
	if c.page == nil {
		return ErrNoPage
	}
	defer func() {
		_ = c.dc.Close()
		c.dc = nil
		c.page = nil
	}()
	if err := c.page.Err(); err != nil {
		return err
	}
	img, err := c.Image()
	if err != nil {
		return err
	}

	name := filepath.Join(c.dir, fmt.Sprintf("%s-%03d.png", c.prefix, c.n))
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("writing page %q: %w", c.page.Title, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding page %q: %w", c.page.Title, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	c.files = append(c.files, name)
	return nil
}

func (c *PNG) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	if c.page != nil {
		return c.EndPage()
	}
	return nil
}
