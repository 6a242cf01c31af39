package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Options selects and configures a backend for [Open].
type Options struct {
	// Format is "svg", "png" or "pdf".
	Format string
	Dir    string
	// Prefix names the output files.
	Prefix string
	// Width and Height are the page size in points for SVG and in pixels
	// for PNG.
	Width, Height float64
	// Paper names the PDF paper size.
	Paper string
}

// Formats lists the formats accepted by [Open].
var Formats = []string{"svg", "png", "pdf"}

// Open returns the canvas for opts.Format.
func Open(opts Options) (Canvas, error) {
	switch opts.Format {
	case "svg":
		return NewSVG(opts.Dir, opts.Prefix, opts.Width, opts.Height)
	case "png":
		return NewPNG(opts.Dir, opts.Prefix, int(opts.Width), int(opts.Height))
	case "pdf":
		if err := os.MkdirAll(opts.Dir, 0755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
		f, err := os.Create(filepath.Join(opts.Dir, opts.Prefix+".pdf"))
		if err != nil {
			return nil, err
		}
		c, err := NewPDF(f, opts.Paper)
		if err != nil {
			f.Close()
			os.Remove(f.Name())
			return nil, err
		}
		return &filePDF{PDF: c, f: f}, nil
	default:
		return nil, fmt.Errorf("%q: %w", opts.Format, ErrUnknownFormat)
	}
}

// filePDF closes the file a PDF is written to.
type filePDF struct {
	*PDF
	f *os.File
}

func (c *filePDF) Close() error {
	err := c.PDF.Close()
	return errors.Join(err, c.f.Close())
}
