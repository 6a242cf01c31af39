// Package report exports sampled curves and degeneracy searches as CSV.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"honnef.co/go/tricuspid"
	"honnef.co/go/tricuspid/config"
)

// PointRecord is one sample of a part.
type PointRecord struct {
	Curve string  `csv:"curve"`
	Part  int     `csv:"part"`
	Index int     `csv:"index"`
	X     float64 `csv:"x"`
	Y     float64 `csv:"y"`
}

// PartRecord summarizes one sampled part.
type PartRecord struct {
	Curve     string  `csv:"curve"`
	A         float64 `csv:"a"`
	B         float64 `csv:"b"`
	Reflect   bool    `csv:"reflect"`
	Part      int     `csv:"part"`
	Start     float64 `csv:"start"`
	End       float64 `csv:"end"`
	Step      float64 `csv:"step"`
	Points    int     `csv:"points"`
	Dropped   int     `csv:"dropped"`
	Converged bool    `csv:"converged"`
}

// DegeneracyRecord is the outcome of one degeneracy search.
type DegeneracyRecord struct {
	A          float64 `csv:"a"`
	BLow       float64 `csv:"b_low"`
	BHigh      float64 `csv:"b_high"`
	Index      int     `csv:"index"`
	B          float64 `csv:"b"`
	LowDer2    float64 `csv:"low_der2"`
	HighDer2   float64 `csv:"high_der2"`
	Iterations int     `csv:"iterations"`
	Converged  bool    `csv:"converged"`
}

// file is a CSV file whose header is written with the first records.
type file struct {
	name          string
	f             *os.File
	headerWritten bool
}

func create(dir, name string) (*file, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &file{name: name, f: f}, nil
}

func write[T any](out *file, records []T) error {
	if len(records) == 0 {
		return nil
	}
	var err error
	if !out.headerWritten {
		err = gocsv.Marshal(records, out.f)
		out.headerWritten = true
	} else {
		err = gocsv.MarshalWithoutHeaders(records, out.f)
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", out.name, err)
	}
	return nil
}

// Writer writes points.csv, parts.csv and degeneracy.csv into a directory.
// A nil *Writer discards everything.
type Writer struct {
	dir        string
	points     *file
	parts      *file
	degeneracy *file
}

// NewWriter creates the output files in dir, which is created if needed.
// Returns nil if dir is empty (output disabled).
func NewWriter(dir string) (*Writer, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	w := &Writer{dir: dir}
	var err error
	if w.points, err = create(dir, "points.csv"); err != nil {
		return nil, err
	}
	if w.parts, err = create(dir, "parts.csv"); err != nil {
		w.Close()
		return nil, err
	}
	if w.degeneracy, err = create(dir, "degeneracy.csv"); err != nil {
		w.Close()
		return nil, err
	}
	return w, nil
}

// Dir returns the output directory path.
func (w *Writer) Dir() string {
	if w == nil {
		return ""
	}
	return w.dir
}

// WriteConfig saves the configuration as config.yaml.
func (w *Writer) WriteConfig(cfg *config.Config) error {
	if w == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(w.dir, "config.yaml"))
}

// WriteParts records the parts of a curve and all of their points. Parts
// are numbered in order.
func (w *Writer) WriteParts(e tricuspid.Envelope, parts []tricuspid.Part) error {
	if w == nil {
		return nil
	}
	curve := e.String()
	summaries := make([]PartRecord, len(parts))
	var points []PointRecord
	for i, p := range parts {
		summaries[i] = PartRecord{
			Curve:     curve,
			A:         e.A,
			B:         e.B,
			Reflect:   e.Reflect,
			Part:      i,
			Start:     p.Start,
			End:       p.End,
			Step:      p.Step,
			Points:    len(p.Points),
			Dropped:   p.Dropped,
			Converged: p.Converged,
		}
		for j, pt := range p.Points {
			points = append(points, PointRecord{Curve: curve, Part: i, Index: j, X: pt.X, Y: pt.Y})
		}
	}
	if err := write(w.parts, summaries); err != nil {
		return err
	}
	return write(w.points, points)
}

// WriteDegeneracy records a degeneracy search over [bLow, bHigh] with the
// given estimator index.
func (w *Writer) WriteDegeneracy(bLow, bHigh float64, index int, d tricuspid.Degeneracy) error {
	if w == nil {
		return nil
	}
	return write(w.degeneracy, []DegeneracyRecord{{
		A:          d.A,
		BLow:       bLow,
		BHigh:      bHigh,
		Index:      index,
		B:          d.B,
		LowDer2:    d.LowDer2,
		HighDer2:   d.HighDer2,
		Iterations: d.Iterations,
		Converged:  d.Converged,
	}})
}

// Close flushes and closes all output files.
func (w *Writer) Close() error {
	if w == nil {
		return nil
	}
	var firstErr error
	for _, out := range []*file{w.points, w.parts, w.degeneracy} {
		if out == nil {
			continue
		}
		if err := out.f.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing %s: %w", out.name, err)
		}
	}
	return firstErr
}
