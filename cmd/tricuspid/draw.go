package main

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"honnef.co/go/tricuspid"
	"honnef.co/go/tricuspid/config"
	"honnef.co/go/tricuspid/render"
	"honnef.co/go/tricuspid/report"
)

type driver struct {
	cfg    *config.Config
	canvas render.Canvas
	report *report.Writer
	log    *slog.Logger
}

var (
	black   = render.Color{}
	gray    = render.Color{R: 0.6, G: 0.6, B: 0.6}
	magenta = render.Color{R: 1, B: 1}
	blue    = render.Color{B: 0.8}
)

func (d *driver) setColor(c render.Color) { d.canvas.SetColor(c.R, c.G, c.B) }

// tolerance returns the configured device tolerance in user units.
func (d *driver) tolerance() float64 {
	return d.cfg.Output.Tolerance / d.canvas.Scale()
}

// endPage finishes a page. A page lost to non-finite coordinates is
// logged and skipped.
func (d *driver) endPage(title string) error {
	err := d.canvas.EndPage()
	if errors.Is(err, render.ErrNonFinite) {
		d.log.Warn("dropping page", "page", title, "error", err)
		return nil
	}
	return err
}

func (d *driver) startPage(title string) error {
	if err := d.canvas.StartPage(title); err != nil {
		return err
	}
	d.log.Debug("page", "title", title)
	return nil
}

// chordPages draws the chord family with its envelope and the axis chords.
func (d *driver) chordPages() error {
	cc := d.cfg.Chords
	family := d.cfg.ChordFamily()
	stats := family.Stats(cc.Threshold, cc.ThresholdTolerance)
	d.log.Info("chord family",
		"chords", family.Count,
		"short", stats.Short,
		"long", stats.Long,
		"even", stats.Even,
		"threshold", cc.Threshold,
	)

	title := fmt.Sprintf("chords %g/%g", cc.InnerRadius, cc.OuterRadius)
	if err := d.startPage(title); err != nil {
		return err
	}
	r := max(math.Abs(cc.InnerRadius), math.Abs(cc.OuterRadius))
	d.canvas.SetScale(tricuspid.Square(tricuspid.Point{}, 1.1*r))
	tol := d.tolerance()
	d.setColor(gray)
	for _, ch := range family.Chords() {
		d.canvas.Line(ch.P0, ch.P1)
	}
	d.setColor(black)
	d.canvas.Path(family.From.Path(tol))
	d.canvas.Path(family.To.Path(tol))
	d.setColor(magenta)
	d.canvas.Spline(family.Envelope(), true, tol)
	if err := d.endPage(title); err != nil {
		return err
	}

	if cc.AxisChords == 0 {
		return nil
	}
	title = fmt.Sprintf("axis chords (%d)", cc.AxisChords)
	if err := d.startPage(title); err != nil {
		return err
	}
	d.canvas.SetScale(tricuspid.Square(tricuspid.Point{}, 2))
	tol = d.tolerance()
	d.setColor(black)
	d.canvas.Path(tricuspid.NewAxis(tricuspid.Point{}, 0).Path(tol))
	d.canvas.Path(tricuspid.NewAxis(tricuspid.Point{}, math.Pi/2).Path(tol))
	d.setColor(gray)
	chords := tricuspid.AxisChords(cc.AxisChords)
	for _, ch := range chords {
		d.canvas.Line(ch.P0, ch.P1)
	}
	d.setColor(magenta)
	d.canvas.Spline(tricuspid.ChordEnvelope(chords), true, tol)
	d.log.Debug("collinearity check", "angle", tricuspid.OneDegree, "cross", tricuspid.Check142(tricuspid.OneDegree))
	return d.endPage(title)
}

// curvePage draws the parts of e over the circles of radius 1/a and 1/b.
func (d *driver) curvePage(title string, e tricuspid.Envelope, parts []tricuspid.Part) error {
	if err := d.startPage(title); err != nil {
		return err
	}
	d.canvas.SetScale(tricuspid.Square(tricuspid.Point{}, d.cfg.Sampling.ViewRadius))
	tol := d.tolerance()
	d.setColor(gray)
	for _, rate := range []float64{e.A, e.B} {
		d.canvas.Path(tricuspid.Circle{Radius: 1 / math.Abs(rate)}.Path(tol))
	}
	d.setColor(blue)
	for _, p := range parts {
		d.canvas.Spline(p.Points, p.Closed, tol)
	}
	if err := d.endPage(title); err != nil {
		return err
	}
	return d.report.WriteParts(e, parts)
}

// integerPage traces every branch of the curve for integer rates a and b.
func (d *driver) integerPage(title string, a, b float64) error {
	e, err := tricuspid.NewEnvelope(a, b, false)
	if err != nil {
		return err
	}
	parts, err := e.Trace(d.cfg.SampleOptions(e.Integral()))
	if err != nil {
		d.log.Warn("skipping curve", "curve", e.String(), "error", err)
		return nil
	}
	d.log.Info("traced", "curve", e.String(), "parts", len(parts))
	return d.curvePage(title, e, parts)
}

// reflectedPage samples the branch of the reflected curve that carries the
// cusp at t = 0.
func (d *driver) reflectedPage(a, b float64) error {
	e, err := tricuspid.NewEnvelope(a, b, true)
	if err != nil {
		return err
	}
	kind, err := tricuspid.CuspOrientation(a, b)
	if err != nil {
		d.log.Warn("no cusp orientation", "curve", e.String(), "error", err)
	}
	parts, err := e.TraceBranches(e.Branches(0, 1), d.cfg.SampleOptions(false))
	if err != nil {
		d.log.Warn("skipping curve", "curve", e.String(), "error", err)
		return nil
	}
	d.log.Info("traced", "curve", e.String(), "cusp", kind.String())
	return d.curvePage(fmt.Sprintf("(%g, −%g) cusp %s", a, b, kind), e, parts)
}

// degeneracy searches for the rate at which the cusp degenerates.
func (d *driver) degeneracy() error {
	dc := d.cfg.Degeneracy
	res, err := tricuspid.FindDegenerateB(dc.A, dc.BLow, dc.BHigh, d.cfg.SearchOptions())
	if err != nil {
		if errors.Is(err, tricuspid.ErrNoSignChange) {
			d.log.Warn("degeneracy search skipped", "error", err)
			return nil
		}
		return fmt.Errorf("degeneracy search: %w", err)
	}
	d.log.Info("degenerate cusp",
		"a", res.A,
		"b", res.B,
		"iterations", res.Iterations,
		"converged", res.Converged,
		"ratio", res.B/res.A,
	)
	index := dc.Index
	if index == 0 {
		index = tricuspid.DefaultEstimatorIndex
	}
	return d.report.WriteDegeneracy(dc.BLow, dc.BHigh, index, res)
}
