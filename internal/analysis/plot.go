package analysis

import (
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/JonMunkholm/vaxecon/internal/core"
)

// Plot axes for the diagnostic scatter.
const (
	PlotX = "VaxFullPer100"
	PlotY = "NatLogGDP2020Per100"
)

const (
	plotWidth  = 6 * vg.Inch
	plotHeight = 4 * vg.Inch
)

// NewScatter builds a scatter of y against x over rows where both are
// present, with the least-squares line when one can be fitted.
func NewScatter(t *core.Table, x, y string) (*plot.Plot, error) {
	var missing []string
	for _, c := range []string{x, y} {
		if !t.Has(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &core.MissingColumnsError{Source: t.Name, Missing: missing}
	}

	xs, ys := pairs(t, x, y)
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}

	p := plot.New()
	p.Title.Text = "Linear model for Vaccination given ln(GDP)"
	p.X.Label.Text = "Vax Rate"
	p.Y.Label.Text = "ln(GDP)"
	p.Add(plotter.NewGrid())

	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, fmt.Errorf("scatter %s/%s: %w", x, y, err)
	}
	s.GlyphStyle.Shape = draw.PyramidGlyph{}
	p.Add(s)
	p.Legend.Add("countries", s)

	if m, err := FitValues(y, x, xs, ys); err == nil {
		line := plotter.NewFunction(func(v float64) float64 {
			return m.Intercept.Value + m.Slope.Value*v
		})
		p.Add(line)
		p.Legend.Add("OLS fit", line)
	}

	return p, nil
}

// RenderScatter writes the scatter as a PNG to path. Nothing is left at
// path if rendering fails.
func RenderScatter(t *core.Table, x, y, path string) error {
	p, err := NewScatter(t, x, y)
	if err != nil {
		return err
	}

	wt, err := p.WriterTo(plotWidth, plotHeight, "png")
	if err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}

	return core.WriteFileAtomic(path, func(w io.Writer) error {
		_, err := wt.WriteTo(w)
		return err
	})
}
