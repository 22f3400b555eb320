// Package analysis fits the simple linear regressions reported for the
// joined country table, and renders descriptive statistics and a
// diagnostic scatterplot.
package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/JonMunkholm/vaxecon/internal/core"
)

var (
	// ErrTooFewObservations is returned when fewer than three complete
	// rows remain, leaving no residual degrees of freedom to test against.
	ErrTooFewObservations = errors.New("too few observations")

	// ErrZeroVariance is returned when the regressor is constant.
	ErrZeroVariance = errors.New("regressor has zero variance")
)

// params is the number of estimated coefficients (intercept and slope).
const params = 2

// Coef is one estimated coefficient with its inference statistics.
type Coef struct {
	Name   string
	Value  float64
	StdErr float64
	T      float64
	P      float64
	CILow  float64 // 95% confidence interval
	CIHigh float64
}

// Model is a fitted y = a + b*x regression.
type Model struct {
	Y, X string
	N    int

	Intercept Coef
	Slope     Coef

	R2         float64
	AdjR2      float64
	F          float64
	FProb      float64
	ResidualSE float64
	DFResid    int
	LogLik     float64
	AIC        float64
	BIC        float64
}

// Fit regresses column y on column x with an intercept. Rows where either
// value is missing are excluded.
func Fit(t *core.Table, y, x string) (*Model, error) {
	var missing []string
	for _, c := range []string{y, x} {
		if !t.Has(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &core.MissingColumnsError{Source: t.Name, Missing: missing}
	}

	xs, ys := pairs(t, x, y)
	return FitValues(y, x, xs, ys)
}

func pairs(t *core.Table, x, y string) (xs, ys stats.Float64Data) {
	for _, r := range t.Rows {
		xv, xok := t.Float(r, x)
		yv, yok := t.Float(r, y)
		if !xok || !yok {
			continue
		}
		xs = append(xs, xv)
		ys = append(ys, yv)
	}
	return xs, ys
}

// FitValues fits y on x from already paired observations.
func FitValues(yName, xName string, xs, ys []float64) (*Model, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("fit %s ~ %s: %d x values, %d y values", yName, xName, len(xs), len(ys))
	}
	n := len(xs)
	if n <= params {
		return nil, fmt.Errorf("fit %s ~ %s: %w (n=%d)", yName, xName, ErrTooFewObservations, n)
	}

	xd, yd := stats.Float64Data(xs), stats.Float64Data(ys)
	varX, err := stats.SampleVariance(xd)
	if err != nil {
		return nil, fmt.Errorf("fit %s ~ %s: %w", yName, xName, err)
	}
	if varX == 0 {
		return nil, fmt.Errorf("fit %s ~ %s: %w", yName, xName, ErrZeroVariance)
	}
	covXY, err := stats.Covariance(xd, yd)
	if err != nil {
		return nil, fmt.Errorf("fit %s ~ %s: %w", yName, xName, err)
	}
	meanX, _ := stats.Mean(xd)
	meanY, _ := stats.Mean(yd)

	slope := covXY / varX
	intercept := meanY - slope*meanX

	var ssr, sst float64
	for i := range xs {
		resid := ys[i] - (intercept + slope*xs[i])
		ssr += resid * resid
		dev := ys[i] - meanY
		sst += dev * dev
	}
	sxx := varX * float64(n-1)

	df := n - params
	sigma2 := ssr / float64(df)

	m := &Model{
		Y:          yName,
		X:          xName,
		N:          n,
		DFResid:    df,
		ResidualSE: math.Sqrt(sigma2),
	}

	if sst > 0 {
		m.R2 = 1 - ssr/sst
	} else {
		m.R2 = math.NaN()
	}
	m.AdjR2 = 1 - (1-m.R2)*float64(n-1)/float64(df)

	seSlope := math.Sqrt(sigma2 / sxx)
	seIntercept := math.Sqrt(sigma2 * (1/float64(n) + meanX*meanX/sxx))

	tdist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}
	m.Intercept = coef("Intercept", intercept, seIntercept, tdist)
	m.Slope = coef(xName, slope, seSlope, tdist)

	m.F = m.Slope.T * m.Slope.T
	m.FProb = m.Slope.P

	nf := float64(n)
	if ssr > 0 {
		m.LogLik = -nf / 2 * (math.Log(2*math.Pi) + math.Log(ssr/nf) + 1)
	} else {
		m.LogLik = math.Inf(1)
	}
	m.AIC = -2*m.LogLik + 2*params
	m.BIC = -2*m.LogLik + params*math.Log(nf)

	return m, nil
}

func coef(name string, value, se float64, tdist distuv.StudentsT) Coef {
	c := Coef{Name: name, Value: value, StdErr: se}
	switch {
	case se > 0:
		c.T = value / se
		c.P = 2 * tdist.CDF(-math.Abs(c.T))
	case value == 0:
		// Perfect fit with a zero coefficient: nothing to test.
		c.T = math.NaN()
		c.P = math.NaN()
	default:
		c.T = math.Inf(int(math.Copysign(1, value)))
		c.P = 0
	}
	q := tdist.Quantile(0.975)
	c.CILow = value - q*se
	c.CIHigh = value + q*se
	return c
}

// Formula returns the model in "y ~ x" form.
func (m *Model) Formula() string {
	return m.Y + " ~ " + m.X
}
