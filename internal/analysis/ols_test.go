package analysis

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/JonMunkholm/vaxecon/internal/core"
)

func numbers(t *testing.T, cols []string, rows ...[]float64) *core.Table {
	t.Helper()
	tbl := core.NewTable("joined", cols)
	for _, r := range rows {
		row := make(core.Row, len(r))
		for i, v := range r {
			if math.IsNaN(v) {
				row[i] = core.MissingNumber()
			} else {
				row[i] = core.NumberValue(v)
			}
		}
		tbl.Rows = append(tbl.Rows, row)
	}
	return tbl
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestFit(t *testing.T) {
	nan := math.NaN()
	tbl := numbers(t, []string{"X", "Y"},
		[]float64{1, 2},
		[]float64{2, 4},
		[]float64{nan, 100}, // excluded
		[]float64{3, 5},
		[]float64{4, 4},
		[]float64{5, 5},
		[]float64{6, nan}, // excluded
	)

	m, err := Fit(tbl, "Y", "X")
	if err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"slope", m.Slope.Value, 0.6},
		{"intercept", m.Intercept.Value, 2.2},
		{"r2", m.R2, 0.6},
		{"adj r2", m.AdjR2, 1 - 0.4*4/3},
		{"slope se", m.Slope.StdErr, math.Sqrt(0.08)},
		{"slope t", m.Slope.T, 2.1213203435596424},
		{"slope p", m.Slope.P, 0.12402706265755459},
		{"intercept se", m.Intercept.StdErr, 0.938083151964686},
		{"intercept p", m.Intercept.P, 0.1007434560854199},
		{"f", m.F, 4.5},
		{"f prob", m.FProb, 0.12402706265755459},
		{"resid se", m.ResidualSE, math.Sqrt(0.8)},
		{"log-likelihood", m.LogLik, -5.259769728322863},
		{"aic", m.AIC, 14.519539456645726},
		{"bic", m.BIC, 13.738415281513927},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !near(tt.got, tt.want) {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}

	if m.N != 5 || m.DFResid != 3 {
		t.Errorf("N = %d, DFResid = %d, want 5, 3", m.N, m.DFResid)
	}
	if m.Slope.CILow >= m.Slope.Value || m.Slope.CIHigh <= m.Slope.Value {
		t.Errorf("CI [%v, %v] should bracket %v", m.Slope.CILow, m.Slope.CIHigh, m.Slope.Value)
	}
	if m.Formula() != "Y ~ X" {
		t.Errorf("Formula() = %q", m.Formula())
	}
}

func TestFit_Degenerate(t *testing.T) {
	tests := []struct {
		name    string
		rows    [][]float64
		wantErr error
	}{
		{
			name:    "too few rows",
			rows:    [][]float64{{1, 1}, {2, 2}},
			wantErr: ErrTooFewObservations,
		},
		{
			name:    "no rows",
			rows:    nil,
			wantErr: ErrTooFewObservations,
		},
		{
			name:    "constant regressor",
			rows:    [][]float64{{1, 1}, {1, 2}, {1, 3}},
			wantErr: ErrZeroVariance,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := numbers(t, []string{"X", "Y"}, tt.rows...)
			_, err := Fit(tbl, "Y", "X")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFit_MissingColumn(t *testing.T) {
	tbl := numbers(t, []string{"X"})
	_, err := Fit(tbl, "Y", "X")
	var mc *core.MissingColumnsError
	if !errors.As(err, &mc) {
		t.Fatalf("error = %v, want *MissingColumnsError", err)
	}
}

func TestRunBattery(t *testing.T) {
	cols := []string{"VaxFullPer100", "Vax1PlusPer100", "CasesCumPer100", "DeathsCumPer100",
		"GDP2020Per100", "HDIValue", "NatLogGDP2020Per100"}
	var rows [][]float64
	for i := 1; i <= 6; i++ {
		f := float64(i)
		rows = append(rows, []float64{f * 10, f*10 + f*f, f * 3, 1, f * 1000, 0.5 + f/20, math.Log(f * 1000)})
	}
	tbl := numbers(t, cols, rows...)

	results, err := RunBattery(tbl, Battery)
	if err != nil {
		t.Fatalf("RunBattery() error = %v", err)
	}
	if len(results) != len(Battery) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(Battery))
	}
	for i, r := range results {
		if r.Spec != Battery[i] {
			t.Errorf("result %d spec = %+v, want %+v", i, r.Spec, Battery[i])
		}
	}

	// DeathsCumPer100 is constant but it is the response, so the fit
	// succeeds with a zero slope.
	if got := Fitted(results); got != len(Battery) {
		t.Errorf("Fitted() = %d, want %d", got, len(Battery))
	}

	if _, err := RunBattery(numbers(t, []string{"X"}), Battery); err == nil {
		t.Error("RunBattery should fail on a malformed table")
	}
}

func TestBattery_Order(t *testing.T) {
	want := []string{
		"VaxFullPer100 ~ GDP2020Per100",
		"VaxFullPer100 ~ HDIValue",
		"Vax1PlusPer100 ~ GDP2020Per100",
		"Vax1PlusPer100 ~ HDIValue",
		"CasesCumPer100 ~ GDP2020Per100",
		"CasesCumPer100 ~ HDIValue",
		"DeathsCumPer100 ~ GDP2020Per100",
		"DeathsCumPer100 ~ HDIValue",
		"VaxFullPer100 ~ NatLogGDP2020Per100",
	}
	if len(Battery) != len(want) {
		t.Fatalf("len(Battery) = %d, want %d", len(Battery), len(want))
	}
	for i, s := range Battery {
		if got := s.Y + " ~ " + s.X; got != want[i] {
			t.Errorf("Battery[%d] = %s, want %s", i, got, want[i])
		}
	}
}

func TestFitValues_LengthMismatch(t *testing.T) {
	if _, err := FitValues("y", "x", []float64{1, 2, 3}, []float64{1, 2}); err == nil {
		t.Error("expected error for mismatched lengths")
	}
}

func BenchmarkFitValues(b *testing.B) {
	xs := make([]float64, 200)
	ys := make([]float64, 200)
	for i := range xs {
		xs[i] = float64(i)
		ys[i] = 3*float64(i) + float64(i%7)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := FitValues("y", "x"+strconv.Itoa(i%2), xs, ys); err != nil {
			b.Fatal(err)
		}
	}
}
