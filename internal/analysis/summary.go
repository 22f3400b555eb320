package analysis

import (
	"fmt"
	"io"
	"strings"

	"github.com/JonMunkholm/vaxecon/internal/core"
)

const ruleWidth = 78

// Summary renders the model as a fixed-width text block.
func (m *Model) Summary() string {
	var b strings.Builder
	heavy := strings.Repeat("=", ruleWidth)
	light := strings.Repeat("-", ruleWidth)

	fmt.Fprintf(&b, "%s\n", center("OLS Regression Results", ruleWidth))
	fmt.Fprintf(&b, "%s\n", heavy)
	fmt.Fprintf(&b, "%-20s %17s   %-20s %15.3f\n", "Dep. Variable:", m.Y, "R-squared:", m.R2)
	fmt.Fprintf(&b, "%-20s %17s   %-20s %15.3f\n", "Model:", "OLS", "Adj. R-squared:", m.AdjR2)
	fmt.Fprintf(&b, "%-20s %17s   %-20s %15.4g\n", "Method:", "Least Squares", "F-statistic:", m.F)
	fmt.Fprintf(&b, "%-20s %17d   %-20s %15.3g\n", "No. Observations:", m.N, "Prob (F-statistic):", m.FProb)
	fmt.Fprintf(&b, "%-20s %17d   %-20s %15.2f\n", "Df Residuals:", m.DFResid, "Log-Likelihood:", m.LogLik)
	fmt.Fprintf(&b, "%-20s %17d   %-20s %15.1f\n", "Df Model:", params-1, "AIC:", m.AIC)
	fmt.Fprintf(&b, "%-20s %17.4g   %-20s %15.1f\n", "Resid. Std. Err.:", m.ResidualSE, "BIC:", m.BIC)
	fmt.Fprintf(&b, "%s\n", heavy)
	fmt.Fprintf(&b, "%-22s %10s %10s %8s %8s %8s %8s\n", "", "coef", "std err", "t", "P>|t|", "[0.025", "0.975]")
	fmt.Fprintf(&b, "%s\n", light)
	for _, c := range []Coef{m.Intercept, m.Slope} {
		fmt.Fprintf(&b, "%-22s %10.4f %10.3f %8.3f %8.3f %8.3f %8.3f\n",
			truncate(c.Name, 22), c.Value, c.StdErr, c.T, c.P, c.CILow, c.CIHigh)
	}
	fmt.Fprintf(&b, "%s\n", heavy)

	return b.String()
}

// Summary renders the result, or a one-line note when no model was fitted.
func (r Result) Summary() string {
	if r.Model != nil {
		return r.Model.Summary()
	}
	return fmt.Sprintf("%s ~ %s: not fitted: %v\n", r.Spec.Y, r.Spec.X, r.Err)
}

// WriteSummaries writes every result summary in order, separated by a
// blank line.
func WriteSummaries(w io.Writer, results []Result) error {
	for i, r := range results {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, r.Summary()); err != nil {
			return err
		}
	}
	return nil
}

// WriteReport writes the summaries to path. Nothing is left at path if the
// write fails.
func WriteReport(path string, results []Result) error {
	return core.WriteFileAtomic(path, func(w io.Writer) error {
		return WriteSummaries(w, results)
	})
}

func center(s string, width int) string {
	pad := (width - len(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
