// Package pipeline joins the cleaned sources into one per-country table,
// derives the per-100 metrics, and writes the run's outputs.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/JonMunkholm/vaxecon/internal/analysis"
	"github.com/JonMunkholm/vaxecon/internal/config"
	"github.com/JonMunkholm/vaxecon/internal/core"
	"github.com/JonMunkholm/vaxecon/internal/core/tables"
	"github.com/JonMunkholm/vaxecon/internal/logging"
)

// Result is everything a run produced.
type Result struct {
	Joined      *core.Table
	Audit       Audit
	Models      []analysis.Result
	Description analysis.Description
	BytesRead   int64
}

// loaded is one source after loading and column selection.
type loaded struct {
	def   core.SourceDefinition
	table *core.Table
	bytes int64
}

// Run executes one full pipeline pass. resolver is used for HDI country
// names; the run's logger comes from ctx.
func Run(ctx context.Context, cfg *config.Config, resolver core.CountryResolver) (*Result, error) {
	logger := logging.FromContext(ctx)
	start := time.Now()

	sources, bytesRead, err := loadAll(ctx, cfg)
	if err != nil {
		return nil, err
	}

	cleaned, err := cleanAll(ctx, sources, core.CleanEnv{Resolver: resolver, Logger: logger})
	if err != nil {
		return nil, err
	}

	spine, ok := cleaned[tables.Vaccination]
	if !ok {
		return nil, fmt.Errorf("run: %s source not registered", tables.Vaccination)
	}
	delete(cleaned, tables.Vaccination)

	joined, steps, err := JoinAll(spine, cleaned, JoinPlan)
	if err != nil {
		return nil, err
	}
	audit := NewAudit(joined, steps)
	audit.Log(logger)

	if err := Finalize(joined); err != nil {
		return nil, fmt.Errorf("derive: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := ExportFile(cfg.Output.CSVPath, joined); err != nil {
		return nil, err
	}
	logger.Info("joined table written",
		"path", cfg.Output.CSVPath,
		"rows", joined.Len(),
		"columns", len(joined.Columns),
	)

	res := &Result{Joined: joined, Audit: audit, BytesRead: bytesRead}
	if err := analyze(ctx, cfg, res, logger); err != nil {
		return nil, err
	}

	logger.Info("run complete", "duration", time.Since(start).String())
	return res, nil
}

// loadAll reads and selects every registered source concurrently. Each
// goroutine owns one slot, so result order follows the registry.
func loadAll(ctx context.Context, cfg *config.Config) ([]loaded, int64, error) {
	defs := core.All()
	files := cfg.Input.Files()
	out := make([]loaded, len(defs))

	for _, def := range defs {
		if _, ok := files[def.Info.Key]; !ok {
			return nil, 0, fmt.Errorf("load: no input file configured for %s", def.Info.Key)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, def := range defs {
		i, def := i, def
		path := files[def.Info.Key]
		offset := def.Info.HeaderOffset
		if def.Info.Key == tables.Population {
			offset = cfg.Input.PopulationHeaderOffset
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			logger := logging.WithFields(gctx, "source", def.Info.Key)

			res, err := core.LoadTable(path, offset)
			if err != nil {
				return fmt.Errorf("load %s: %w", def.Info.Key, err)
			}
			t, err := core.Select(res.Table, def)
			if err != nil {
				return fmt.Errorf("load %s: %w", def.Info.Key, err)
			}

			logger.Debug("source loaded", "path", path, "rows", t.Len(), "bytes", res.BytesRead)
			out[i] = loaded{def: def, table: t, bytes: res.BytesRead}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}

	var total int64
	for _, l := range out {
		total += l.bytes
	}
	return out, total, nil
}

// cleanAll runs each source's cleaner in registry order on this goroutine.
func cleanAll(ctx context.Context, sources []loaded, env core.CleanEnv) (map[string]*core.Table, error) {
	out := make(map[string]*core.Table, len(sources))
	for _, s := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t := s.table
		if s.def.Clean != nil {
			var err error
			t, err = s.def.Clean(t, env)
			if err != nil {
				return nil, fmt.Errorf("clean %s: %w", s.def.Info.Key, err)
			}
		}
		env.Log().Info("source ready", "source", s.def.Info.Key, "rows", t.Len())
		out[s.def.Info.Key] = t
	}
	return out, nil
}

// analyze fits the regression battery, writes the report, summarizes the
// vaccination column and renders the optional scatter.
func analyze(ctx context.Context, cfg *config.Config, res *Result, logger *slog.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	models, err := analysis.RunBattery(res.Joined, analysis.Battery)
	if err != nil {
		return fmt.Errorf("analysis: %w", err)
	}
	for _, m := range models {
		if m.Err != nil {
			logger.Warn("model not fitted", "model", m.Spec.Y+" ~ "+m.Spec.X, "error", m.Err)
		}
	}
	if err := analysis.WriteReport(cfg.Output.ReportPath, models); err != nil {
		return err
	}
	logger.Info("report written",
		"path", cfg.Output.ReportPath,
		"models", len(models),
		"fitted", analysis.Fitted(models),
	)
	res.Models = models

	desc, err := analysis.Describe(res.Joined, analysis.DescribeColumn)
	if err != nil {
		return fmt.Errorf("analysis: %w", err)
	}
	desc.Log(logger)
	res.Description = desc

	if cfg.Output.PlotPath == "" {
		return nil
	}
	if err := analysis.RenderScatter(res.Joined, analysis.PlotX, analysis.PlotY, cfg.Output.PlotPath); err != nil {
		return err
	}
	logger.Info("scatter written", "path", cfg.Output.PlotPath)
	return nil
}
