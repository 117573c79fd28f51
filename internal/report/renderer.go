package report

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"MovieScanner/internal/domain"
	"MovieScanner/internal/ports"
)

// Renderer is the reporting layer adapter: it computes the summary block, the
// regression fit and (optionally) the plots, writes a text digest into the
// output directory and returns the digest for notification.
type Renderer struct {
	outputDir string
	plots     bool
	logger    *slog.Logger
}

var _ ports.Reporter = (*Renderer)(nil)

// NewRenderer wires the output directory and plot toggle.
func NewRenderer(outputDir string, plots bool, logger *slog.Logger) *Renderer {
	return &Renderer{outputDir: outputDir, plots: plots, logger: logger}
}

// Publish consumes the normalized table. A failed regression or plot degrades
// to a note in the digest; only the inability to write the digest itself is an
// error.
func (r *Renderer) Publish(_ context.Context, records []domain.MovieRecord) (string, error) {
	summary := Describe(records)
	model, fitErr := FitRuntimeModel(records)

	digest := BuildDigest(summary, model, fitErr)

	if r.plots {
		if paths, err := SaveScatterPlots(records, r.outputDir); err != nil {
			r.warn("plot rendering failed", "error", err)
		} else {
			r.debug("plots written", "paths", strings.Join(paths, ", "))
		}
	}

	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return digest, fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(r.outputDir, "digest.txt")
	if err := os.WriteFile(path, []byte(digest), 0o644); err != nil {
		return digest, fmt.Errorf("write digest: %w", err)
	}

	return digest, nil
}

const digestTopLevels = 5

// BuildDigest renders the summary and fit as a plain-text report.
func BuildDigest(summary TableSummary, model RuntimeModel, fitErr error) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Movie table: %d records\n\n", summary.Rows)

	b.WriteString("Continuous variables\n")
	for _, c := range summary.Continuous {
		fmt.Fprintf(&b, "- %s: n=%d missing=%d mean=%.2f sd=%.2f min=%.0f median=%.1f max=%.0f\n",
			c.Name, c.Count, c.Missing, c.Mean, c.StdDev, c.Min, c.Median, c.Max)
	}

	b.WriteString("\nCategorical variables\n")
	for _, c := range summary.Categorical {
		fmt.Fprintf(&b, "- %s (%d levels):", c.Name, len(c.Levels))
		top := c.Levels
		if len(top) > digestTopLevels {
			top = top[:digestTopLevels]
		}
		for _, lvl := range top {
			fmt.Fprintf(&b, " %s=%d", lvl.Value, lvl.Count)
		}
		b.WriteString("\n")
	}

	b.WriteString("\nRuntime model (OLS)\n")
	if fitErr != nil {
		fmt.Fprintf(&b, "- not fitted: %v\n", fitErr)
		return b.String()
	}
	fmt.Fprintf(&b, "- runtimeMinutes = %.2f + %.3f*year + %.3f*metascore + %.3f*countryUSA\n",
		model.Intercept, model.YearCoef, model.MetascoreCoef, model.CountryUSACoef)
	fmt.Fprintf(&b, "- n=%d R2=%.3f\n", model.N, model.RSquared)

	return b.String()
}

func (r *Renderer) debug(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Debug(msg, args...)
	}
}

func (r *Renderer) warn(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Warn(msg, args...)
	}
}
