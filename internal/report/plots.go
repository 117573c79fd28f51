package report

import (
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"MovieScanner/internal/domain"
)

// SaveScatterPlots renders the two analysis plots (runtime vs. metascore and
// year vs. metascore) as PNGs under dir and returns the written paths. Rows
// with a missing coordinate are skipped per plot.
func SaveScatterPlots(records []domain.MovieRecord, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create plot dir: %w", err)
	}

	var runtimeXYs, yearXYs plotter.XYs
	for _, rec := range records {
		if rec.Metascore.Valid && rec.RuntimeMinutes.Valid {
			runtimeXYs = append(runtimeXYs, plotter.XY{X: rec.Metascore.Value, Y: rec.RuntimeMinutes.Value})
		}
		if rec.Metascore.Valid && rec.Year.Valid {
			yearXYs = append(yearXYs, plotter.XY{X: rec.Metascore.Value, Y: float64(rec.Year.Value)})
		}
	}

	var paths []string

	path := filepath.Join(dir, "runtime_vs_metascore.png")
	if err := saveScatter(runtimeXYs, "Runtime vs. Metascore", "metascore", "runtime (min)", path); err != nil {
		return paths, err
	}
	paths = append(paths, path)

	path = filepath.Join(dir, "year_vs_metascore.png")
	if err := saveScatter(yearXYs, "Year vs. Metascore", "metascore", "year", path); err != nil {
		return paths, err
	}
	paths = append(paths, path)

	return paths, nil
}

func saveScatter(xys plotter.XYs, title, xLabel, yLabel, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("build scatter %s: %w", title, err)
	}
	p.Add(scatter)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save plot %s: %w", path, err)
	}
	return nil
}
