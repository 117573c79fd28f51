// Package report is the consumer of the normalized movie table: descriptive
// statistics split into continuous and categorical variables, two scatter
// plots, and one least-squares model explaining runtime.
package report

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"MovieScanner/internal/domain"
)

// ContinuousSummary describes one numeric column. Missing counts rows whose
// value failed normalization; statistics cover the present values only.
type ContinuousSummary struct {
	Name    string
	Count   int
	Missing int
	Mean    float64
	StdDev  float64
	Min     float64
	Median  float64
	Max     float64
}

// LevelCount is one level of a categorical column with its frequency.
type LevelCount struct {
	Value string
	Count int
}

// CategoricalSummary describes one categorical column, levels ordered by
// descending frequency (ties broken by name).
type CategoricalSummary struct {
	Name   string
	Levels []LevelCount
}

// TableSummary is the full descriptive-statistics block for one run.
type TableSummary struct {
	Rows        int
	Continuous  []ContinuousSummary
	Categorical []CategoricalSummary
}

// Describe computes summary statistics over the normalized table.
func Describe(records []domain.MovieRecord) TableSummary {
	var years, scores, runtimes []float64
	for _, rec := range records {
		if rec.Year.Valid {
			years = append(years, float64(rec.Year.Value))
		}
		if rec.Metascore.Valid {
			scores = append(scores, rec.Metascore.Value)
		}
		if rec.RuntimeMinutes.Valid {
			runtimes = append(runtimes, rec.RuntimeMinutes.Value)
		}
	}

	n := len(records)
	return TableSummary{
		Rows: n,
		Continuous: []ContinuousSummary{
			summarizeContinuous("year", years, n),
			summarizeContinuous("metascore", scores, n),
			summarizeContinuous("runtimeMinutes", runtimes, n),
		},
		Categorical: []CategoricalSummary{
			summarizeCategorical("distributor", records, func(r domain.MovieRecord) string { return r.Distributor }),
			summarizeCategorical("director", records, func(r domain.MovieRecord) string { return r.Director }),
			summarizeCategorical("country", records, func(r domain.MovieRecord) string { return r.Country }),
		},
	}
}

func summarizeContinuous(name string, values []float64, rows int) ContinuousSummary {
	s := ContinuousSummary{
		Name:    name,
		Count:   len(values),
		Missing: rows - len(values),
	}
	if len(values) == 0 {
		return s
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	s.Mean = stat.Mean(sorted, nil)
	if len(sorted) > 1 {
		s.StdDev = stat.StdDev(sorted, nil)
	}
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	return s
}

func summarizeCategorical(name string, records []domain.MovieRecord, value func(domain.MovieRecord) string) CategoricalSummary {
	counts := map[string]int{}
	for _, rec := range records {
		if v := value(rec); v != "" {
			counts[v]++
		}
	}

	levels := make([]LevelCount, 0, len(counts))
	for v, c := range counts {
		levels = append(levels, LevelCount{Value: v, Count: c})
	}
	sort.Slice(levels, func(i, j int) bool {
		if levels[i].Count != levels[j].Count {
			return levels[i].Count > levels[j].Count
		}
		return levels[i].Value < levels[j].Value
	})

	return CategoricalSummary{Name: name, Levels: levels}
}
