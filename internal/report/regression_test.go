package report

import (
	"math"
	"testing"

	"MovieScanner/internal/domain"
)

func TestFitRuntimeModelRecoversCoefficients(t *testing.T) {
	t.Parallel()

	// Exact linear data: runtime = 10 + 0.05*year + 1.2*metascore + 15*usa.
	runtime := func(year int, score float64, usa bool) float64 {
		v := 10 + 0.05*float64(year) + 1.2*score
		if usa {
			v += 15
		}
		return v
	}

	type row struct {
		year  int
		score float64
		usa   bool
	}
	rows := []row{
		{1960, 55, true},
		{1972, 100, true},
		{1981, 63, false},
		{1994, 88, false},
		{2001, 47, true},
		{2010, 91, false},
		{2015, 72, true},
		{2020, 80, false},
	}

	var records []domain.MovieRecord
	for _, r := range rows {
		country := "France"
		if r.usa {
			country = "USA"
		}
		records = append(records, rec(r.year, r.score, runtime(r.year, r.score, r.usa), country, "D"))
	}

	model, err := FitRuntimeModel(records)
	if err != nil {
		t.Fatalf("FitRuntimeModel error: %v", err)
	}

	const tol = 1e-6
	if math.Abs(model.Intercept-10) > tol {
		t.Fatalf("unexpected intercept: %f", model.Intercept)
	}
	if math.Abs(model.YearCoef-0.05) > tol {
		t.Fatalf("unexpected year coefficient: %f", model.YearCoef)
	}
	if math.Abs(model.MetascoreCoef-1.2) > tol {
		t.Fatalf("unexpected metascore coefficient: %f", model.MetascoreCoef)
	}
	if math.Abs(model.CountryUSACoef-15) > tol {
		t.Fatalf("unexpected country coefficient: %f", model.CountryUSACoef)
	}
	if math.Abs(model.RSquared-1) > tol {
		t.Fatalf("unexpected R2: %f", model.RSquared)
	}
	if model.N != len(rows) {
		t.Fatalf("unexpected n: %d", model.N)
	}
}

func TestFitRuntimeModelExcludesIncompleteRows(t *testing.T) {
	t.Parallel()

	records := []domain.MovieRecord{
		rec(1960, 55, 100, "USA", "A"),
		rec(1972, 100, 120, "France", "B"),
		rec(1981, 63, 110, "USA", "C"),
		rec(1994, 88, 130, "UK", "D"),
		rec(2001, 47, 95, "USA", "E"),
		rec(2010, 91, 150, "France", "F"),
		{Title: "no numerics", Country: "USA"},
	}

	model, err := FitRuntimeModel(records)
	if err != nil {
		t.Fatalf("FitRuntimeModel error: %v", err)
	}
	if model.N != 6 {
		t.Fatalf("incomplete row should be excluded from the fit, n=%d", model.N)
	}
}

func TestFitRuntimeModelTooFewRows(t *testing.T) {
	t.Parallel()

	records := []domain.MovieRecord{
		rec(1960, 55, 100, "USA", "A"),
		rec(1972, 100, 120, "France", "B"),
	}

	if _, err := FitRuntimeModel(records); err == nil {
		t.Fatal("expected error for too few complete rows")
	}
}
