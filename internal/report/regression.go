package report

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"MovieScanner/internal/domain"
)

// RuntimeModel is the ordinary-least-squares fit of runtime on release year,
// metascore and a USA indicator derived from the normalized country.
type RuntimeModel struct {
	Intercept      float64
	YearCoef       float64
	MetascoreCoef  float64
	CountryUSACoef float64
	RSquared       float64
	N              int
}

const minFitRows = 5

// FitRuntimeModel fits runtimeMinutes ~ year + metascore + countryUSA by QR
// least squares. Rows with any missing regressor or response are excluded
// from the fit only; they stay in the table for everything else.
func FitRuntimeModel(records []domain.MovieRecord) (RuntimeModel, error) {
	var xs []float64
	var ys []float64
	for _, rec := range records {
		if !rec.Year.Valid || !rec.Metascore.Valid || !rec.RuntimeMinutes.Valid {
			continue
		}
		usa := 0.0
		if rec.Country == "USA" {
			usa = 1.0
		}
		xs = append(xs, 1, float64(rec.Year.Value), rec.Metascore.Value, usa)
		ys = append(ys, rec.RuntimeMinutes.Value)
	}

	n := len(ys)
	if n < minFitRows {
		return RuntimeModel{}, fmt.Errorf("regression needs at least %d complete rows, have %d", minFitRows, n)
	}

	x := mat.NewDense(n, 4, xs)
	y := mat.NewDense(n, 1, ys)

	var qr mat.QR
	qr.Factorize(x)

	var beta mat.Dense
	if err := qr.SolveTo(&beta, false, y); err != nil {
		return RuntimeModel{}, fmt.Errorf("solve least squares: %w", err)
	}

	model := RuntimeModel{
		Intercept:      beta.At(0, 0),
		YearCoef:       beta.At(1, 0),
		MetascoreCoef:  beta.At(2, 0),
		CountryUSACoef: beta.At(3, 0),
		N:              n,
	}

	var mean float64
	for _, v := range ys {
		mean += v
	}
	mean /= float64(n)

	var fitted mat.Dense
	fitted.Mul(x, &beta)

	var ssRes, ssTot float64
	for i := 0; i < n; i++ {
		res := ys[i] - fitted.At(i, 0)
		ssRes += res * res
		dev := ys[i] - mean
		ssTot += dev * dev
	}
	if ssTot > 0 {
		model.RSquared = 1 - ssRes/ssTot
	}

	return model, nil
}
