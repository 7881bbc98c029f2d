package forecast

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/marketscope/roboscope/internal/models"
)

// Polynomial fits a least-squares polynomial of the configured degree over a
// monomial basis [1, year, year², …] and evaluates it at the target year.
// Degree is fixed at 2 by default: enough to capture the mild curvature a
// straight line misses without overfitting a ten-point series.
type Polynomial struct {
	Degree int
}

// Name returns the method name.
func (Polynomial) Name() string { return MethodPolynomial }

// Project evaluates the fitted polynomial at the target year. When the
// series is too short for the configured degree, the degree is reduced to
// what the data supports; a failed factorization falls back to the linear
// method.
func (p Polynomial) Project(s models.Series, targetYear int) float64 {
	n := s.Len()
	switch n {
	case 0:
		return 0
	case 1:
		return clamp(s.Last().Value)
	}

	degree := p.Degree
	if degree < 1 {
		degree = 2
	}
	if n < degree+1 {
		degree = n - 1
	}

	years := s.Years()
	a := mat.NewDense(n, degree+1, nil)
	for i := 0; i < n; i++ {
		for j := 0; j <= degree; j++ {
			a.Set(i, j, math.Pow(years[i], float64(j)))
		}
	}
	b := mat.NewVecDense(n, s.Values())

	var qr mat.QR
	qr.Factorize(a)

	var coef mat.VecDense
	if err := qr.SolveVecTo(&coef, false, b); err != nil {
		return Linear{}.Project(s, targetYear)
	}

	x := float64(targetYear)
	value := 0.0
	for j := 0; j <= degree; j++ {
		value += coef.AtVec(j) * math.Pow(x, float64(j))
	}
	return clamp(value)
}
