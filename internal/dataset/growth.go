package dataset

import (
	"fmt"
	"math"

	"github.com/marketscope/roboscope/internal/models"
)

// GrowthSeries augments one table column with year-over-year percentage
// change and the compound annual growth rate over the full span. YoY[0] is
// NaN (no prior year); CAGR is NaN when the first value is not positive.
type GrowthSeries struct {
	Years  []int
	Values []float64
	YoY    []float64
	CAGR   float64
}

// GrowthRates computes YoY and CAGR for a named column of a table. The
// column must exist and the table must have at least two rows.
func GrowthRates(table *models.Table, column string) (*GrowthSeries, error) {
	values, err := table.Column(column)
	if err != nil {
		return nil, err
	}
	if len(values) < 2 {
		return nil, fmt.Errorf("%w: growth rates need at least 2 rows, table %q has %d", models.ErrInvalidInput, table.Name(), len(values))
	}

	yoy := make([]float64, len(values))
	yoy[0] = math.NaN()
	for i := 1; i < len(values); i++ {
		if values[i-1] == 0 {
			yoy[i] = math.NaN()
			continue
		}
		yoy[i] = (values[i] - values[i-1]) / values[i-1] * 100
	}

	cagr := math.NaN()
	if first := values[0]; first > 0 {
		span := float64(len(values) - 1)
		cagr = (math.Pow(values[len(values)-1]/first, 1/span) - 1) * 100
	}

	return &GrowthSeries{
		Years:  table.Years(),
		Values: values,
		YoY:    yoy,
		CAGR:   cagr,
	}, nil
}
