package dataset

import (
	"fmt"

	"github.com/marketscope/roboscope/internal/models"
)

// Historical data covers 2015–2024. Market values are billion USD,
// installation counts are thousands of units; estimates follow IFR
// published trends.
var historicalYears = []int{2015, 2016, 2017, 2018, 2019, 2020, 2021, 2022, 2023, 2024}

var globalColumns = []struct {
	key    string
	values []float64
}{
	{"global_market_size", []float64{24.8, 27.4, 31.1, 34.8, 38.2, 42.5, 47.8, 55.3, 63.2, 70.5}},
	{"industrial_robots", []float64{18.5, 20.2, 22.8, 25.1, 27.3, 30.2, 33.8, 38.9, 44.2, 49.1}},
	{"service_robots", []float64{3.2, 3.8, 4.5, 5.2, 6.1, 7.3, 8.5, 10.1, 12.0, 13.8}},
	{"medical_robots", []float64{1.8, 2.1, 2.4, 2.8, 3.2, 3.6, 4.1, 4.7, 5.3, 6.0}},
	{"agricultural_robots", []float64{1.3, 1.3, 1.4, 1.7, 1.6, 1.4, 1.4, 1.6, 1.7, 1.6}},
}

var regionalColumns = []struct {
	key    string
	values []float64
}{
	{"china", []float64{6.8, 8.2, 10.1, 12.3, 14.5, 16.8, 19.5, 22.8, 26.5, 29.8}},
	{"japan", []float64{4.2, 4.5, 4.8, 5.1, 5.4, 5.7, 6.0, 6.4, 6.8, 7.2}},
	{"south_korea", []float64{2.1, 2.3, 2.5, 2.7, 2.9, 3.1, 3.3, 3.5, 3.7, 3.9}},
	{"germany", []float64{2.8, 3.0, 3.2, 3.4, 3.6, 3.8, 4.0, 4.3, 4.6, 4.9}},
	{"usa", []float64{3.5, 3.8, 4.1, 4.4, 4.7, 5.0, 5.4, 5.8, 6.2, 6.6}},
	{"rest_of_world", []float64{5.4, 5.6, 5.9, 6.3, 6.7, 7.1, 7.6, 8.2, 8.8, 9.5}},
}

var installationsColumns = []struct {
	key    string
	values []float64
}{
	{"global_installations", []float64{254, 294, 340, 381, 422, 465, 517, 553, 610, 680}},
	{"china_installations", []float64{68, 87, 138, 154, 181, 194, 214, 268, 290, 320}},
	{"industrial_installations", []float64{253, 293, 339, 380, 421, 464, 516, 552, 609, 679}},
	{"service_installations", []float64{5.4, 6.7, 8.2, 10.1, 12.5, 15.3, 18.7, 22.4, 26.8, 31.5}},
}

// Historical builds the three historical tables in memory without touching
// disk. The output is identical on every call.
func Historical() (*Bundle, error) {
	global, err := buildTable(models.DatasetGlobal, globalColumns)
	if err != nil {
		return nil, err
	}
	regional, err := buildTable(models.DatasetRegional, regionalColumns)
	if err != nil {
		return nil, err
	}
	installations, err := buildTable(models.DatasetInstallations, installationsColumns)
	if err != nil {
		return nil, err
	}
	return &Bundle{Global: global, Regional: regional, Installations: installations}, nil
}

func buildTable(name string, columns []struct {
	key    string
	values []float64
}) (*models.Table, error) {
	t := models.NewTable(name, historicalYears)
	for _, col := range columns {
		if err := t.AddColumn(col.key, col.values); err != nil {
			return nil, fmt.Errorf("building %s table: %w", name, err)
		}
	}
	return t, nil
}
