package models

// Dataset names. Each maps to one persisted table.
const (
	DatasetGlobal        = "global"
	DatasetRegional      = "regional"
	DatasetInstallations = "installations"
)

// Units used in reports and chart axes.
const (
	UnitBillionUSD    = "billion USD"
	UnitThousandUnits = "thousand units"
)

// Metric describes one tracked sub-series: its column key in the persisted
// table, its display label, which dataset it lives in, and its unit.
type Metric struct {
	Key     string
	Label   string
	Dataset string
	Unit    string
}

// Registry is the closed set of metrics the engine projects, in report
// order. The fan-out over datasets is driven entirely by this list.
var Registry = []Metric{
	{Key: "global_market_size", Label: "Global Market Size", Dataset: DatasetGlobal, Unit: UnitBillionUSD},
	{Key: "industrial_robots", Label: "Industrial Robots", Dataset: DatasetGlobal, Unit: UnitBillionUSD},
	{Key: "service_robots", Label: "Service Robots", Dataset: DatasetGlobal, Unit: UnitBillionUSD},
	{Key: "medical_robots", Label: "Medical Robots", Dataset: DatasetGlobal, Unit: UnitBillionUSD},
	{Key: "agricultural_robots", Label: "Agricultural Robots", Dataset: DatasetGlobal, Unit: UnitBillionUSD},
	{Key: "china", Label: "China", Dataset: DatasetRegional, Unit: UnitBillionUSD},
	{Key: "japan", Label: "Japan", Dataset: DatasetRegional, Unit: UnitBillionUSD},
	{Key: "south_korea", Label: "South Korea", Dataset: DatasetRegional, Unit: UnitBillionUSD},
	{Key: "germany", Label: "Germany", Dataset: DatasetRegional, Unit: UnitBillionUSD},
	{Key: "usa", Label: "United States", Dataset: DatasetRegional, Unit: UnitBillionUSD},
	{Key: "rest_of_world", Label: "Rest of World", Dataset: DatasetRegional, Unit: UnitBillionUSD},
	{Key: "global_installations", Label: "Global Installations", Dataset: DatasetInstallations, Unit: UnitThousandUnits},
	{Key: "china_installations", Label: "China Installations", Dataset: DatasetInstallations, Unit: UnitThousandUnits},
	{Key: "industrial_installations", Label: "Industrial Installations", Dataset: DatasetInstallations, Unit: UnitThousandUnits},
	{Key: "service_installations", Label: "Service Installations", Dataset: DatasetInstallations, Unit: UnitThousandUnits},
}

// MetricsFor returns the registry entries belonging to one dataset,
// preserving registry order.
func MetricsFor(dataset string) []Metric {
	var out []Metric
	for _, m := range Registry {
		if m.Dataset == dataset {
			out = append(out, m)
		}
	}
	return out
}

// RequiredColumns returns the column keys a persisted table must contain.
func RequiredColumns(dataset string) []string {
	metrics := MetricsFor(dataset)
	cols := make([]string, len(metrics))
	for i, m := range metrics {
		cols[i] = m.Key
	}
	return cols
}

// LabelFor returns the display label for a metric key, or the key itself
// when it is not in the registry.
func LabelFor(key string) string {
	for _, m := range Registry {
		if m.Key == key {
			return m.Label
		}
	}
	return key
}
