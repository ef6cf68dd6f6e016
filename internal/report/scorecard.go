package report

// Category is one row of the ATS score breakdown.
type Category struct {
	Name    string
	Percent float64
	Color   string
}

// Scorecard returns the fixed score breakdown shown next to a job match.
func Scorecard() []Category {
	rows := []struct {
		name    string
		percent float64
	}{
		{"Keyword Match", 85},
		{"Format Compliance", 92},
		{"Content Quality", 78},
		{"Section Completeness", 88},
		{"Grammar & Spelling", 95},
	}
	out := make([]Category, 0, len(rows))
	for _, r := range rows {
		out = append(out, Category{Name: r.name, Percent: r.percent, Color: PercentColor(r.percent)})
	}
	return out
}
