// Package report turns backend payloads into what the result pages and the
// terminal printer show: score colors, circle geometry, section summaries,
// bulk tables, match filters and download names.
package report

// Report palette used on the analysis pages.
const (
	ColorGreen  = "#10B981"
	ColorYellow = "#F59E0B"
	ColorRed    = "#EF4444"
)

// Table palette used on the bulk and match manager pages.
const (
	TableGreen  = "#4CAF50"
	TableOrange = "#FF9800"
	TableRed    = "#F44336"
)

// ScoreColor returns the report color for a 0-10 score.
func ScoreColor(score float64) string {
	switch {
	case score >= 8:
		return ColorGreen
	case score >= 6:
		return ColorYellow
	default:
		return ColorRed
	}
}

// TableColor returns the table color for a 0-10 score.
func TableColor(score float64) string {
	switch {
	case score >= 8:
		return TableGreen
	case score >= 6:
		return TableOrange
	default:
		return TableRed
	}
}

// PercentColor returns the report color for a 0-100 percentage.
func PercentColor(percent float64) string {
	switch {
	case percent >= 80:
		return ColorGreen
	case percent >= 60:
		return ColorYellow
	default:
		return ColorRed
	}
}

// StatusColor returns the badge color for a match status.
func StatusColor(status string) string {
	if status == "MATCHED" {
		return TableGreen
	}
	return TableRed
}
