package report

import (
	"slices"
	"strings"

	"github.com/jonathan/ats-ui/internal/types"
)

// Sort keys for the bulk results table.
const (
	SortByScore = "score"
	SortByName  = "name"
	SortByJD    = "jd"
)

// SortResults returns a sorted copy of results: by score (highest first),
// resume name, or job description index. Any other key keeps backend order.
func SortResults(results []types.ResumeResult, by string) []types.ResumeResult {
	sorted := slices.Clone(results)
	switch by {
	case SortByScore:
		slices.SortStableFunc(sorted, func(a, b types.ResumeResult) int {
			return compareFloat(b.ATSScore.Float64(), a.ATSScore.Float64())
		})
	case SortByName:
		slices.SortStableFunc(sorted, func(a, b types.ResumeResult) int {
			return strings.Compare(strings.ToLower(a.ResumeName), strings.ToLower(b.ResumeName))
		})
	case SortByJD:
		slices.SortStableFunc(sorted, func(a, b types.ResumeResult) int {
			return a.JDIndex - b.JDIndex
		})
	}
	return sorted
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// BestResumeForJD finds the highest scoring match for one job description
// across every resume that processed without error. The returned match
// carries its parent resume's content so it can be downloaded. It returns
// false when no resume matched the job description.
func BestResumeForJD(results []types.ResumeResult, jdIndex int) (types.JDMatch, bool) {
	var (
		best   types.JDMatch
		parent *types.ResumeResult
		high   = -1.0
	)
	for i := range results {
		r := &results[i]
		if r.Failed() {
			continue
		}
		for _, m := range r.AllMatches {
			if m.JDIndex != jdIndex {
				continue
			}
			if score := m.ATSScore.Float64(); score > high {
				high = score
				best = m
				parent = r
			}
		}
	}
	if parent == nil {
		return types.JDMatch{}, false
	}
	if parent.OriginalResumeContent != "" {
		best.OriginalResumeContent = parent.OriginalResumeContent
		best.OriginalResumeName = parent.OriginalResumeName
	}
	return best, true
}

// JDRow is one row of the job description summary table.
type JDRow struct {
	JDIndex int
	// Label is the 1-based "JD #n" shown to users.
	Label   string
	Found   bool
	Best    types.JDMatch
	Score   float64
	Color   string
	Rename  string
	CanLoad bool
}

// JDSummary returns one row per job description, 0..total-1.
func JDSummary(results []types.ResumeResult, total int) []JDRow {
	rows := make([]JDRow, 0, max(total, 0))
	for i := 0; i < total; i++ {
		row := JDRow{JDIndex: i, Label: JDLabel(i), Rename: "No rename", Color: TableColor(0)}
		if best, ok := BestResumeForJD(results, i); ok {
			row.Found = true
			row.Best = best
			row.Score = best.ATSScore.Float64()
			row.Color = TableColor(row.Score)
			if best.NewResumeName != "" {
				row.Rename = best.NewResumeName
				row.CanLoad = true
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// JDLabel returns the 1-based label for a job description index.
func JDLabel(jdIndex int) string {
	return "JD #" + itoa(jdIndex+1)
}

// RankBadge returns the podium badge for a 0-based rank.
func RankBadge(i int) string {
	switch i {
	case 0:
		return "🥇 1st"
	case 1:
		return "🥈 2nd"
	case 2:
		return "🥉 3rd"
	default:
		return "#" + itoa(i+1)
	}
}

// TruncateLength is where previews of long text are cut.
const TruncateLength = 100

// Truncate shortens s to TruncateLength characters followed by "...".
func Truncate(s string) string {
	runes := []rune(s)
	if len(runes) <= TruncateLength {
		return s
	}
	return string(runes[:TruncateLength]) + "..."
}

// BulkView is everything the bulk JD results page shows.
type BulkView struct {
	Results              []types.ResumeResult
	SortBy               string
	TotalResumes         int
	TotalJobDescriptions int
	TotalMatched         int
	TotalUnmatched       int
	Best                 *types.ResumeResult
	BestColor            string
	Rows                 []JDRow
	HasExcel             bool
}

// NewBulkView builds the bulk page for a mode 4 report.
func NewBulkView(r *types.BulkReport, sortBy string) BulkView {
	if r == nil {
		r = &types.BulkReport{}
	}
	if sortBy == "" {
		sortBy = SortByScore
	}

	totalJDs := r.TotalJobDescriptions
	if totalJDs == 0 {
		totalJDs = r.Summary.TotalJobDescriptions
	}
	totalResumes := r.Summary.TotalResumes
	if totalResumes == 0 {
		totalResumes = r.TotalResumes
	}

	v := BulkView{
		Results:              SortResults(r.ResumeResults, sortBy),
		SortBy:               sortBy,
		TotalResumes:         totalResumes,
		TotalJobDescriptions: totalJDs,
		TotalMatched:         r.TotalMatched,
		TotalUnmatched:       r.TotalUnmatched,
		Best:                 r.Summary.BestOverallMatch,
		Rows:                 JDSummary(r.ResumeResults, totalJDs),
		HasExcel:             r.HasExcel(),
	}
	if v.Best != nil {
		v.BestColor = TableColor(v.Best.ATSScore.Float64())
	}
	return v
}
