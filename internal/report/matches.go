package report

import (
	"slices"
	"strings"

	"github.com/jonathan/ats-ui/internal/types"
)

// Match list filters.
const (
	FilterAll       = "all"
	FilterMatched   = "matched"
	FilterUnmatched = "unmatched"
)

// NormalizeFilter maps unknown filter values to FilterAll.
func NormalizeFilter(filter string) string {
	switch filter {
	case FilterMatched, FilterUnmatched:
		return filter
	default:
		return FilterAll
	}
}

// FilterMatches applies the status filter and a case-insensitive search over
// resume name, company, role and job description, then orders by score,
// highest first.
func FilterMatches(matches []types.ResumeMatch, filter, query string) []types.ResumeMatch {
	filter = NormalizeFilter(filter)
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]types.ResumeMatch, 0, len(matches))
	for _, m := range matches {
		switch filter {
		case FilterMatched:
			if m.MatchStatus != types.MatchStatusMatched {
				continue
			}
		case FilterUnmatched:
			if m.MatchStatus != types.MatchStatusUnmatched {
				continue
			}
		}
		if query != "" && !matchesQuery(m, query) {
			continue
		}
		out = append(out, m)
	}

	slices.SortStableFunc(out, func(a, b types.ResumeMatch) int {
		return compareFloat(b.ATSScore.Float64(), a.ATSScore.Float64())
	})
	return out
}

func matchesQuery(m types.ResumeMatch, query string) bool {
	for _, field := range []string{m.ResumeName, m.CompanyName, m.RoleName, m.JobDescription} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// FindBestMatch returns the best match record for a job description.
func FindBestMatch(best []types.ResumeMatch, jdIndex int) (types.ResumeMatch, bool) {
	for _, m := range best {
		if m.JDIndex == jdIndex {
			return m, true
		}
	}
	return types.ResumeMatch{}, false
}

// EmptyMatchesText explains an empty match list.
func EmptyMatchesText(total int) string {
	if total == 0 {
		return "No matches found. Run a bulk analysis first."
	}
	return "No matches found. Try adjusting your filters."
}
