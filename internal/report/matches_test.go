package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/ats-ui/internal/types"
)

func sampleMatches() []types.ResumeMatch {
	return []types.ResumeMatch{
		{MatchID: "1", ResumeName: "alice.pdf", CompanyName: "Acme", RoleName: "Backend Engineer", JobDescription: "Go and Postgres", ATSScore: 6, MatchStatus: types.MatchStatusMatched},
		{MatchID: "2", ResumeName: "bob.pdf", CompanyName: "Globex", RoleName: "QA", JobDescription: "Selenium", ATSScore: 3, MatchStatus: types.MatchStatusUnmatched},
		{MatchID: "3", ResumeName: "carol.pdf", CompanyName: "Initech", RoleName: "SRE", JobDescription: "Kubernetes, GO tooling", ATSScore: 9, MatchStatus: types.MatchStatusMatched},
	}
}

func ids(matches []types.ResumeMatch) []string {
	out := []string{}
	for _, m := range matches {
		out = append(out, m.MatchID)
	}
	return out
}

func TestFilterMatches(t *testing.T) {
	matches := sampleMatches()

	tests := []struct {
		name   string
		filter string
		query  string
		want   []string
	}{
		{"all sorted by score", FilterAll, "", []string{"3", "1", "2"}},
		{"matched", FilterMatched, "", []string{"3", "1"}},
		{"unmatched", FilterUnmatched, "", []string{"2"}},
		{"unknown filter means all", "bogus", "", []string{"3", "1", "2"}},
		{"search job description case-insensitively", FilterAll, "go", []string{"3", "1"}},
		{"search company", FilterAll, "GLOBEX", []string{"2"}},
		{"search role within matched", FilterMatched, "sre", []string{"3"}},
		{"blank query ignored", FilterAll, "   ", []string{"3", "1", "2"}},
		{"no hits", FilterAll, "cobol", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterMatches(matches, tt.filter, tt.query)))
		})
	}

	assert.Equal(t, "1", matches[0].MatchID, "input order is preserved")
}

func TestFindBestMatch(t *testing.T) {
	best := []types.ResumeMatch{{JDIndex: 0, NewResumeName: "A"}, {JDIndex: 2, NewResumeName: "C"}}

	m, ok := FindBestMatch(best, 2)
	assert.True(t, ok)
	assert.Equal(t, "C", m.NewResumeName)

	_, ok = FindBestMatch(best, 1)
	assert.False(t, ok)
}

func TestEmptyMatchesText(t *testing.T) {
	assert.Equal(t, "No matches found. Run a bulk analysis first.", EmptyMatchesText(0))
	assert.Equal(t, "No matches found. Try adjusting your filters.", EmptyMatchesText(3))
}
