package main

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const storedMatches = `[
	{"matchId": "m1", "resumeName": "alice.pdf", "newResumeName": "Acme_Dev_Alice", "companyName": "Acme", "roleName": "Dev", "atsScore": 6, "matchStatus": "MATCHED", "jdIndex": 0},
	{"matchId": "m2", "resumeName": "bob.pdf", "companyName": "Globex", "roleName": "SRE", "atsScore": 9, "matchStatus": "MATCHED", "jdIndex": 1},
	{"matchId": "m3", "resumeName": "carol.pdf", "companyName": "Initech", "roleName": "QA", "atsScore": 3, "matchStatus": "UNMATCHED", "jdIndex": 2}
]`

func serveMatches(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte(storedMatches))
}

func TestMatchesList(t *testing.T) {
	url := fakeBackend(t, map[string]http.HandlerFunc{"GET /api/resume-matches": serveMatches})
	dir := t.TempDir()

	out, err := runCLI(t, "", "--backend-url", url, "-o", dir, "--json", "matches", "list")
	require.NoError(t, err)

	var matches []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &matches))
	require.Len(t, matches, 3)
	assert.Equal(t, "m2", matches[0]["matchId"], "highest score first")
	assert.Equal(t, "m3", matches[2]["matchId"])
}

func TestMatchesList_FilterAndQuery(t *testing.T) {
	url := fakeBackend(t, map[string]http.HandlerFunc{
		"GET /api/resume-matches/matched": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`[
				{"matchId": "m1", "resumeName": "alice.pdf", "companyName": "Acme", "atsScore": 6, "matchStatus": "MATCHED"},
				{"matchId": "m2", "resumeName": "bob.pdf", "companyName": "Globex", "atsScore": 9, "matchStatus": "MATCHED"}
			]`))
		},
	})
	dir := t.TempDir()

	out, err := runCLI(t, "", "--backend-url", url, "-o", dir, "matches", "list", "--filter", "matched", "-q", "acme")
	require.NoError(t, err)
	assert.Contains(t, out, "alice.pdf")
	assert.Contains(t, out, "ID: m1")
	assert.NotContains(t, out, "bob.pdf")
}

func TestMatchesList_JobDescription(t *testing.T) {
	url := fakeBackend(t, map[string]http.HandlerFunc{
		"GET /api/resume-matches/job-description/1": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`[{"matchId": "m2", "resumeName": "bob.pdf", "atsScore": 9, "matchStatus": "MATCHED", "jdIndex": 1}]`))
		},
	})
	dir := t.TempDir()

	out, err := runCLI(t, "", "--backend-url", url, "-o", dir, "matches", "list", "--jd", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "bob.pdf")

	_, err = runCLI(t, "", "--backend-url", url, "-o", dir, "matches", "list", "--jd", "-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid job description index")
}

func TestMatchesList_ReadsAllWhenRootIsMissing(t *testing.T) {
	url := fakeBackend(t, map[string]http.HandlerFunc{
		"GET /api/resume-matches": func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusMethodNotAllowed)
		},
		"GET /api/resume-matches/all": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"matches": ` + storedMatches + `, "message": "All matches retrieved successfully"}`))
		},
	})
	dir := t.TempDir()

	out, err := runCLI(t, "", "--backend-url", url, "-o", dir, "--json", "matches", "list")
	require.NoError(t, err)

	var matches []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &matches))
	assert.Len(t, matches, 3)
}

func TestMatchesList_Empty(t *testing.T) {
	url := fakeBackend(t, map[string]http.HandlerFunc{
		"GET /api/resume-matches": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		},
	})

	out, err := runCLI(t, "", "--backend-url", url, "-o", t.TempDir(), "matches", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No matches found. Run a bulk analysis first.")
}

func TestMatchesStats(t *testing.T) {
	url := fakeBackend(t, map[string]http.HandlerFunc{
		"GET /api/resume-matches/statistics": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"totalMatches": 3, "matchedResumes": 2, "unmatchedResumes": 1, "uniqueJobDescriptions": 3}`))
		},
	})

	out, err := runCLI(t, "", "--backend-url", url, "-o", t.TempDir(), "matches", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "MATCH STATISTICS")
	assert.Contains(t, out, "Matched Resumes:   2")
	assert.Contains(t, out, "Job Descriptions:  3")
}

func TestMatchesBest(t *testing.T) {
	url := fakeBackend(t, map[string]http.HandlerFunc{
		"GET /api/resume-matches/best-matches": serveMatches,
		"GET /api/resume-matches/job-description/1/best": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"matchId": "m2", "resumeName": "bob.pdf", "companyName": "Globex", "atsScore": 9, "jdIndex": 1}`))
		},
	})
	dir := t.TempDir()

	out, err := runCLI(t, "", "--backend-url", url, "-o", dir, "matches", "best")
	require.NoError(t, err)
	assert.Contains(t, out, "BEST MATCHES")
	assert.Contains(t, out, "alice.pdf")

	out, err = runCLI(t, "", "--backend-url", url, "-o", dir, "matches", "best", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "bob.pdf")
	assert.NotContains(t, out, "alice.pdf")
}

func TestMatchesGet(t *testing.T) {
	url := fakeBackend(t, map[string]http.HandlerFunc{
		"GET /api/resume-matches/m1": func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"matchId": "m1", "resumeName": "alice.pdf", "atsScore": 6}`))
		},
		"GET /api/resume-matches/missing": http.NotFound,
	})
	dir := t.TempDir()

	out, err := runCLI(t, "", "--backend-url", url, "-o", dir, "matches", "get", "m1")
	require.NoError(t, err)
	assert.Contains(t, out, "alice.pdf")

	_, err = runCLI(t, "", "--backend-url", url, "-o", dir, "matches", "get", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Server error: 404")
}

func TestMatchesSearch(t *testing.T) {
	var query string
	url := fakeBackend(t, map[string]http.HandlerFunc{
		"GET /api/resume-matches/search": func(w http.ResponseWriter, r *http.Request) {
			query = r.URL.Query().Get("query")
			_, _ = w.Write([]byte(`[]`))
		},
	})

	_, err := runCLI(t, "", "--backend-url", url, "-o", t.TempDir(), "matches", "search", "senior", "go")
	require.NoError(t, err)
	assert.Equal(t, "senior go", query)
}

func TestMatchesRange(t *testing.T) {
	var minScore, maxScore string
	url := fakeBackend(t, map[string]http.HandlerFunc{
		"GET /api/resume-matches/score-range": func(w http.ResponseWriter, r *http.Request) {
			minScore = r.URL.Query().Get("minScore")
			maxScore = r.URL.Query().Get("maxScore")
			serveMatches(w, r)
		},
	})
	dir := t.TempDir()

	_, err := runCLI(t, "", "--backend-url", url, "-o", dir, "matches", "range", "--min", "5", "--max", "8.5")
	require.NoError(t, err)
	assert.Equal(t, "5", minScore)
	assert.Equal(t, "8.5", maxScore)

	_, err = runCLI(t, "", "--backend-url", url, "-o", dir, "matches", "range", "--min", "9", "--max", "2")
	require.Error(t, err)
}

func TestMatchesClear(t *testing.T) {
	var cleared int
	url := fakeBackend(t, map[string]http.HandlerFunc{
		"DELETE /api/resume-matches": func(w http.ResponseWriter, _ *http.Request) {
			cleared++
			w.WriteHeader(http.StatusOK)
		},
	})
	dir := t.TempDir()

	out, err := runCLI(t, "n\n", "--backend-url", url, "-o", dir, "matches", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Aborted.")
	assert.Equal(t, 0, cleared)

	out, err = runCLI(t, "yes\n", "--backend-url", url, "-o", dir, "matches", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "All matches cleared.")
	assert.Equal(t, 1, cleared)

	_, err = runCLI(t, "", "--backend-url", url, "-o", dir, "matches", "clear", "--yes")
	require.NoError(t, err)
	assert.Equal(t, 2, cleared)
}

func TestMatchesDownload(t *testing.T) {
	url := fakeBackend(t, map[string]http.HandlerFunc{
		"GET /api/resume-matches/job-description/0/download-best": func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/pdf")
			w.Header().Set("Content-Disposition", `attachment; filename="Acme_Dev_Alice.pdf"`)
			_, _ = w.Write(pdfBytes)
		},
	})
	dir := t.TempDir()

	out, err := runCLI(t, "", "--backend-url", url, "-o", dir, "matches", "download", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved")

	saved, err := os.ReadFile(filepath.Join(dir, "Acme_Dev_Alice.pdf"))
	require.NoError(t, err)
	assert.Equal(t, pdfBytes, saved)
}

func TestMatchesDownload_NamesFromBestMatch(t *testing.T) {
	url := fakeBackend(t, map[string]http.HandlerFunc{
		"GET /api/resume-matches/job-description/0/download-best": func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/pdf")
			_, _ = w.Write(pdfBytes)
		},
		"GET /api/resume-matches/best-matches": serveMatches,
	})
	dir := t.TempDir()

	_, err := runCLI(t, "", "--backend-url", url, "-o", dir, "matches", "download", "0")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "Acme_Dev_Alice.pdf"))
}

func TestMatchesDownload_InvalidIndex(t *testing.T) {
	url := fakeBackend(t, nil)

	_, err := runCLI(t, "", "--backend-url", url, "-o", t.TempDir(), "matches", "download", "first")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid job description index "first"`)
}
