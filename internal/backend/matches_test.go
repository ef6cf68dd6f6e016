package backend

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-ui/internal/types"
)

const matchRecords = `[
	{"matchId": "m1", "resumeName": "a.pdf", "newResumeName": "Acme_Dev_A", "atsScore": 8.5, "matchStatus": "MATCHED", "jdIndex": 0},
	{"matchId": "m2", "resumeName": "b.pdf", "atsScore": 4, "matchStatus": "UNMATCHED", "jdIndex": 1}
]`

func TestMatchListEndpoints(t *testing.T) {
	tests := []struct {
		name string
		path string
		call func(*Client) ([]types.ResumeMatch, error)
	}{
		{"list", "/api/resume-matches", func(c *Client) ([]types.ResumeMatch, error) { return c.ListMatches(context.Background()) }},
		{"best", "/api/resume-matches/best-matches", func(c *Client) ([]types.ResumeMatch, error) { return c.BestMatches(context.Background()) }},
		{"matched", "/api/resume-matches/matched", func(c *Client) ([]types.ResumeMatch, error) { return c.MatchedResumes(context.Background()) }},
		{"unmatched", "/api/resume-matches/unmatched", func(c *Client) ([]types.ResumeMatch, error) { return c.UnmatchedResumes(context.Background()) }},
		{"by jd", "/api/resume-matches/job-description/3", func(c *Client) ([]types.ResumeMatch, error) { return c.MatchesForJD(context.Background(), 3) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, tt.path, r.URL.Path)
				_, _ = w.Write([]byte(matchRecords))
			})

			matches, err := tt.call(client)
			require.NoError(t, err)
			require.Len(t, matches, 2)
			assert.Equal(t, "m1", matches[0].MatchID)
			assert.Equal(t, types.Score(8.5), matches[0].ATSScore)
			assert.True(t, matches[0].Matched())
			assert.False(t, matches[1].Matched())
		})
	}
}

func TestAllMatches_WrappedResponse(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/resume-matches/all", r.URL.Path)
		_, _ = w.Write([]byte(`{"matches": ` + matchRecords + `, "message": "Found 2 matches"}`))
	})

	matches, err := client.AllMatches(context.Background())
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestListMatches_FallsBackToAll(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusMethodNotAllowed} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			var paths []string
			client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				paths = append(paths, r.URL.Path)
				if r.URL.Path == "/api/resume-matches" {
					w.WriteHeader(status)
					return
				}
				_, _ = w.Write([]byte(`{"matches": ` + matchRecords + `, "message": "All matches retrieved successfully"}`))
			})

			matches, err := client.ListMatches(context.Background())
			require.NoError(t, err)
			assert.Len(t, matches, 2)
			assert.Equal(t, []string{"/api/resume-matches", "/api/resume-matches/all"}, paths)
		})
	}
}

func TestListMatches_ServerErrorDoesNotFallBack(t *testing.T) {
	var calls int
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.ListMatches(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestStatistics(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/resume-matches/statistics", r.URL.Path)
		_, _ = w.Write([]byte(`{"totalMatches": 10, "matchedResumes": 6, "unmatchedResumes": 4, "totalJobDescriptions": 3}`))
	})

	stats, err := client.Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, types.MatchStatistics{TotalMatches: 10, MatchedResumes: 6, UnmatchedResumes: 4, TotalJobDescriptions: 3}, *stats)
}

func TestSearchAndScoreRange(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/resume-matches/search":
			assert.Equal(t, "go & rust", r.URL.Query().Get("query"))
		case "/api/resume-matches/score-range":
			assert.Equal(t, "6.5", r.URL.Query().Get("minScore"))
			assert.Equal(t, "10", r.URL.Query().Get("maxScore"))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(matchRecords))
	})

	matches, err := client.SearchMatches(context.Background(), "go & rust")
	require.NoError(t, err)
	assert.Len(t, matches, 2)

	matches, err = client.MatchesByScoreRange(context.Background(), types.ScoreRange{Min: 6.5, Max: 10})
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestMatchesByScoreRange_Invalid(t *testing.T) {
	client, rec := newTestClient(t, func(http.ResponseWriter, *http.Request) {})

	_, err := client.MatchesByScoreRange(context.Background(), types.ScoreRange{Min: 8, Max: 2})
	require.Error(t, err)
	var reqErr *types.RequestError
	assert.ErrorAs(t, err, &reqErr)
	assert.Empty(t, rec.calls)
}

func TestGetMatch_NotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/resume-matches/missing%20id", r.URL.EscapedPath())
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetMatch(context.Background(), "missing id")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestGetMatch_EscapesID(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/resume-matches/a%2Fb%3Fc", r.URL.EscapedPath())
		assert.Empty(t, r.URL.RawQuery)
		_, _ = w.Write([]byte(`{"matchId": "a/b?c", "resumeName": "a.pdf", "atsScore": 7, "jdIndex": 0}`))
	})

	match, err := client.GetMatch(context.Background(), "a/b?c")
	require.NoError(t, err)
	assert.Equal(t, "a/b?c", match.MatchID)
}

func TestBestMatchForJD(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/resume-matches/job-description/0/best", r.URL.Path)
		_, _ = w.Write([]byte(`{"matchId": "m1", "resumeName": "a.pdf", "newResumeName": "Acme_Dev_A", "atsScore": 8.5, "jdIndex": 0}`))
	})

	match, err := client.BestMatchForJD(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "Acme_Dev_A", match.NewResumeName)

	_, err = client.BestMatchForJD(context.Background(), -1)
	assert.Error(t, err)
}

func TestDownloadBestMatch(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/resume-matches/job-description/2/download-best", r.URL.Path)
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="Acme_Dev_A.pdf"`)
		_, _ = w.Write([]byte("%PDF-1.4"))
	})

	dl, err := client.DownloadBestMatch(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Acme_Dev_A.pdf", dl.Filename)
	assert.Equal(t, "application/pdf", dl.ContentType)
	assert.Equal(t, []byte("%PDF-1.4"), dl.Data)
}

func TestClearMatches(t *testing.T) {
	called := false
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/resume-matches", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.ClearMatches(context.Background()))
	assert.True(t, called)
}

func TestDecodeMatches(t *testing.T) {
	matches, err := decodeMatches([]byte(`null`))
	require.NoError(t, err)
	assert.Nil(t, matches)

	_, err = decodeMatches([]byte(`[{"resumeName": 5}]`))
	assert.Error(t, err)
}
