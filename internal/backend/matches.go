package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/jonathan/ats-ui/internal/types"
	contracts "github.com/jonathan/ats-ui/schemas"
)

const matchesPath = "/api/resume-matches"

// ListMatches returns every stored match record. Backends without a listing
// on the collection root are read through /all instead.
func (c *Client) ListMatches(ctx context.Context) ([]types.ResumeMatch, error) {
	matches, err := c.matchList(ctx, "list matches", matchesPath, nil)
	if status := StatusCode(err); status == http.StatusNotFound || status == http.StatusMethodNotAllowed {
		c.logger.Debug("match listing unavailable, using /all", zap.Int("status", status))
		return c.AllMatches(ctx)
	}
	return matches, err
}

// AllMatches returns every stored match record via the /all endpoint, which
// wraps the records with a message.
func (c *Client) AllMatches(ctx context.Context) ([]types.ResumeMatch, error) {
	return c.matchList(ctx, "all matches", matchesPath+"/all", nil)
}

// Statistics returns aggregate counts over the stored match records.
func (c *Client) Statistics(ctx context.Context) (*types.MatchStatistics, error) {
	var stats types.MatchStatistics
	if err := c.doJSON(ctx, c.get("match statistics", matchesPath+"/statistics"), contracts.MatchStatistics, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// BestMatches returns the best match per job description.
func (c *Client) BestMatches(ctx context.Context) ([]types.ResumeMatch, error) {
	return c.matchList(ctx, "best matches", matchesPath+"/best-matches", nil)
}

// MatchedResumes returns the records marked MATCHED.
func (c *Client) MatchedResumes(ctx context.Context) ([]types.ResumeMatch, error) {
	return c.matchList(ctx, "matched resumes", matchesPath+"/matched", nil)
}

// UnmatchedResumes returns the records marked UNMATCHED.
func (c *Client) UnmatchedResumes(ctx context.Context) ([]types.ResumeMatch, error) {
	return c.matchList(ctx, "unmatched resumes", matchesPath+"/unmatched", nil)
}

// MatchesForJD returns the records for one job description.
func (c *Client) MatchesForJD(ctx context.Context, jdIndex int) ([]types.ResumeMatch, error) {
	if jdIndex < 0 {
		return nil, &Error{Op: "matches for job description", Cause: fmt.Errorf("invalid job description index %d", jdIndex)}
	}
	return c.matchList(ctx, "matches for job description", jdPath(jdIndex, ""), nil)
}

// BestMatchForJD returns the best record for one job description.
// A job description without matches yields ErrNotFound.
func (c *Client) BestMatchForJD(ctx context.Context, jdIndex int) (*types.ResumeMatch, error) {
	if jdIndex < 0 {
		return nil, &Error{Op: "best match for job description", Cause: fmt.Errorf("invalid job description index %d", jdIndex)}
	}
	var match types.ResumeMatch
	if err := c.doJSON(ctx, c.get("best match for job description", jdPath(jdIndex, "/best")), contracts.ResumeMatch, &match); err != nil {
		return nil, err
	}
	return &match, nil
}

// DownloadBestMatch downloads the best-matching resume file for one job description.
func (c *Client) DownloadBestMatch(ctx context.Context, jdIndex int) (*Download, error) {
	if jdIndex < 0 {
		return nil, &Error{Op: "download best match", Cause: fmt.Errorf("invalid job description index %d", jdIndex)}
	}
	resp, err := c.do(ctx, c.get("download best match", jdPath(jdIndex, "/download-best")))
	if err != nil {
		return nil, err
	}
	return newDownload(resp), nil
}

// GetMatch returns one record by id. An unknown id yields ErrNotFound.
func (c *Client) GetMatch(ctx context.Context, matchID string) (*types.ResumeMatch, error) {
	if matchID == "" {
		return nil, &Error{Op: "get match", Cause: fmt.Errorf("match id is required")}
	}
	var match types.ResumeMatch
	if err := c.doJSON(ctx, c.get("get match", matchesPath+"/"+url.PathEscape(matchID)), contracts.ResumeMatch, &match); err != nil {
		return nil, err
	}
	return &match, nil
}

// SearchMatches returns the records matching a free-text query.
func (c *Client) SearchMatches(ctx context.Context, query string) ([]types.ResumeMatch, error) {
	return c.matchList(ctx, "search matches", matchesPath+"/search", url.Values{"query": {query}})
}

// MatchesByScoreRange returns the records scored within [r.Min, r.Max].
func (c *Client) MatchesByScoreRange(ctx context.Context, r types.ScoreRange) ([]types.ResumeMatch, error) {
	if err := r.Validate(); err != nil {
		return nil, &Error{Op: "matches by score range", Cause: err}
	}
	query := url.Values{
		"minScore": {strconv.FormatFloat(r.Min, 'f', -1, 64)},
		"maxScore": {strconv.FormatFloat(r.Max, 'f', -1, 64)},
	}
	return c.matchList(ctx, "matches by score range", matchesPath+"/score-range", query)
}

// ClearMatches deletes every stored match record.
func (c *Client) ClearMatches(ctx context.Context) error {
	_, err := c.do(ctx, request{op: "clear matches", method: http.MethodDelete, path: matchesPath})
	return err
}

func jdPath(jdIndex int, suffix string) string {
	return matchesPath + "/job-description/" + strconv.Itoa(jdIndex) + suffix
}

func (c *Client) matchList(ctx context.Context, op, path string, query url.Values) ([]types.ResumeMatch, error) {
	req := c.get(op, path)
	req.query = query

	resp, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := c.decode(op, contracts.ResumeMatch, resp.body, nil); err != nil {
		return nil, err
	}
	matches, err := decodeMatches(resp.body)
	if err != nil {
		return nil, &Error{Op: op, Cause: err}
	}
	return matches, nil
}

// decodeMatches accepts a bare array of records or an object wrapping them
// under "matches".
func decodeMatches(body []byte) ([]types.ResumeMatch, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var matches []types.ResumeMatch
		if err := json.Unmarshal(trimmed, &matches); err != nil {
			return nil, fmt.Errorf("failed to decode match list: %w", err)
		}
		return matches, nil
	}
	var list types.MatchList
	if err := json.Unmarshal(trimmed, &list); err != nil {
		return nil, fmt.Errorf("failed to decode match list: %w", err)
	}
	return list.Matches, nil
}
