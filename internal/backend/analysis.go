package backend

import (
	"context"
	"errors"

	"github.com/jonathan/ats-ui/internal/types"
	"github.com/jonathan/ats-ui/internal/upload"
	contracts "github.com/jonathan/ats-ui/schemas"
)

// ErrNoResumes is returned by BulkAnalyze when no resume is given.
var ErrNoResumes = errors.New("at least one resume file is required")

// AnalyzeResume scores a single resume (mode 1).
func (c *Client) AnalyzeResume(ctx context.Context, resume upload.File) (*types.AnalysisReport, error) {
	req, err := c.multipartRequest("analyze resume", "/api/mode1", newForm().file("resume", resume))
	if err != nil {
		return nil, err
	}

	var report types.AnalysisReport
	if err := c.doJSON(ctx, req, contracts.AnalysisReport, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// MatchJobDescription scores a resume against pasted job description text (mode 2).
func (c *Client) MatchJobDescription(ctx context.Context, resume upload.File, jobDescription string) (*types.AnalysisReport, error) {
	f := newForm().file("resume", resume).field("jd", jobDescription)
	req, err := c.multipartRequest("match job description", "/api/mode2", f)
	if err != nil {
		return nil, err
	}

	var report types.AnalysisReport
	if err := c.doJSON(ctx, req, contracts.AnalysisReport, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// BulkAnalyze scores every resume against every job description in the
// Excel workbook (mode 4).
func (c *Client) BulkAnalyze(ctx context.Context, resumes []upload.File, jobDescriptions upload.File) (*types.BulkReport, error) {
	if len(resumes) == 0 {
		return nil, &Error{Op: "bulk analyze", Cause: ErrNoResumes}
	}

	f := newForm()
	for _, r := range resumes {
		f.file("resumes", r)
	}
	f.file("jobDescriptions", jobDescriptions)

	req, err := c.multipartRequest("bulk analyze", "/api/mode4", f)
	if err != nil {
		return nil, err
	}

	var report types.BulkReport
	if err := c.doJSON(ctx, req, contracts.BulkReport, &report); err != nil {
		return nil, err
	}
	return &report, nil
}
