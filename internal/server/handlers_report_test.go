package server

import (
	"encoding/base64"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-ui/internal/backend"
	"github.com/jonathan/ats-ui/internal/report"
	"github.com/jonathan/ats-ui/internal/types"
)

func sampleBulk() *types.BulkReport {
	return &types.BulkReport{
		TotalJobDescriptions: 2,
		TotalMatched:         1,
		TotalUnmatched:       1,
		Summary:              types.BulkSummary{TotalResumes: 2},
		ResumeResults: []types.ResumeResult{
			{
				JDMatch: types.JDMatch{
					ResumeName:            "jane.pdf",
					JDIndex:               0,
					ATSScore:              8.5,
					OriginalResumeContent: "UERGLWphbmU=",
					OriginalResumeName:    "jane.pdf",
				},
				AllMatches: []types.JDMatch{
					{ResumeName: "jane.pdf", JDIndex: 0, ATSScore: 8.5, NewResumeName: "Acme_Engineer_Jane"},
				},
			},
			{JDMatch: types.JDMatch{ResumeName: "broken.pdf"}, Error: "could not read file"},
		},
	}
}

func TestReport_UnknownIDRedirectsHome(t *testing.T) {
	s := newTestServer(t, &fakeBackend{})

	for _, path := range []string{"/report/nope", "/bulk-jd-report/nope", "/bulk-jd-report/nope/excel"} {
		rec := get(s, path)
		assert.Equal(t, http.StatusFound, rec.Code, path)
		assert.Equal(t, "/", rec.Header().Get("Location"), path)
	}
}

func TestReport_OpenSections(t *testing.T) {
	s := newTestServer(t, &fakeBackend{})
	id := s.reports.PutAnalysis(types.ModeResume, &types.AnalysisReport{
		WorkExperience: types.Section{Items: []types.Item{{Title: "Engineer", Company: "Acme"}}},
	})

	doc := document(t, get(s, "/report/"+id+"?open=workExperience"))
	_, open := doc.Find("details#workExperience").Attr("open")
	assert.True(t, open)
	_, open = doc.Find("details#projects").Attr("open")
	assert.False(t, open)
	assert.Contains(t, doc.Find("details#workExperience").Text(), "Acme")
	assert.Contains(t, doc.Find("details#projects").Text(), "No projects found")
}

func TestReport_KindMismatchRedirects(t *testing.T) {
	s := newTestServer(t, &fakeBackend{})
	bulkID := s.reports.PutBulk(sampleBulk())
	analysisID := s.reports.PutAnalysis(types.ModeResume, &types.AnalysisReport{})

	rec := get(s, "/report/"+bulkID)
	assert.Equal(t, "/bulk-jd-report/"+bulkID, rec.Header().Get("Location"))

	rec = get(s, "/bulk-jd-report/"+analysisID)
	assert.Equal(t, "/report/"+analysisID, rec.Header().Get("Location"))
}

func TestBulkReport_Page(t *testing.T) {
	s := newTestServer(t, &fakeBackend{})
	id := s.reports.PutBulk(sampleBulk())

	rec := get(s, "/bulk-jd-report/"+id+"?sort=name")
	require.Equal(t, http.StatusOK, rec.Code)
	doc := document(t, rec)

	assert.Contains(t, doc.Find(".subtitle").Text(), "2 resumes analyzed against 2 job descriptions")
	assert.Equal(t, "Name", doc.Find(".sort a.active").Text())

	rows := doc.Find("#results-table tbody tr")
	require.Equal(t, 2, rows.Length())
	assert.Contains(t, rows.Eq(0).Text(), "broken.pdf")
	assert.Contains(t, rows.Eq(0).Find("td.error").Text(), "could not read file")

	jdRows := doc.Find("#jd-table tbody tr")
	require.Equal(t, 2, jdRows.Length())
	href, ok := jdRows.Eq(0).Find("a.download").Attr("href")
	require.True(t, ok)
	assert.Equal(t, "/bulk-jd-report/"+id+"/resume/0", href)
	assert.Contains(t, jdRows.Eq(1).Text(), "No match found")
	assert.Zero(t, doc.Find("#excel-download").Length())
	assert.Zero(t, doc.Find("#upload-warnings").Length())
}

func TestBulkExcel(t *testing.T) {
	s := newTestServer(t, &fakeBackend{})
	r := sampleBulk()
	r.ExcelData = base64.StdEncoding.EncodeToString([]byte("PK workbook"))
	id := s.reports.PutBulk(r)

	doc := document(t, get(s, "/bulk-jd-report/"+id))
	assert.Equal(t, 1, doc.Find("#excel-download").Length())

	rec := get(s, "/bulk-jd-report/"+id+"/excel")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "PK workbook", rec.Body.String())
	assert.Equal(t, report.ExcelContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename=JD_Analysis_Results.xlsx`, rec.Header().Get("Content-Disposition"))
}

func TestBulkExcel_Missing(t *testing.T) {
	s := newTestServer(t, &fakeBackend{})
	id := s.reports.PutBulk(sampleBulk())

	rec := get(s, "/bulk-jd-report/"+id+"/excel")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBulkResume_FromContent(t *testing.T) {
	fb := &fakeBackend{download: &backend.Download{ContentType: "application/pdf", Data: []byte("%PDF renamed")}}
	s := newTestServer(t, fb)
	id := s.reports.PutBulk(sampleBulk())

	rec := get(s, "/bulk-jd-report/"+id+"/resume/0")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "%PDF renamed", rec.Body.String())
	assert.Equal(t, `attachment; filename=Acme_Engineer_Jane.pdf`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, [3]string{"jane.pdf", "Acme_Engineer_Jane", "UERGLWphbmU="}, fb.resumeDownload)
	assert.False(t, fb.called("DownloadBestMatch"))
}

func TestBulkResume_FromStoredMatch(t *testing.T) {
	fb := &fakeBackend{download: &backend.Download{ContentType: "application/pdf", Data: []byte("%PDF")}}
	s := newTestServer(t, fb)
	r := sampleBulk()
	r.ResumeResults[0].OriginalResumeContent = ""
	id := s.reports.PutBulk(r)

	rec := get(s, "/bulk-jd-report/"+id+"/resume/0")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, fb.called("DownloadBestMatch"))
	assert.Equal(t, 0, fb.lastDownloadJD)
}

func TestBulkResume_Errors(t *testing.T) {
	fb := &fakeBackend{}
	s := newTestServer(t, fb)
	id := s.reports.PutBulk(sampleBulk())

	rec := get(s, "/bulk-jd-report/"+id+"/resume/1")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = get(s, "/bulk-jd-report/"+id+"/resume/x")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "Invalid job description index"))

	assert.Empty(t, fb.calls)
}
