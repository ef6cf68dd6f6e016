package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/ats-ui/internal/backend"
	"github.com/jonathan/ats-ui/internal/reportstore"
	"github.com/jonathan/ats-ui/internal/server/ratelimit"
	"github.com/jonathan/ats-ui/internal/types"
	"github.com/jonathan/ats-ui/internal/upload"
)

// fakeBackend records calls and returns canned responses.
type fakeBackend struct {
	mu sync.Mutex

	analysis    *types.AnalysisReport
	bulk        *types.BulkReport
	analysisErr error

	matches    []types.ResumeMatch
	stats      *types.MatchStatistics
	best       []types.ResumeMatch
	matchesErr error
	statsErr   error
	bestErr    error
	cleared    bool

	download    *backend.Download
	downloadErr error
	renameRes   *types.RenameResult
	renameErr   error

	health    *types.HealthStatus
	healthErr error

	calls          []string
	lastResumes    []upload.File
	lastJD         string
	lastExcel      upload.File
	lastRename     types.RenameRequest
	lastDownloadJD int
	lastMatchesJD  int
	resumeDownload [3]string
}

var errNotConfigured = errors.New("not configured")

func (f *fakeBackend) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeBackend) called(call string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == call {
			return true
		}
	}
	return false
}

func (f *fakeBackend) AnalyzeResume(_ context.Context, resume upload.File) (*types.AnalysisReport, error) {
	f.record("AnalyzeResume")
	f.lastResumes = []upload.File{resume}
	return f.analysis, f.analysisErr
}

func (f *fakeBackend) MatchJobDescription(_ context.Context, resume upload.File, jd string) (*types.AnalysisReport, error) {
	f.record("MatchJobDescription")
	f.lastResumes = []upload.File{resume}
	f.lastJD = jd
	return f.analysis, f.analysisErr
}

func (f *fakeBackend) BulkAnalyze(_ context.Context, resumes []upload.File, jds upload.File) (*types.BulkReport, error) {
	f.record("BulkAnalyze")
	f.lastResumes = resumes
	f.lastExcel = jds
	return f.bulk, f.analysisErr
}

func (f *fakeBackend) ListMatches(context.Context) ([]types.ResumeMatch, error) {
	f.record("ListMatches")
	return f.matches, f.matchesErr
}

func (f *fakeBackend) MatchesForJD(_ context.Context, jdIndex int) ([]types.ResumeMatch, error) {
	f.record("MatchesForJD")
	f.lastMatchesJD = jdIndex
	var out []types.ResumeMatch
	for _, m := range f.matches {
		if m.JDIndex == jdIndex {
			out = append(out, m)
		}
	}
	return out, f.matchesErr
}

func (f *fakeBackend) Statistics(context.Context) (*types.MatchStatistics, error) {
	f.record("Statistics")
	return f.stats, f.statsErr
}

func (f *fakeBackend) BestMatches(context.Context) ([]types.ResumeMatch, error) {
	f.record("BestMatches")
	return f.best, f.bestErr
}

func (f *fakeBackend) ClearMatches(context.Context) error {
	f.record("ClearMatches")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleared = true
	return nil
}

func (f *fakeBackend) DownloadBestMatch(_ context.Context, jdIndex int) (*backend.Download, error) {
	f.record("DownloadBestMatch")
	f.lastDownloadJD = jdIndex
	return f.download, f.downloadErr
}

func (f *fakeBackend) ProcessRename(_ context.Context, _ upload.File, req types.RenameRequest) (*types.RenameResult, error) {
	f.record("ProcessRename")
	f.lastRename = req
	if f.renameErr != nil {
		return nil, f.renameErr
	}
	if f.renameRes == nil {
		return nil, errNotConfigured
	}
	return f.renameRes, nil
}

func (f *fakeBackend) DownloadRenamed(context.Context, upload.File, types.RenameRequest) (*backend.Download, error) {
	f.record("DownloadRenamed")
	return f.download, f.downloadErr
}

func (f *fakeBackend) DownloadResume(_ context.Context, name, newName, content string) (*backend.Download, error) {
	f.record("DownloadResume")
	f.resumeDownload = [3]string{name, newName, content}
	return f.download, f.downloadErr
}

func (f *fakeBackend) Health(context.Context) (*types.HealthStatus, error) {
	f.record("Health")
	return f.health, f.healthErr
}

// newTestServer builds a server with rate limiting disabled.
func newTestServer(t *testing.T, fb *fakeBackend) *Server {
	t.Helper()
	s, err := New(Options{
		Backend:     fb,
		Reports:     reportstore.New(reportstore.Config{}),
		RateLimiter: ratelimit.NewLimiter(&ratelimit.Config{Enabled: false}),
	})
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func get(s *Server, target string) *httptest.ResponseRecorder {
	return serve(s, httptest.NewRequest(http.MethodGet, target, nil))
}

type part struct {
	field       string
	filename    string
	contentType string
	data        string
}

// multipartRequest builds a form post with text fields and file parts.
func multipartRequest(t *testing.T, target string, fields map[string]string, files ...part) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, p := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, p.field, p.filename))
		if p.contentType != "" {
			h.Set("Content-Type", p.contentType)
		}
		w, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = w.Write([]byte(p.data))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func pdfPart(field, name string) part {
	return part{field: field, filename: name, contentType: upload.MIMEPDF, data: "%PDF-1.4 " + name}
}

func excelPart() part {
	return part{field: "jobDescriptions", filename: "jds.xlsx", contentType: upload.MIMEXLSX, data: "PK excel"}
}

func document(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rec.Body.String()))
	require.NoError(t, err)
	return doc
}

func alertText(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return strings.TrimSpace(document(t, rec).Find(".alert-error").Text())
}

func score(v float64) *types.Score {
	s := types.Score(v)
	return &s
}

func httpRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}
