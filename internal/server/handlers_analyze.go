package server

import (
	"context"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/jonathan/ats-ui/internal/types"
	"github.com/jonathan/ats-ui/internal/upload"
)

// modeCard is one choice on the landing page.
type modeCard struct {
	Mode        types.Mode
	Title       string
	Description string
	Icon        string
	Popular     bool
	Selected    bool
}

// indexView is the landing page: the mode cards and, once a mode is picked,
// its upload form.
type indexView struct {
	Mode           types.Mode
	Cards          []modeCard
	Header         string
	JobDescription string
	MaxFiles       int
}

func modeCards(selected types.Mode) []modeCard {
	cards := []modeCard{
		{Mode: types.ModeResume, Title: "Resume Analysis", Icon: "📄",
			Description: "Get detailed feedback on your resume structure, keywords, and formatting"},
		{Mode: types.ModeJobMatch, Title: "Job Match Analysis", Icon: "🎯", Popular: true,
			Description: "Compare your resume against specific job descriptions for perfect alignment"},
		{Mode: types.ModeBulkJD, Title: "Bulk JD Analysis", Icon: "📊",
			Description: "Analyze multiple job descriptions at once for keyword optimization"},
	}
	for i := range cards {
		cards[i].Selected = cards[i].Mode == selected
	}
	return cards
}

func uploadHeader(mode types.Mode) string {
	switch mode {
	case types.ModeResume:
		return "Upload your resume to get comprehensive ATS feedback"
	case types.ModeJobMatch:
		return "Upload your resume and job description for targeted analysis"
	case types.ModeBulkJD:
		return "Upload multiple resumes and an Excel file of job descriptions"
	default:
		return ""
	}
}

// parseMode reads a mode number; anything unknown is 0.
func parseMode(raw string) types.Mode {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	if m := types.Mode(n); m.Valid() {
		return m
	}
	return 0
}

func newIndexView(mode types.Mode, jd string) indexView {
	return indexView{
		Mode:           mode,
		Cards:          modeCards(mode),
		Header:         uploadHeader(mode),
		JobDescription: jd,
		MaxFiles:       upload.MaxResumeFiles,
	}
}

// handleIndex renders the landing page; ?mode= shows that mode's form.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	mode := parseMode(r.URL.Query().Get("mode"))
	s.render(w, http.StatusOK, pageIndex, pageData{
		Title: "Optimize Your Resume for ATS Success",
		Nav:   "home",
		View:  newIndexView(mode, ""),
	})
}

// handleAnalyze validates an upload, runs it through the backend and
// redirects to the stored report.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if err := parseUploadForm(w, r); err != nil {
		s.renderAnalyzeError(w, parseMode(r.URL.Query().Get("mode")), "", err)
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	mode := parseMode(r.FormValue("mode"))
	jd := r.FormValue("jd")

	location, err := s.analyze(r.Context(), mode, r)
	if err != nil {
		s.renderAnalyzeError(w, mode, jd, err)
		return
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

func (s *Server) renderAnalyzeError(w http.ResponseWriter, mode types.Mode, jd string, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("analysis failed", zap.Int("mode", int(mode)), zap.Error(err))
	}
	s.render(w, status, pageIndex, pageData{
		Title: "Optimize Your Resume for ATS Success",
		Nav:   "home",
		Error: userMessage(err),
		View:  newIndexView(mode, jd),
	})
}

// analyze runs one submission and returns the report location.
func (s *Server) analyze(ctx context.Context, mode types.Mode, r *http.Request) (string, error) {
	switch mode {
	case types.ModeResume, types.ModeJobMatch:
		return s.analyzeSingle(ctx, mode, r)
	case types.ModeBulkJD:
		return s.analyzeBulk(ctx, r)
	default:
		req := types.AnalyzeRequest{Mode: mode}
		return "", req.Validate()
	}
}

func (s *Server) analyzeSingle(ctx context.Context, mode types.Mode, r *http.Request) (string, error) {
	resume, ok, err := formFile(r, "resume")
	if err != nil {
		return "", err
	}
	req := types.AnalyzeRequest{Mode: mode, JobDescription: r.FormValue("jd")}
	if ok {
		req.ResumeCount = 1
	}
	if err := req.Validate(); err != nil {
		return "", err
	}
	if err := upload.ResumeRules.Validate(resume); err != nil {
		return "", err
	}

	var rep *types.AnalysisReport
	if mode == types.ModeJobMatch {
		rep, err = s.backend.MatchJobDescription(ctx, resume, req.JobDescription)
	} else {
		rep, err = s.backend.AnalyzeResume(ctx, resume)
	}
	if err != nil {
		return "", err
	}

	id := s.reports.PutAnalysis(mode, rep)
	s.metrics.ReportStored(mode)
	s.logger.Info("analysis stored", zap.String("id", id), zap.Int("mode", int(mode)), zap.String("resume", resume.Name))
	return "/report/" + id, nil
}

func (s *Server) analyzeBulk(ctx context.Context, r *http.Request) (string, error) {
	resumes, err := formFiles(r, "resumes")
	if err != nil {
		return "", err
	}
	excel, hasExcel, err := formFile(r, "jobDescriptions")
	if err != nil {
		return "", err
	}

	sel := upload.NewSelection(upload.BulkResumeRules)
	rejected, truncated := sel.Add(resumes...)
	if sel.Len() == 0 && len(rejected) > 0 {
		return "", rejected[0]
	}
	warnings := upload.Warnings(rejected, truncated)
	if len(warnings) > 0 {
		s.logger.Warn("bulk upload files skipped",
			zap.Int("received", len(resumes)),
			zap.Int("kept", sel.Len()),
			zap.Strings("warnings", warnings))
	}

	req := types.AnalyzeRequest{Mode: types.ModeBulkJD, ResumeCount: sel.Len(), HasExcel: hasExcel}
	if err := req.Validate(); err != nil {
		return "", err
	}
	if err := upload.ExcelRules.Validate(excel); err != nil {
		return "", err
	}

	rep, err := s.backend.BulkAnalyze(ctx, sel.Files(), excel)
	if err != nil {
		return "", err
	}

	id := s.reports.PutBulk(rep, warnings...)
	s.metrics.ReportStored(types.ModeBulkJD)
	s.logger.Info("bulk analysis stored",
		zap.String("id", id),
		zap.Int("resumes", sel.Len()),
		zap.String("total", upload.FormatSize(sel.TotalSize())))
	return "/bulk-jd-report/" + id, nil
}
