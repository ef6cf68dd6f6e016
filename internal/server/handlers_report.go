package server

import (
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/jonathan/ats-ui/internal/backend"
	"github.com/jonathan/ats-ui/internal/report"
	"github.com/jonathan/ats-ui/internal/reportstore"
	"github.com/jonathan/ats-ui/internal/types"
)

// reportView adds the report id to an analysis page so section toggles can
// link back to it.
type reportView struct {
	ID string
	report.AnalysisView
}

// bulkView adds the report id to the bulk page for its download links.
type bulkView struct {
	ID       string
	Warnings []string
	report.BulkView
}

// lookup loads a stored report. Unknown or expired ids send the user back to
// the landing page and return nil.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) *reportstore.Entry {
	entry, err := s.reports.Get(r.PathValue("id"))
	if err != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return nil
	}
	return entry
}

// handleReport renders the mode 1 or mode 2 result page.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	entry := s.lookup(w, r)
	if entry == nil {
		return
	}
	if entry.Bulk != nil {
		http.Redirect(w, r, "/bulk-jd-report/"+entry.ID, http.StatusFound)
		return
	}

	open := report.ParseOpen(r.URL.Query().Get("open"))
	view := report.NewAnalysisView(entry.Mode, entry.Analysis, open)
	s.render(w, http.StatusOK, pageReport, pageData{
		Title: view.Title,
		Nav:   "home",
		View:  reportView{ID: entry.ID, AnalysisView: view},
	})
}

// handleBulkReport renders the mode 4 result page.
func (s *Server) handleBulkReport(w http.ResponseWriter, r *http.Request) {
	entry := s.lookup(w, r)
	if entry == nil {
		return
	}
	if entry.Bulk == nil {
		http.Redirect(w, r, "/report/"+entry.ID, http.StatusFound)
		return
	}

	view := report.NewBulkView(entry.Bulk, r.URL.Query().Get("sort"))
	s.render(w, http.StatusOK, pageBulk, pageData{
		Title: "Bulk JD Analysis Results",
		Nav:   "home",
		View:  bulkView{ID: entry.ID, Warnings: entry.Warnings, BulkView: view},
	})
}

// handleBulkExcel serves the workbook carried by a bulk report.
func (s *Server) handleBulkExcel(w http.ResponseWriter, r *http.Request) {
	entry := s.lookup(w, r)
	if entry == nil {
		return
	}

	export, err := report.DecodeExcel(entry.Bulk)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	serveDownload(w, export.Name, report.ExcelContentType, export.Data)
}

// handleBulkResume downloads the renamed best resume for one job description.
// A best match that carries the resume content is rendered by the backend
// from that content; otherwise the backend's stored best match is fetched.
func (s *Server) handleBulkResume(w http.ResponseWriter, r *http.Request) {
	entry := s.lookup(w, r)
	if entry == nil {
		return
	}
	jdIndex, err := strconv.Atoi(r.PathValue("jdIndex"))
	if err != nil || jdIndex < 0 || entry.Bulk == nil {
		s.renderError(w, r, &types.RequestError{Field: "jdIndex", Message: "Invalid job description index"})
		return
	}

	best, ok := report.BestResumeForJD(entry.Bulk.ResumeResults, jdIndex)
	if !ok || best.NewResumeName == "" {
		s.renderError(w, r, fmt.Errorf("no renamed resume for %s: %w", report.JDLabel(jdIndex), reportstore.ErrNotFound))
		return
	}

	original := best.OriginalResumeName
	if original == "" {
		original = best.ResumeName
	}

	var dl *backend.Download
	if best.OriginalResumeContent != "" {
		dl, err = s.backend.DownloadResume(r.Context(), original, best.NewResumeName, best.OriginalResumeContent)
	} else {
		dl, err = s.backend.DownloadBestMatch(r.Context(), jdIndex)
	}
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	s.logger.Info("resume downloaded", zap.String("report", entry.ID), zap.Int("jd", jdIndex))
	serveDownload(w, report.BulkDownloadName(original, best.NewResumeName), dl.ContentType, dl.Data)
}
