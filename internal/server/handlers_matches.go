package server

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/ats-ui/internal/report"
	"github.com/jonathan/ats-ui/internal/types"
)

// matchesView is the match manager page.
type matchesView struct {
	Filter     string
	Query      string
	Total      int
	Matches    []types.ResumeMatch
	Stats      *types.MatchStatistics
	Best       []types.ResumeMatch
	EmptyText  string
	Filters    []string
	LoadFailed bool
	// JD is the job description the list is narrowed to, or -1.
	JD int
}

// handleMatches fetches the match records, statistics and best matches in
// parallel. A jd query narrows the records to one job description. Only a failed match list fails the page; the other two panels
// are left out when their fetch fails.
func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view := matchesView{
		Filter:  report.NormalizeFilter(q.Get("filter")),
		Query:   q.Get("q"),
		Filters: []string{report.FilterAll, report.FilterMatched, report.FilterUnmatched},
		JD:      -1,
	}
	if raw := q.Get("jd"); raw != "" {
		jdIndex, err := strconv.Atoi(raw)
		if err != nil || jdIndex < 0 {
			s.renderError(w, r, &types.RequestError{Field: "jd", Message: "Invalid job description index"})
			return
		}
		view.JD = jdIndex
	}

	var (
		all   []types.ResumeMatch
		stats *types.MatchStatistics
		best  []types.ResumeMatch
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		if view.JD >= 0 {
			all, err = s.backend.MatchesForJD(ctx, view.JD)
		} else {
			all, err = s.backend.ListMatches(ctx)
		}
		return err
	})
	g.Go(func() error {
		var err error
		if stats, err = s.backend.Statistics(ctx); err != nil {
			s.logger.Warn("failed to load match statistics", zap.Error(err))
			stats = nil
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if best, err = s.backend.BestMatches(ctx); err != nil {
			s.logger.Warn("failed to load best matches", zap.Error(err))
			best = nil
		}
		return nil
	})

	pd := pageData{Title: "Resume Match Manager", Nav: "matches"}
	if err := g.Wait(); err != nil {
		s.logger.Error("failed to load matches", zap.Error(err))
		pd.Error = "Failed to load matches: " + err.Error()
		view.LoadFailed = true
		pd.View = view
		s.render(w, HTTPStatus(err), pageMatches, pd)
		return
	}

	view.Total = len(all)
	view.Matches = report.FilterMatches(all, view.Filter, view.Query)
	view.Stats = stats
	view.Best = best
	view.EmptyText = report.EmptyMatchesText(view.Total)
	pd.View = view
	s.render(w, http.StatusOK, pageMatches, pd)
}

// handleClearMatches deletes every match record on the backend.
func (s *Server) handleClearMatches(w http.ResponseWriter, r *http.Request) {
	if err := s.backend.ClearMatches(r.Context()); err != nil {
		s.renderError(w, r, err)
		return
	}
	s.logger.Info("match records cleared")
	http.Redirect(w, r, "/matches", http.StatusSeeOther)
}

// handleBestMatchDownload downloads the best resume stored for one job
// description. Without a backend file name the download is named after the
// renamed resume of the best match record.
func (s *Server) handleBestMatchDownload(w http.ResponseWriter, r *http.Request) {
	jdIndex, err := strconv.Atoi(r.PathValue("jdIndex"))
	if err != nil || jdIndex < 0 {
		s.renderError(w, r, &types.RequestError{Field: "jdIndex", Message: "Invalid job description index"})
		return
	}

	dl, err := s.backend.DownloadBestMatch(r.Context(), jdIndex)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	filename := dl.Filename
	if filename == "" {
		var newName string
		if best, err := s.backend.BestMatches(r.Context()); err != nil {
			s.logger.Warn("failed to load best matches for file name", zap.Error(err))
		} else if m, ok := report.FindBestMatch(best, jdIndex); ok {
			newName = m.NewResumeName
		}
		filename = report.BestMatchFilename(dl.ContentType, newName, jdIndex)
	}
	serveDownload(w, filename, dl.ContentType, dl.Data)
}
