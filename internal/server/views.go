package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/ats-ui/internal/report"
	"github.com/jonathan/ats-ui/internal/types"
	"github.com/jonathan/ats-ui/internal/upload"
)

//go:embed templates/*.html static/*
var assets embed.FS

// Page template names.
const (
	pageIndex   = "index"
	pageReport  = "report"
	pageBulk    = "bulk"
	pageMatches = "matches"
	pageRename  = "rename"
	pageError   = "error"
)

// pageData is what the layout renders. View holds the page specific model.
type pageData struct {
	Title string
	Nav   string
	Error string
	View  any
}

type views struct {
	pages map[string]*template.Template
}

var templateFuncs = template.FuncMap{
	"formatScore": report.FormatScore,
	"score":       func(s types.Score) string { return s.String() },
	"scoreColor":  report.ScoreColor,
	"tableColor":  report.TableColor,
	"statusColor": report.StatusColor,
	"jdLabel":     report.JDLabel,
	"rankBadge":   report.RankBadge,
	"truncate":    report.Truncate,
	"formatSize":  upload.FormatSizeShort,
	"inc":         func(i int) int { return i + 1 },
	"join":        strings.Join,
	"percent":     func(f float64) string { return fmt.Sprintf("%.0f%%", f) },
}

func loadViews() (*views, error) {
	v := &views{pages: make(map[string]*template.Template)}
	for _, name := range []string{pageIndex, pageReport, pageBulk, pageMatches, pageRename, pageError} {
		t, err := template.New("layout.html").
			Funcs(templateFuncs).
			ParseFS(assets, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		v.pages[name] = t
	}
	return v, nil
}

// render executes a page into a buffer first so template failures become a
// clean 500 instead of a half-written page.
func (s *Server) render(w http.ResponseWriter, status int, name string, data pageData) {
	t, ok := s.views.pages[name]
	if !ok {
		s.logger.Error("unknown template", zap.String("template", name))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		s.logger.Error("failed to render template", zap.String("template", name), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// renderError shows the error page with the status HTTPStatus picks for err.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	} else {
		s.logger.Debug("request rejected", zap.String("path", r.URL.Path), zap.Error(err))
	}
	s.render(w, status, pageError, pageData{
		Title: http.StatusText(status),
		Error: userMessage(err),
		View:  status,
	})
}
