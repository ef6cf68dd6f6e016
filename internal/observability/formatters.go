// Package observability provides terminal output, logging and metrics for the
// CLI and the UI server.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jonathan/ats-ui/internal/report"
	"github.com/jonathan/ats-ui/internal/types"
	"github.com/jonathan/ats-ui/internal/upload"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer writes reports as boxed text. Scores are colored when the writer
// is a color terminal.
type Printer struct {
	out      io.Writer
	renderer *lipgloss.Renderer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out, renderer: lipgloss.NewRenderer(out)}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// pad truncates or pads line to width cells. Width is measured without
// ANSI escapes so colored scores line up.
func pad(line string, width int) string {
	w := lipgloss.Width(line)
	if w > width {
		runes := []rune(line)
		if len(runes) > width-3 {
			runes = runes[:width-3]
		}
		line = string(runes) + "..."
		w = lipgloss.Width(line)
	}
	return line + strings.Repeat(" ", max(width-w, 0))
}

func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		return string(runes[:n-3]) + "..."
	}
	return s
}

// score renders "x/10" in the given hex color.
func (p *Printer) score(score float64, color string) string {
	return p.renderer.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(color)).
		Render(report.FormatScore(score) + "/10")
}

func writeList(sb *strings.Builder, title string, items []string, empty string) {
	sb.WriteString(title + ":\n")
	if len(items) == 0 {
		sb.WriteString("  " + empty + "\n")
		return
	}
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}

// PrintAnalysis outputs a mode 1 or mode 2 result.
func (p *Printer) PrintAnalysis(v report.AnalysisView) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s: %s\n", v.ScoreLabel, p.score(v.Score, v.Circle.Color)))
	if v.CompanyName != "" || v.RoleName != "" {
		sb.WriteString(fmt.Sprintf("Company:  %s\n", v.CompanyName))
		sb.WriteString(fmt.Sprintf("Role:     %s\n", v.RoleName))
	}
	sb.WriteString("\n")

	writeList(&sb, "Strengths", v.Strengths, "No specific strengths identified")
	sb.WriteString("\n")
	writeList(&sb, "Areas for Improvement", v.Weaknesses, "No specific weaknesses identified")
	sb.WriteString("\n")
	writeList(&sb, "Recommendations", v.Suggestions, "Consider adding more details to your resume")

	for _, s := range v.Sections {
		sb.WriteString("\n")
		if v.Mode == types.ModeJobMatch {
			writeList(&sb, s.Title+" (matched)", s.Matched, "No matched skills found")
			writeList(&sb, s.Title+" (gaps)", s.Gaps, "No gaps identified")
			continue
		}
		titles := make([]string, 0, len(s.Items))
		for _, item := range s.Items {
			titles = append(titles, item.Title)
		}
		writeList(&sb, fmt.Sprintf("%s [%s/10]", s.Title, report.FormatScore(s.Score)), titles, s.Empty)
	}

	if len(v.Scorecard) > 0 {
		sb.WriteString("\nScore Breakdown:\n")
		for _, c := range v.Scorecard {
			sb.WriteString(fmt.Sprintf("  %-22s %3.0f%%\n", c.Name, c.Percent))
		}
	}

	sb.WriteString("\nCareer Summary:\n  " + v.CareerSummary)

	p.printBox(strings.ToUpper(v.Title), sb.String())
}

// PrintBulk outputs a mode 4 result: totals, the best overall match and one
// row per job description.
func (p *Printer) PrintBulk(v report.BulkView) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%d resumes analyzed against %d job descriptions\n", len(v.Results), v.TotalJobDescriptions))
	sb.WriteString(fmt.Sprintf("Matched: %d   Unmatched: %d\n", v.TotalMatched, v.TotalUnmatched))

	if v.Best != nil {
		sb.WriteString("\nBest Overall Match:\n")
		sb.WriteString(fmt.Sprintf("  %s  %s\n", v.Best.ResumeName, p.score(v.Best.ATSScore.Float64(), v.BestColor)))
		sb.WriteString(fmt.Sprintf("  Job Description #%d\n", v.Best.JDIndex+1))
	}

	if len(v.Rows) > 0 {
		sb.WriteString("\nJob Descriptions:\n")
		for _, row := range v.Rows {
			if !row.Found {
				sb.WriteString(fmt.Sprintf("  %-6s No match found  0/10\n", row.Label))
				continue
			}
			sb.WriteString(fmt.Sprintf("  %-6s %s  %s\n", row.Label, clip(row.Best.ResumeName, 24), p.score(row.Score, row.Color)))
			sb.WriteString(fmt.Sprintf("         → %s\n", row.Rename))
		}
	}

	if v.HasExcel {
		sb.WriteString("\nExcel export available")
	}

	p.printBox("BULK JOB DESCRIPTION ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatches outputs stored match records.
func (p *Printer) PrintMatches(matches []types.ResumeMatch) {
	if len(matches) == 0 {
		p.printBox("RESUME MATCHES", report.EmptyMatchesText(0))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d matches\n\n", len(matches)))
	for i, m := range matches {
		status := "UNMATCHED"
		if m.Matched() {
			status = "MATCHED"
		}
		score := m.ATSScore.Float64()
		sb.WriteString(fmt.Sprintf("%s  %s  %s\n", clip(m.ResumeName, 30), p.score(score, report.TableColor(score)), status))
		sb.WriteString(fmt.Sprintf("  %s / %s  (JD #%d)\n", m.CompanyName, m.RoleName, m.JDIndex+1))
		if m.NewResumeName != "" {
			sb.WriteString(fmt.Sprintf("  New Name: %s\n", m.NewResumeName))
		}
		sb.WriteString(fmt.Sprintf("  ID: %s", m.MatchID))
		if i < len(matches)-1 {
			sb.WriteString("\n\n")
		}
	}

	p.printBox("RESUME MATCHES", sb.String())
}

// PrintStatistics outputs match statistics.
func (p *Printer) PrintStatistics(s types.MatchStatistics) {
	content := fmt.Sprintf("Total Matches:     %d\nMatched Resumes:   %d\nUnmatched Resumes: %d\nJob Descriptions:  %d",
		s.TotalMatches, s.MatchedResumes, s.UnmatchedResumes, s.JobDescriptions())
	p.printBox("MATCH STATISTICS", content)
}

// PrintBestMatches outputs the best match per job description.
func (p *Printer) PrintBestMatches(best []types.ResumeMatch) {
	if len(best) == 0 {
		p.printBox("BEST MATCHES", "No best matches found")
		return
	}

	var sb strings.Builder
	for i, m := range best {
		score := m.ATSScore.Float64()
		sb.WriteString(fmt.Sprintf("%s  %s\n", report.JDLabel(m.JDIndex), p.score(score, report.TableColor(score))))
		sb.WriteString(fmt.Sprintf("  Company:     %s\n", m.CompanyName))
		sb.WriteString(fmt.Sprintf("  Role:        %s\n", m.RoleName))
		sb.WriteString(fmt.Sprintf("  Best Resume: %s", m.ResumeName))
		if i < len(best)-1 {
			sb.WriteString("\n\n")
		}
	}

	p.printBox("BEST MATCHES", sb.String())
}

// PrintRenameResult outputs the outcome of a rename.
func (p *Printer) PrintRenameResult(r *types.RenameResult, savedTo string) {
	if r == nil {
		return
	}

	var sb strings.Builder
	if r.Message != "" {
		sb.WriteString(r.Message + "\n")
	}
	if r.Data != nil {
		sb.WriteString(fmt.Sprintf("Original: %s\n", r.Data.OriginalFileName))
		sb.WriteString(fmt.Sprintf("New:      %s\n", r.Data.NewFileName))
	}
	if savedTo != "" {
		sb.WriteString(fmt.Sprintf("Saved to: %s\n", savedTo))
	}

	p.printBox("FILE RENAMER", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFileInfo outputs the renamer's description of an uploaded file.
func (p *Printer) PrintFileInfo(f *types.FileInfo) {
	if f == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File: %s\n", f.FileName))
	sb.WriteString(fmt.Sprintf("Size: %s\n", upload.FormatSize(f.FileSize)))
	if f.ContentType != "" {
		sb.WriteString(fmt.Sprintf("Type: %s\n", f.ContentType))
	}
	if f.Extension != "" {
		sb.WriteString(fmt.Sprintf("Extension: %s\n", f.Extension))
	}

	p.printBox("FILE INFO", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintWorkbook outputs an Excel export summary.
func (p *Printer) PrintWorkbook(name string, w *report.WorkbookSummary) {
	if w == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("File: %s\n", name))
	sb.WriteString(fmt.Sprintf("Data rows: %d\n", w.DataRows()))
	for _, s := range w.Sheets {
		sb.WriteString(fmt.Sprintf("\n%s (%d rows)\n", s.Name, s.Rows))
		if len(s.Header) > 0 {
			sb.WriteString("  " + strings.Join(s.Header, " | ") + "\n")
		}
	}

	p.printBox("EXCEL EXPORT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintHealth outputs the backend health check.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintHealth(h *types.HealthStatus, err error) {
	if err != nil || h == nil || !h.Up() {
		detail := "unknown"
		if err != nil {
			detail = err.Error()
		} else if h != nil {
			detail = h.Status
		}
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %s │\n", pad("❌ BACKEND UNAVAILABLE: "+detail, boxWidth-4))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}
	fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
	fmt.Fprintf(p.out, "│ %s │\n", pad("✅ BACKEND UP", boxWidth-4))
	fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
}
