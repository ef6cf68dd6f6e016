package report

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strings"

	"github.com/jonathan/ats-ui/internal/types"
)

// Defaults applied when the backend omits a field.
const (
	DefaultScore         = 8
	DefaultCareerSummary = "Experienced professional with strong technical skills."
)

// Score returns the report score, or DefaultScore when the backend sent none.
func Score(r *types.AnalysisReport) float64 {
	if r == nil || r.ATSScore == nil {
		return DefaultScore
	}
	return r.ATSScore.Float64()
}

// CareerSummary returns the first career summary line or the default.
func CareerSummary(r *types.AnalysisReport) string {
	if r == nil {
		return DefaultCareerSummary
	}
	return r.CareerSummary.First(DefaultCareerSummary)
}

// SectionScore rates a section by how many entries it has: 3 when empty,
// 10 from five entries up, 3+1.5 per entry in between.
func SectionScore(n int) float64 {
	switch {
	case n <= 0:
		return 3
	case n >= 5:
		return 10
	default:
		return math.Min(10, 3+1.5*float64(n))
	}
}

// Alignment describes how well a score aligns with ATS systems.
func Alignment(score float64) string {
	switch {
	case score >= 7:
		return "strong"
	case score >= 5:
		return "moderate"
	default:
		return "room for improvement"
	}
}

var leadingDots = regexp.MustCompile(`^\.*\s*`)

// CleanItem trims an entry and strips leading dots the backend leaves on
// bullet text.
func CleanItem(s string) string {
	return leadingDots.ReplaceAllString(strings.TrimSpace(s), "")
}

// CleanItems cleans every entry. A list holding only "None" is empty.
func CleanItems(list []string) []string {
	if len(list) == 0 {
		return nil
	}
	if len(list) == 1 && CleanItem(list[0]) == "None" {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		out = append(out, CleanItem(item))
	}
	return out
}

// Section keys, also used in the ?open= query of the report page.
const (
	SectionWorkExperience  = "workExperience"
	SectionProjects        = "projects"
	SectionCertificates    = "certificates"
	SectionTechnicalSkills = "technicalSkills"
)

// SectionView is one collapsible section of a result page.
type SectionView struct {
	Key   string
	Title string
	Icon  string
	Open  bool

	// Items is filled for single resume analysis.
	Items []types.Item
	Score float64
	Empty string

	// Matched and Gaps are filled for job match analysis.
	Matched []string
	Gaps    []string
}

// AnalysisView is everything the mode 1 and mode 2 result pages show.
type AnalysisView struct {
	Mode          types.Mode
	Title         string
	Subtitle      string
	ScoreLabel    string
	Score         float64
	Circle        Circle
	CareerSummary string
	Strengths     []string
	Weaknesses    []string
	Suggestions   []string
	Sections      []SectionView
	Overview      string
	Scorecard     []Category
	CompanyName   string
	RoleName      string
}

type sectionDef struct {
	key, title, icon, empty, fallback string
	pick                              func(*types.AnalysisReport) types.Section
}

func resumeSections() []sectionDef {
	return []sectionDef{
		{SectionWorkExperience, "Work Experience", "💼", "No work experience found", "Work Experience",
			func(r *types.AnalysisReport) types.Section { return r.WorkExperience }},
		{SectionProjects, "Projects", "📚", "No projects found", "Project",
			func(r *types.AnalysisReport) types.Section { return r.Projects }},
		{SectionCertificates, "Certificates", "🏆", "No certificates found", "Certificate",
			func(r *types.AnalysisReport) types.Section { return r.Certificates }},
		{SectionTechnicalSkills, "Technical Skills", "🧰", "No technical skills found", "Skill",
			func(r *types.AnalysisReport) types.Section { return r.TechnicalSkills }},
	}
}

func matchSections() []sectionDef {
	defs := resumeSections()
	// Job match pages list certificates before projects.
	defs[1], defs[2] = defs[2], defs[1]
	return defs
}

// NewAnalysisView builds the result page for a mode 1 or mode 2 report.
// open names the sections to show expanded.
func NewAnalysisView(mode types.Mode, r *types.AnalysisReport, open map[string]bool) AnalysisView {
	if r == nil {
		r = &types.AnalysisReport{}
	}
	score := Score(r)

	v := AnalysisView{
		Mode:          mode,
		Score:         score,
		Circle:        NewCircle(score),
		CareerSummary: CareerSummary(r),
		Strengths:     []string(r.Strengths),
		Weaknesses:    []string(r.Weaknesses),
		Suggestions:   []string(r.Suggestions),
		CompanyName:   r.CompanyName,
		RoleName:      r.RoleName,
	}

	if mode == types.ModeJobMatch {
		v.Title = "Job Match Analysis"
		v.Subtitle = "Detailed comparison of your resume against the job description"
		v.ScoreLabel = "Job Match Score"
		v.Overview = fmt.Sprintf("Job match analysis completed with a score of %s/10. Review the detailed breakdown above to understand your strengths and areas for improvement.", FormatScore(score))
		v.Scorecard = Scorecard()
		for _, def := range matchSections() {
			section := def.pick(r)
			v.Sections = append(v.Sections, SectionView{
				Key:     def.key,
				Title:   def.title,
				Icon:    def.icon,
				Open:    open[def.key],
				Matched: CleanItems(section.MatchedSkills),
				Gaps:    CleanItems(section.Gaps),
			})
		}
		return v
	}

	v.Title = "ATS Analysis Results"
	v.Subtitle = "Comprehensive analysis of your resume for ATS optimization"
	v.ScoreLabel = "ATS Compatibility Score"
	v.Overview = fmt.Sprintf("Your resume has been analyzed with a focus on ATS compatibility and keyword optimization. The score of %s/10 indicates %s alignment with ATS systems.", FormatScore(score), Alignment(score))
	for _, def := range resumeSections() {
		items := slices.Clone(def.pick(r).Entries())
		for i := range items {
			if items[i].Title == "" {
				items[i].Title = items[i].Label(def.fallback)
			}
		}
		v.Sections = append(v.Sections, SectionView{
			Key:   def.key,
			Title: def.title,
			Icon:  def.icon,
			Open:  open[def.key],
			Items: items,
			Score: SectionScore(len(items)),
			Empty: def.empty,
		})
	}
	return v
}

// ParseOpen turns a comma-separated section list into a set.
func ParseOpen(csv string) map[string]bool {
	open := make(map[string]bool)
	for _, key := range strings.Split(csv, ",") {
		if key = strings.TrimSpace(key); key != "" {
			open[key] = true
		}
	}
	return open
}

// FormatScore renders a score without trailing zeros ("8", "7.5").
func FormatScore(score float64) string {
	return types.Score(score).String()
}
