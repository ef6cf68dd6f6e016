package types

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Item is one entry in a resume section. The backend sends either a bare
// string or an object whose shape depends on the section.
type Item struct {
	Title        string     `json:"title,omitempty"`
	Name         string     `json:"name,omitempty"`
	Company      string     `json:"company,omitempty"`
	Dates        string     `json:"dates,omitempty"`
	Description  string     `json:"description,omitempty"`
	Technologies StringList `json:"technologies,omitempty"`
	Issuer       string     `json:"issuer,omitempty"`
	Date         string     `json:"date,omitempty"`
}

// UnmarshalJSON accepts a string (stored as Title) or an object.
func (i *Item) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var title string
		if err := json.Unmarshal(trimmed, &title); err != nil {
			return err
		}
		*i = Item{Title: title}
		return nil
	}

	type plain Item
	var p plain
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return err
	}
	*i = Item(p)
	return nil
}

// Label returns the display heading for the item, falling back when it has none.
func (i Item) Label(fallback string) string {
	if strings.TrimSpace(i.Title) != "" {
		return i.Title
	}
	if strings.TrimSpace(i.Name) != "" {
		return i.Name
	}
	return fallback
}

// Section holds the analysis for one resume section.
// Mode 1 reports send a list of items; mode 2 reports send an object with
// matchedSkills and gaps. Both shapes decode into Section.
type Section struct {
	Items         []Item     `json:"items,omitempty"`
	MatchedSkills StringList `json:"matchedSkills,omitempty"`
	Gaps          StringList `json:"gaps,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Section) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*s = Section{}
		return nil
	}

	switch trimmed[0] {
	case '[':
		var items []Item
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return err
		}
		*s = Section{Items: items}
		return nil
	case '"':
		var item Item
		if err := json.Unmarshal(trimmed, &item); err != nil {
			return err
		}
		*s = Section{Items: []Item{item}}
		return nil
	}

	var aux struct {
		Items         []Item     `json:"items"`
		MatchedSkills StringList `json:"matchedSkills"`
		Gaps          StringList `json:"gaps"`
	}
	if err := json.Unmarshal(trimmed, &aux); err != nil {
		return err
	}
	*s = Section{Items: aux.Items, MatchedSkills: aux.MatchedSkills, Gaps: aux.Gaps}
	return nil
}

// Entries returns the items to list for a mode 1 section. Matched skills take
// precedence over the plain item list, mirroring how the backend upgrades
// section payloads.
func (s Section) Entries() []Item {
	if len(s.MatchedSkills) > 0 {
		items := make([]Item, 0, len(s.MatchedSkills))
		for _, skill := range s.MatchedSkills {
			items = append(items, Item{Title: skill})
		}
		return items
	}
	return s.Items
}

// AnalysisReport is the backend response for mode 1 (single resume) and
// mode 2 (resume against a job description).
type AnalysisReport struct {
	ATSScore        *Score     `json:"atsScore,omitempty"`
	CareerSummary   StringList `json:"careerSummary,omitempty"`
	Strengths       StringList `json:"strengths,omitempty"`
	Weaknesses      StringList `json:"weaknesses,omitempty"`
	Suggestions     StringList `json:"suggestions,omitempty"`
	WorkExperience  Section    `json:"workExperience"`
	Certificates    Section    `json:"certificates"`
	Projects        Section    `json:"projects"`
	TechnicalSkills Section    `json:"technicalSkills"`
	CompanyName     string     `json:"companyName,omitempty"`
	RoleName        string     `json:"roleName,omitempty"`
}

// UnmarshalJSON leaves ATSScore nil when the backend sent no usable score
// (absent, null, [] or ""), so callers can apply their default.
func (r *AnalysisReport) UnmarshalJSON(data []byte) error {
	type plain AnalysisReport
	aux := struct {
		*plain
		ATSScore json.RawMessage `json:"atsScore"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	r.ATSScore = nil
	if emptyScore(aux.ATSScore) {
		return nil
	}
	var score Score
	if err := json.Unmarshal(aux.ATSScore, &score); err != nil {
		return err
	}
	r.ATSScore = &score
	return nil
}

// Mode identifies the analysis variant selected in the UI.
type Mode int

// Analysis modes, each mapped to a backend endpoint.
const (
	ModeResume   Mode = 1
	ModeJobMatch Mode = 2
	ModeBulkJD   Mode = 4
)

// Valid reports whether m is one of the supported modes.
func (m Mode) Valid() bool {
	return m == ModeResume || m == ModeJobMatch || m == ModeBulkJD
}

// Title returns the heading shown for the mode.
func (m Mode) Title() string {
	switch m {
	case ModeResume:
		return "Resume Analysis"
	case ModeJobMatch:
		return "Job Match Analysis"
	case ModeBulkJD:
		return "Bulk JD Analysis"
	default:
		return "Unknown Mode"
	}
}
