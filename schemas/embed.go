// Package schemas embeds the JSON Schemas describing the ATS backend's
// response contracts.
package schemas

import "embed"

// Schema file names.
const (
	AnalysisReport  = "analysis_report.schema.json"
	BulkReport      = "bulk_report.schema.json"
	ResumeMatch     = "resume_match.schema.json"
	MatchStatistics = "match_statistics.schema.json"
	RenameResult    = "rename_result.schema.json"
)

// Files holds every *.schema.json in this directory.
//
//go:embed *.schema.json
var Files embed.FS

// Names lists the embedded schemas.
func Names() []string {
	return []string{AnalysisReport, BulkReport, ResumeMatch, MatchStatistics, RenameResult}
}
