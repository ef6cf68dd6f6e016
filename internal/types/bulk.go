package types

// JDMatch is one resume scored against one job description in a bulk run.
type JDMatch struct {
	ResumeName            string `json:"resumeName"`
	NewResumeName         string `json:"newResumeName,omitempty"`
	ResumeIndex           int    `json:"resumeIndex"`
	JDIndex               int    `json:"jdIndex"`
	JDText                string `json:"jdText,omitempty"`
	CompanyName           string `json:"companyName,omitempty"`
	RoleName              string `json:"roleName,omitempty"`
	ATSScore              Score  `json:"atsScore"`
	MatchStatus           string `json:"matchStatus,omitempty"`
	OriginalResumeContent string `json:"originalResumeContent,omitempty"`
	OriginalResumeName    string `json:"originalResumeName,omitempty"`
}

// ResumeResult is a resume's best match plus every per-JD match in a bulk run.
// Error is set when the backend failed to process the resume.
type ResumeResult struct {
	JDMatch
	Error         string     `json:"error,omitempty"`
	FileSize      int64      `json:"fileSize,omitempty"`
	CareerSummary StringList `json:"careerSummary,omitempty"`
	AllMatches    []JDMatch  `json:"allMatches,omitempty"`
}

// Failed reports whether the backend could not process this resume.
func (r ResumeResult) Failed() bool {
	return r.Error != ""
}

// BulkSummary aggregates a bulk run.
type BulkSummary struct {
	TotalResumes         int           `json:"totalResumes"`
	TotalJobDescriptions int           `json:"totalJobDescriptions"`
	ValidResults         int           `json:"validResults"`
	AverageScore         float64       `json:"averageScore"`
	HighestScore         float64       `json:"highestScore"`
	LowestScore          float64       `json:"lowestScore"`
	BestOverallMatch     *ResumeResult `json:"bestOverallMatch,omitempty"`
}

// BulkReport is the backend response for mode 4 (bulk resumes against an
// Excel workbook of job descriptions).
type BulkReport struct {
	Summary              BulkSummary    `json:"summary"`
	ResumeResults        []ResumeResult `json:"resumeResults"`
	TotalJobDescriptions int            `json:"totalJobDescriptions"`
	TotalResumes         int            `json:"totalResumes"`
	TotalMatched         int            `json:"totalMatched"`
	TotalUnmatched       int            `json:"totalUnmatched"`
	// ExcelData is the base64-encoded result workbook.
	ExcelData     string `json:"excelData,omitempty"`
	ExcelFileName string `json:"excelFileName,omitempty"`
}

// HasExcel reports whether the report carries an Excel export.
func (r *BulkReport) HasExcel() bool {
	return r != nil && r.ExcelData != ""
}
