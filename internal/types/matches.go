package types

// Match statuses assigned by the backend.
const (
	MatchStatusMatched   = "MATCHED"
	MatchStatusUnmatched = "UNMATCHED"
)

// ResumeMatch is a stored match record served by /api/resume-matches.
type ResumeMatch struct {
	MatchID        string `json:"matchId"`
	ResumeName     string `json:"resumeName"`
	NewResumeName  string `json:"newResumeName,omitempty"`
	CompanyName    string `json:"companyName"`
	RoleName       string `json:"roleName"`
	UserName       string `json:"userName,omitempty"`
	JobDescription string `json:"jobDescription"`
	ATSScore       Score  `json:"atsScore"`
	MatchStatus    string `json:"matchStatus,omitempty"`
	JDIndex        int    `json:"jdIndex"`
	FileType       string `json:"fileType,omitempty"`
	FileSize       int64  `json:"fileSize,omitempty"`
	MatchDate      string `json:"matchDate,omitempty"`
}

// Matched reports whether the record is marked MATCHED.
func (m ResumeMatch) Matched() bool {
	return m.MatchStatus == MatchStatusMatched
}

// MatchStatistics summarizes the stored match records.
type MatchStatistics struct {
	TotalMatches         int `json:"totalMatches"`
	MatchedResumes       int `json:"matchedResumes"`
	UnmatchedResumes     int `json:"unmatchedResumes"`
	TotalJobDescriptions int `json:"totalJobDescriptions"`

	// Older backends report the job description count under this key.
	UniqueJobDescriptions int `json:"uniqueJobDescriptions,omitempty"`
}

// JobDescriptions returns the job description count from whichever key the
// backend filled.
func (s MatchStatistics) JobDescriptions() int {
	if s.TotalJobDescriptions > 0 {
		return s.TotalJobDescriptions
	}
	return s.UniqueJobDescriptions
}

// MatchList wraps the /api/resume-matches/all response.
type MatchList struct {
	Matches []ResumeMatch `json:"matches"`
	Message string        `json:"message,omitempty"`
}

// RenamedFile describes the renamed file produced by the backend.
type RenamedFile struct {
	OriginalFileName string `json:"originalFileName,omitempty"`
	NewFileName      string `json:"newFileName,omitempty"`
	FileSize         int64  `json:"fileSize,omitempty"`
	ContentType      string `json:"contentType,omitempty"`
	FileExtension    string `json:"fileExtension,omitempty"`
	CompanyName      string `json:"companyName,omitempty"`
	RoleName         string `json:"roleName,omitempty"`
	UserName         string `json:"userName,omitempty"`
}

// RenameResult is the /api/file-renamer/process response.
type RenameResult struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Error   string       `json:"error,omitempty"`
	Data    *RenamedFile `json:"data,omitempty"`
}

// FileInfo is the /api/file-renamer/info response.
type FileInfo struct {
	FileName    string `json:"originalFileName"`
	FileSize    int64  `json:"fileSize"`
	ContentType string `json:"contentType"`
	Extension   string `json:"fileExtension,omitempty"`
}

// HealthStatus is the /api/health response.
type HealthStatus struct {
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	Service   string `json:"service,omitempty"`
	Version   string `json:"version,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

// Up reports whether the backend declared itself healthy.
func (h HealthStatus) Up() bool {
	return h.Status == "UP"
}
