package upload

import (
	"path/filepath"
	"slices"
	"strings"
)

const (
	// MB is one mebibyte; dropzone limits are expressed in it.
	MB = 1024 * 1024

	// MaxResumeFiles caps a multiple-resume selection.
	MaxResumeFiles = 20
)

// File is a picked file held in memory.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Size returns the file size in bytes.
func (f File) Size() int64 {
	return int64(len(f.Data))
}

// Ext returns the lower-cased extension including the dot, or "".
func (f File) Ext() string {
	return strings.ToLower(filepath.Ext(f.Name))
}

// Rules describes what a dropzone accepts.
type Rules struct {
	Name string
	// AcceptedTypes lists accepted MIME types. Empty accepts any type.
	AcceptedTypes []string
	// AcceptedExtensions are accepted even when the MIME type is not.
	AcceptedExtensions []string
	MaxSize            int64
	// MaxFiles limits a multiple selection. Zero means a single file.
	MaxFiles int

	TypeMessage string
	SizeMessage string
}

// Resume MIME types accepted by the resume dropzones.
const (
	MIMEPDF  = "application/pdf"
	MIMEDOC  = "application/msword"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMETXT  = "text/plain"
	MIMEXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MIMEXLS  = "application/vnd.ms-excel"
	MIMEBin  = "application/octet-stream"
)

// ResumeRules applies to a single resume upload (modes 1 and 2).
var ResumeRules = Rules{
	Name:          "resume",
	AcceptedTypes: []string{MIMEPDF, MIMEDOC, MIMEDOCX, MIMETXT},
	MaxSize:       10 * MB,
	TypeMessage:   "Please upload a valid file type (PDF, DOC, DOCX, or TXT)",
	SizeMessage:   "Maximum file size is 10MB",
}

// BulkResumeRules applies to the multiple resume upload of mode 4.
var BulkResumeRules = Rules{
	Name:          "resumes",
	AcceptedTypes: ResumeRules.AcceptedTypes,
	MaxSize:       10 * MB,
	MaxFiles:      MaxResumeFiles,
	TypeMessage:   ResumeRules.TypeMessage,
	SizeMessage:   ResumeRules.SizeMessage,
}

// ExcelRules applies to the job descriptions workbook of mode 4.
var ExcelRules = Rules{
	Name:               "jobDescriptions",
	AcceptedTypes:      []string{MIMEXLSX, MIMEXLS, MIMEBin},
	AcceptedExtensions: []string{".xlsx", ".xls"},
	MaxSize:            5 * MB,
	TypeMessage:        "Please select a valid Excel file (.xlsx or .xls)",
	SizeMessage:        "File size must be less than 5MB",
}

// RenameRules applies to the file renamer, which takes any file type.
var RenameRules = Rules{
	Name:        "file",
	MaxSize:     10 * MB,
	SizeMessage: "Maximum file size is 10MB",
}

// Multiple reports whether the dropzone takes more than one file.
func (r Rules) Multiple() bool {
	return r.MaxFiles > 0
}

// Accepts reports whether the file's type or extension is allowed.
func (r Rules) Accepts(f File) bool {
	if len(r.AcceptedTypes) == 0 {
		return true
	}
	if slices.Contains(r.AcceptedTypes, BaseType(f.ContentType)) {
		return true
	}
	return slices.Contains(r.AcceptedExtensions, f.Ext())
}

// Validate checks one file against the rules. Type is checked before size.
func (r Rules) Validate(f File) error {
	if !r.Accepts(f) {
		return &ValidationError{File: f.Name, Message: r.TypeMessage}
	}
	if r.MaxSize > 0 && f.Size() > r.MaxSize {
		return &ValidationError{File: f.Name, Message: r.SizeMessage}
	}
	return nil
}

// BaseType strips parameters from a MIME type ("text/plain; charset=utf-8" -> "text/plain").
func BaseType(contentType string) string {
	base, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(base))
}
