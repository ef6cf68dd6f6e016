package report

import (
	"path/filepath"
	"strconv"
	"strings"
)

func itoa(i int) string {
	return strconv.Itoa(i)
}

// ExtensionForContentType maps a download's content type to a file extension.
func ExtensionForContentType(contentType string) string {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "pdf"):
		return ".pdf"
	case strings.Contains(ct, "wordprocessingml"), strings.Contains(ct, "docx"):
		return ".docx"
	case strings.Contains(ct, "msword"), strings.Contains(ct, "doc"):
		return ".doc"
	case strings.Contains(ct, "text/plain"), strings.Contains(ct, "txt"):
		return ".txt"
	default:
		return ""
	}
}

// BestMatchFilename names a best-match download. newResumeName is the
// renamed resume from the best match record; when there is none the file is
// named after the job description.
func BestMatchFilename(contentType, newResumeName string, jdIndex int) string {
	if newResumeName == "" {
		return "BestMatch_JD" + itoa(jdIndex+1)
	}
	return newResumeName + ExtensionForContentType(contentType)
}

// OriginalExtension returns the extension of the uploaded resume, or ".pdf".
func OriginalExtension(originalName string) string {
	if i := strings.LastIndex(originalName, "."); i >= 0 {
		return originalName[i:]
	}
	return ".pdf"
}

// BulkDownloadName names a renamed resume downloaded from the bulk page.
func BulkDownloadName(originalName, newResumeName string) string {
	return newResumeName + OriginalExtension(originalName)
}

// RenamePreview predicts the renamed file name: Company_Role[_User] plus the
// original extension. It is empty until a company or role is entered.
func RenamePreview(originalName, company, role, user string) string {
	var parts []string
	for _, p := range []string{company, role, user} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if strings.TrimSpace(company) == "" && strings.TrimSpace(role) == "" {
		return ""
	}
	preview := strings.Join(parts, "_")
	if originalName != "" {
		preview += filepath.Ext(originalName)
	}
	return preview
}
