package backend

import (
	"net/url"
	"regexp"
	"strings"
)

// Download is a binary file returned by the backend.
type Download struct {
	// Filename is taken from Content-Disposition and may be empty.
	Filename    string
	ContentType string
	Data        []byte
}

var (
	extendedFilename = regexp.MustCompile(`(?i)filename\*=UTF-8''([^;]+)`)
	quotedFilename   = regexp.MustCompile(`(?i)filename="([^"]+)"`)
	bareFilename     = regexp.MustCompile(`(?i)filename=([^";]+)`)
)

// FilenameFromDisposition extracts the file name from a Content-Disposition
// header. The RFC 5987 form (filename*=UTF-8''...) wins over the quoted form.
func FilenameFromDisposition(header string) string {
	if header == "" {
		return ""
	}
	if m := extendedFilename.FindStringSubmatch(header); m != nil {
		raw := strings.TrimSpace(m[1])
		if decoded, err := url.PathUnescape(raw); err == nil {
			return decoded
		}
		return raw
	}
	if m := quotedFilename.FindStringSubmatch(header); m != nil {
		return m[1]
	}
	if m := bareFilename.FindStringSubmatch(header); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func newDownload(resp *response) *Download {
	return &Download{
		Filename:    FilenameFromDisposition(resp.header.Get("Content-Disposition")),
		ContentType: resp.contentType,
		Data:        resp.body,
	}
}
