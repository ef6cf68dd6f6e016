package backend

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// ErrNotFound is matched (via errors.Is) by a backend 404 response.
var ErrNotFound = errors.New("not found")

// maxErrorText bounds how much of an error body is kept.
const maxErrorText = 500

// Error represents a failed backend call. Status is zero when the request
// never produced a response.
type Error struct {
	Op     string
	Status int
	Body   string
	Cause  error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("Server error: %d - %s", e.Status, e.Body)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("%s: request failed", e.Op)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports 404 responses as ErrNotFound.
func (e *Error) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var be *Error
	if errors.As(err, &be) {
		return be.Status
	}
	return 0
}

// errorText reduces an error response body to a short human-readable message.
// HTML pages are flattened to their text; JSON bodies yield their "error" or
// "message" field.
func errorText(status int, contentType string, body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return http.StatusText(status)
	}

	switch {
	case strings.Contains(contentType, "html") || bytes.HasPrefix(trimmed, []byte("<")):
		if text := htmlText(trimmed); text != "" {
			return truncate(text)
		}
	case strings.Contains(contentType, "json") || trimmed[0] == '{':
		var payload struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(trimmed, &payload); err == nil {
			if payload.Error != "" {
				return truncate(payload.Error)
			}
			if payload.Message != "" {
				return truncate(payload.Message)
			}
		}
	}
	return truncate(string(trimmed))
}

func htmlText(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	doc.Find("script, style, noscript, head").Remove()
	return strings.Join(strings.Fields(doc.Text()), " ")
}

func truncate(s string) string {
	if len(s) <= maxErrorText {
		return s
	}
	cut := maxErrorText
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
