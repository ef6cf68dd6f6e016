// Package upload validates files picked for analysis the way the upload
// dropzones do: MIME type, size and selection limits.
package upload

import "fmt"

// ValidationError reports a file rejected by a dropzone rule.
// Message is the text shown to the user.
type ValidationError struct {
	File    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// DetectError represents a failure reading a file to detect its content type
type DetectError struct {
	Path  string
	Cause error
}

func (e *DetectError) Error() string {
	return fmt.Sprintf("detect content type of %s: %v", e.Path, e.Cause)
}

func (e *DetectError) Unwrap() error {
	return e.Cause
}
