package upload

import (
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

// DetectContentType sniffs the MIME type of data. Text types lose their
// charset parameter so they compare equal to the dropzone's "text/plain".
func DetectContentType(data []byte) string {
	m := mimetype.Detect(data)
	if m.Is(MIMETXT) {
		return MIMETXT
	}
	return BaseType(m.String())
}

// ReadFile loads a file from disk and detects its content type, as the CLI
// has no browser-supplied type to rely on.
func ReadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, &DetectError{Path: path, Cause: err}
	}
	return File{
		Name:        filepath.Base(path),
		ContentType: DetectContentType(data),
		Data:        data,
	}, nil
}
