package server

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/jonathan/ats-ui/internal/upload"
)

// maxMemoryBytes is how much of a form is buffered in memory before parts
// spill to temporary files.
const maxMemoryBytes = 32 * upload.MB

// maxUploadBytes bounds a whole analysis form: twenty resumes plus the job
// descriptions workbook and some multipart overhead.
var maxUploadBytes int64 = upload.MaxResumeFiles*10*upload.MB + 6*upload.MB

// parseUploadForm reads a multipart form with the upload size limit applied.
func parseUploadForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxMemoryBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return ErrFormTooLarge
		}
		return fmt.Errorf("failed to parse form: %w", err)
	}
	return nil
}

// formFiles reads every file posted under field, in form order.
func formFiles(r *http.Request, field string) ([]upload.File, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	headers := r.MultipartForm.File[field]
	files := make([]upload.File, 0, len(headers))
	for _, fh := range headers {
		f, err := readPart(fh)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// formFile reads the first file posted under field. ok is false when none was.
func formFile(r *http.Request, field string) (upload.File, bool, error) {
	files, err := formFiles(r, field)
	if err != nil || len(files) == 0 {
		return upload.File{}, false, err
	}
	return files[0], true, nil
}

// readPart loads one uploaded file. The declared part type is used; it is
// sniffed from the content only when the browser sent none.
func readPart(fh *multipart.FileHeader) (upload.File, error) {
	src, err := fh.Open()
	if err != nil {
		return upload.File{}, fmt.Errorf("failed to open upload %s: %w", fh.Filename, err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return upload.File{}, fmt.Errorf("failed to read upload %s: %w", fh.Filename, err)
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = upload.DetectContentType(data)
	}
	return upload.File{Name: fh.Filename, ContentType: contentType, Data: data}, nil
}

// serveDownload writes a file as an attachment.
func serveDownload(w http.ResponseWriter, filename, contentType string, data []byte) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", contentDisposition(filename))
	w.Header().Set("Content-Length", fmt.Sprint(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// contentDisposition builds an attachment header; non-ASCII names use the
// RFC 2231 form.
func contentDisposition(filename string) string {
	if filename == "" {
		return "attachment"
	}
	if v := mime.FormatMediaType("attachment", map[string]string{"filename": filename}); v != "" {
		return v
	}
	return "attachment"
}
