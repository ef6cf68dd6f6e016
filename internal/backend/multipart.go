package backend

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/jonathan/ats-ui/internal/upload"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// form accumulates multipart fields in insertion order.
type form struct {
	buf    bytes.Buffer
	writer *multipart.Writer
	err    error
}

func newForm() *form {
	f := &form{}
	f.writer = multipart.NewWriter(&f.buf)
	return f
}

// file adds a file part under field, keeping the file's own content type.
func (f *form) file(field string, file upload.File) *form {
	if f.err != nil {
		return f
	}
	contentType := file.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(file.Data)
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(field), quoteEscaper.Replace(file.Name)))
	h.Set("Content-Type", contentType)

	part, err := f.writer.CreatePart(h)
	if err != nil {
		f.err = err
		return f
	}
	_, f.err = part.Write(file.Data)
	return f
}

// field adds a text field.
func (f *form) field(name, value string) *form {
	if f.err != nil {
		return f
	}
	f.err = f.writer.WriteField(name, value)
	return f
}

// encode closes the form and returns the body and its content type.
func (f *form) encode() ([]byte, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	if err := f.writer.Close(); err != nil {
		return nil, "", err
	}
	return f.buf.Bytes(), f.writer.FormDataContentType(), nil
}

func (c *Client) multipartRequest(op, path string, f *form) (request, error) {
	body, contentType, err := f.encode()
	if err != nil {
		return request{}, &Error{Op: op, Cause: fmt.Errorf("failed to build multipart body: %w", err)}
	}
	return request{
		op:          op,
		method:      http.MethodPost,
		path:        path,
		body:        body,
		contentType: contentType,
	}, nil
}
