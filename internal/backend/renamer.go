package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jonathan/ats-ui/internal/types"
	"github.com/jonathan/ats-ui/internal/upload"
	contracts "github.com/jonathan/ats-ui/schemas"
)

const renamerPath = "/api/file-renamer"

// ErrRenameFailed is wrapped when the renamer refuses a file.
var ErrRenameFailed = errors.New("rename failed")

const renameFailedMessage = "File processing failed"

// RenameError is the renamer refusing a file, either with success=false or
// with a 4xx response. Message is the renamer's own text.
type RenameError struct {
	Status  int
	Message string
}

func (e *RenameError) Error() string {
	return e.Message
}

func (e *RenameError) Unwrap() error {
	return ErrRenameFailed
}

// renameRejection turns a 4xx backend response into a RenameError. A 404
// means the endpoint itself is missing and stays a backend error.
func renameRejection(err error) error {
	var be *Error
	if !errors.As(err, &be) || be.Status < 400 || be.Status >= 500 || be.Status == http.StatusNotFound {
		return err
	}
	msg := be.Body
	if msg == "" {
		msg = renameFailedMessage
	}
	return &RenameError{Status: be.Status, Message: msg}
}

func renameForm(file upload.File, req types.RenameRequest) *form {
	f := newForm().
		file("file", file).
		field("companyName", req.CompanyName).
		field("roleName", req.RoleName)
	if req.UserName != "" {
		f.field("userName", req.UserName)
	}
	return f
}

// ProcessRename asks the backend to rename file for the given company and role.
func (c *Client) ProcessRename(ctx context.Context, file upload.File, req types.RenameRequest) (*types.RenameResult, error) {
	req.Normalize()
	r, err := c.multipartRequest("process rename", renamerPath+"/process", renameForm(file, req))
	if err != nil {
		return nil, err
	}

	var result types.RenameResult
	if err := c.doJSON(ctx, r, contracts.RenameResult, &result); err != nil {
		return nil, renameRejection(err)
	}
	if !result.Success {
		msg := result.Error
		if msg == "" {
			msg = result.Message
		}
		if msg == "" {
			msg = renameFailedMessage
		}
		return nil, &RenameError{Status: http.StatusOK, Message: msg}
	}
	return &result, nil
}

// DownloadRenamed returns the renamed file. The form is the same one sent to
// ProcessRename.
func (c *Client) DownloadRenamed(ctx context.Context, file upload.File, req types.RenameRequest) (*Download, error) {
	req.Normalize()
	r, err := c.multipartRequest("download renamed file", renamerPath+"/download", renameForm(file, req))
	if err != nil {
		return nil, err
	}
	resp, err := c.do(ctx, r)
	if err != nil {
		return nil, renameRejection(err)
	}
	return newDownload(resp), nil
}

// RenameInfo returns the backend's view of an uploaded file.
func (c *Client) RenameInfo(ctx context.Context, file upload.File) (*types.FileInfo, error) {
	r, err := c.multipartRequest("rename info", renamerPath+"/info", newForm().file("file", file))
	if err != nil {
		return nil, err
	}
	var info types.FileInfo
	if err := c.doJSON(ctx, r, "", &info); err != nil {
		return nil, err
	}
	return &info, nil
}

type downloadResumeRequest struct {
	ResumeName            string `json:"resumeName"`
	NewResumeName         string `json:"newResumeName"`
	OriginalResumeContent string `json:"originalResumeContent"`
}

// ErrNoResumeContent is returned when a bulk result carries no resume content.
var ErrNoResumeContent = errors.New("resume content not found")

// DownloadResume rebuilds a resume file from the content returned in a bulk
// report, named newName.
func (c *Client) DownloadResume(ctx context.Context, name, newName, content string) (*Download, error) {
	const op = "download resume"
	if content == "" {
		return nil, &Error{Op: op, Cause: ErrNoResumeContent}
	}

	body, err := json.Marshal(downloadResumeRequest{
		ResumeName:            name,
		NewResumeName:         newName,
		OriginalResumeContent: content,
	})
	if err != nil {
		return nil, &Error{Op: op, Cause: err}
	}

	resp, err := c.do(ctx, request{
		op:          op,
		method:      http.MethodPost,
		path:        "/api/download-resume",
		body:        body,
		contentType: "application/json",
	})
	if err != nil {
		return nil, err
	}
	return newDownload(resp), nil
}
