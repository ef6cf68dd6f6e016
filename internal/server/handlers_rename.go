package server

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/ats-ui/internal/report"
	"github.com/jonathan/ats-ui/internal/types"
	"github.com/jonathan/ats-ui/internal/upload"
)

// renameView is the file renamer form.
type renameView struct {
	CompanyName string
	RoleName    string
	UserName    string
	Preview     string
}

func (s *Server) handleRenameForm(w http.ResponseWriter, _ *http.Request) {
	s.render(w, http.StatusOK, pageRename, pageData{Title: "File Renamer", Nav: "rename", View: renameView{}})
}

// handleRename processes the renamer form and streams the renamed file back.
func (s *Server) handleRename(w http.ResponseWriter, r *http.Request) {
	if err := parseUploadForm(w, r); err != nil {
		s.renderRenameError(w, renameView{}, err)
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, hasFile, err := formFile(r, "file")
	if err != nil {
		s.renderRenameError(w, renameView{}, err)
		return
	}
	req := types.RenameRequest{
		CompanyName: r.FormValue("companyName"),
		RoleName:    r.FormValue("roleName"),
		UserName:    r.FormValue("userName"),
		HasFile:     hasFile,
	}
	view := renameView{CompanyName: req.CompanyName, RoleName: req.RoleName, UserName: req.UserName}

	if err := req.Validate(); err != nil {
		s.renderRenameError(w, view, err)
		return
	}
	view.Preview = report.RenamePreview(file.Name, req.CompanyName, req.RoleName, req.UserName)
	if err := upload.RenameRules.Validate(file); err != nil {
		s.renderRenameError(w, view, err)
		return
	}

	filename, dl, err := s.rename(r.Context(), file, req, view.Preview)
	if err != nil {
		s.renderRenameError(w, view, err)
		return
	}
	s.logger.Info("file renamed", zap.String("from", file.Name), zap.String("to", filename))
	serveDownload(w, filename, dl.contentType, dl.data)
}

type renamed struct {
	contentType string
	data        []byte
}

// rename asks the backend to process the file, then downloads the result. A
// refusal from the renamer comes back as a backend.RenameError.
// The backend's file name wins over the processed name and the preview.
func (s *Server) rename(ctx context.Context, file upload.File, req types.RenameRequest, preview string) (string, *renamed, error) {
	result, err := s.backend.ProcessRename(ctx, file, req)
	if err != nil {
		return "", nil, err
	}

	dl, err := s.backend.DownloadRenamed(ctx, file, req)
	if err != nil {
		return "", nil, err
	}

	filename := dl.Filename
	if filename == "" && result.Data != nil {
		filename = result.Data.NewFileName
	}
	if filename == "" {
		filename = preview
	}
	return filename, &renamed{contentType: dl.ContentType, data: dl.Data}, nil
}

func (s *Server) renderRenameError(w http.ResponseWriter, view renameView, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("rename failed", zap.Error(err))
	}
	s.render(w, status, pageRename, pageData{
		Title: "File Renamer",
		Nav:   "rename",
		Error: userMessage(err),
		View:  view,
	})
}
