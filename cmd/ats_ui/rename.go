package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/ats-ui/internal/report"
	"github.com/jonathan/ats-ui/internal/types"
	"github.com/jonathan/ats-ui/internal/upload"
)

func newRenameCmd(a *app) *cobra.Command {
	var (
		req  types.RenameRequest
		info bool
	)

	cmd := &cobra.Command{
		Use:   "rename <file>",
		Short: "Rename a resume for a company and role",
		Long: `Send a file to the backend file renamer and save the renamed copy to the
output directory. The new name follows Company_Role[_User] with the original extension.
With --info the file is only described by the backend and nothing is renamed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := upload.ReadFile(args[0])
			if err != nil {
				return err
			}
			if info {
				return a.showFileInfo(cmd, file)
			}
			req.HasFile = true
			if err := req.Validate(); err != nil {
				return err
			}
			if err := upload.RenameRules.Validate(file); err != nil {
				return err
			}
			preview := report.RenamePreview(file.Name, req.CompanyName, req.RoleName, req.UserName)
			a.logger.Debug("renaming file", zap.String("file", file.Name), zap.String("preview", preview))

			client, err := a.client(nil)
			if err != nil {
				return err
			}
			result, err := client.ProcessRename(cmd.Context(), file, req)
			if err != nil {
				return fmt.Errorf("rename failed: %w", err)
			}
			dl, err := client.DownloadRenamed(cmd.Context(), file, req)
			if err != nil {
				return fmt.Errorf("download failed: %w", err)
			}

			name := dl.Filename
			if name == "" && result.Data != nil {
				name = result.Data.NewFileName
			}
			if name == "" {
				name = preview
			}
			path, err := saveFile(a.cfg.OutputDir, name, dl.Data)
			if err != nil {
				return err
			}

			if a.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), struct {
					*types.RenameResult
					SavedTo string `json:"savedTo"`
				}{result, path})
			}
			a.printer(cmd.OutOrStdout()).PrintRenameResult(result, path)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.CompanyName, "company", "", "Company name (required)")
	cmd.Flags().StringVar(&req.RoleName, "role", "", "Role name (required)")
	cmd.Flags().StringVar(&req.UserName, "user", "", "Your name (optional)")
	cmd.Flags().BoolVar(&info, "info", false, "Show what the backend sees in the file instead of renaming it")
	return cmd
}

func (a *app) showFileInfo(cmd *cobra.Command, file upload.File) error {
	if err := upload.RenameRules.Validate(file); err != nil {
		return err
	}
	client, err := a.client(nil)
	if err != nil {
		return err
	}
	info, err := client.RenameInfo(cmd.Context(), file)
	if err != nil {
		return fmt.Errorf("failed to read file info: %w", err)
	}
	if a.jsonOutput {
		return writeJSON(cmd.OutOrStdout(), info)
	}
	a.printer(cmd.OutOrStdout()).PrintFileInfo(info)
	return nil
}
