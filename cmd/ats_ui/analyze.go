package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/ats-ui/internal/report"
	"github.com/jonathan/ats-ui/internal/types"
	"github.com/jonathan/ats-ui/internal/upload"
)

// allSections expands every section in terminal output.
var allSections = report.ParseOpen(strings.Join([]string{
	report.SectionWorkExperience,
	report.SectionProjects,
	report.SectionCertificates,
	report.SectionTechnicalSkills,
}, ","))

func newAnalyzeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <resume>",
		Short: "Analyze one resume for ATS compatibility (mode 1)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resume, err := readResume(args[0])
			if err != nil {
				return err
			}
			client, err := a.client(nil)
			if err != nil {
				return err
			}

			rep, err := client.AnalyzeResume(cmd.Context(), resume)
			if err != nil {
				return fmt.Errorf("analysis failed: %w", err)
			}
			return a.showAnalysis(cmd, types.ModeResume, rep)
		},
	}
}

func newMatchCmd(a *app) *cobra.Command {
	var (
		jdText string
		jdFile string
	)

	cmd := &cobra.Command{
		Use:   "match <resume>",
		Short: "Compare a resume against a job description (mode 2)",
		Long: `Compare a resume against one job description. Pass the description inline
with --jd or from a text file with --jd-file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if jdFile != "" {
				data, err := os.ReadFile(jdFile)
				if err != nil {
					return fmt.Errorf("failed to read job description: %w", err)
				}
				jdText = string(data)
			}

			resume, err := readResume(args[0])
			if err != nil {
				return err
			}
			req := types.AnalyzeRequest{Mode: types.ModeJobMatch, ResumeCount: 1, JobDescription: jdText}
			if err := req.Validate(); err != nil {
				return err
			}

			client, err := a.client(nil)
			if err != nil {
				return err
			}
			rep, err := client.MatchJobDescription(cmd.Context(), resume, jdText)
			if err != nil {
				return fmt.Errorf("job match failed: %w", err)
			}
			return a.showAnalysis(cmd, types.ModeJobMatch, rep)
		},
	}

	cmd.Flags().StringVar(&jdText, "jd", "", "Job description text")
	cmd.Flags().StringVar(&jdFile, "jd-file", "", "Path to a job description text file")
	cmd.MarkFlagsMutuallyExclusive("jd", "jd-file")
	return cmd
}

func newBulkCmd(a *app) *cobra.Command {
	var (
		excelPath string
		sortBy    string
		noExcel   bool
		exclude   []string
	)

	cmd := &cobra.Command{
		Use:   "bulk --excel <job-descriptions.xlsx> <resume>...",
		Short: "Match many resumes against an Excel file of job descriptions (mode 4)",
		Long: fmt.Sprintf(`Match up to %d resumes against the job descriptions in column A of an
Excel workbook. The backend's Excel export is saved to the output directory.`, upload.MaxResumeFiles),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resumes := make([]upload.File, 0, len(args))
			for _, path := range args {
				f, err := upload.ReadFile(path)
				if err != nil {
					return err
				}
				resumes = append(resumes, f)
			}

			sel := upload.NewSelection(upload.BulkResumeRules)
			rejected, truncated := sel.Add(resumes...)
			for _, name := range exclude {
				if !sel.RemoveNamed(name) {
					return fmt.Errorf("cannot exclude %s: not among the selected resumes", name)
				}
			}
			if sel.Len() == 0 && len(rejected) > 0 {
				return rejected[0]
			}
			for _, w := range upload.Warnings(rejected, truncated) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Warning:", w)
			}
			if !a.jsonOutput && sel.Len() > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "Selected %d resumes (Total: %s)\n", sel.Len(), upload.FormatSize(sel.TotalSize()))
			}

			var excel upload.File
			hasExcel := excelPath != ""
			if hasExcel {
				f, err := upload.ReadFile(excelPath)
				if err != nil {
					return err
				}
				excel = f
			}
			req := types.AnalyzeRequest{Mode: types.ModeBulkJD, ResumeCount: sel.Len(), HasExcel: hasExcel}
			if err := req.Validate(); err != nil {
				return err
			}
			if err := upload.ExcelRules.Validate(excel); err != nil {
				return err
			}

			client, err := a.client(nil)
			if err != nil {
				return err
			}
			rep, err := client.BulkAnalyze(cmd.Context(), sel.Files(), excel)
			if err != nil {
				return fmt.Errorf("bulk analysis failed: %w", err)
			}

			var saved string
			if !noExcel && rep.HasExcel() {
				if saved, err = a.saveExcel(rep); err != nil {
					return err
				}
			}

			if a.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), rep)
			}
			a.printer(cmd.OutOrStdout()).PrintBulk(report.NewBulkView(rep, sortBy))
			if saved != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Excel results saved to %s\n", saved)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&excelPath, "excel", "", "Excel workbook with job descriptions in column A (required)")
	cmd.Flags().StringVar(&sortBy, "sort", report.SortByScore, "Sort results by score, name or jd")
	cmd.Flags().BoolVar(&noExcel, "no-excel", false, "Do not save the Excel export")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Drop a selected resume by file name (repeatable)")
	return cmd
}

// readResume loads a resume and applies the single resume dropzone rules.
func readResume(path string) (upload.File, error) {
	f, err := upload.ReadFile(path)
	if err != nil {
		return upload.File{}, err
	}
	if err := upload.ResumeRules.Validate(f); err != nil {
		return upload.File{}, err
	}
	return f, nil
}

func (a *app) showAnalysis(cmd *cobra.Command, mode types.Mode, rep *types.AnalysisReport) error {
	if a.jsonOutput {
		return writeJSON(cmd.OutOrStdout(), rep)
	}
	a.printer(cmd.OutOrStdout()).PrintAnalysis(report.NewAnalysisView(mode, rep, allSections))
	return nil
}

func (a *app) saveExcel(rep *types.BulkReport) (string, error) {
	export, err := report.DecodeExcel(rep)
	if err != nil {
		if errors.Is(err, report.ErrNoExcel) {
			return "", nil
		}
		return "", err
	}
	path, err := saveFile(a.cfg.OutputDir, export.Name, export.Data)
	if err != nil {
		return "", err
	}
	a.logger.Debug("excel export saved", zap.String("path", path), zap.Int("bytes", len(export.Data)))
	return path, nil
}
