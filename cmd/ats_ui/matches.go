package main

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-ui/internal/backend"
	"github.com/jonathan/ats-ui/internal/report"
	"github.com/jonathan/ats-ui/internal/types"
)

func newMatchesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matches",
		Short: "Browse and manage stored resume matches",
	}

	cmd.AddCommand(
		newMatchesListCmd(a),
		newMatchesStatsCmd(a),
		newMatchesBestCmd(a),
		newMatchesGetCmd(a),
		newMatchesSearchCmd(a),
		newMatchesRangeCmd(a),
		newMatchesClearCmd(a),
		newMatchesDownloadCmd(a),
	)
	return cmd
}

func newMatchesListCmd(a *app) *cobra.Command {
	var (
		filter  string
		query   string
		jdIndex int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored matches, highest score first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			jdSet := cmd.Flags().Changed("jd")
			if jdSet && jdIndex < 0 {
				return fmt.Errorf("invalid job description index %d", jdIndex)
			}
			client, err := a.client(nil)
			if err != nil {
				return err
			}

			var all []types.ResumeMatch
			switch {
			case jdSet:
				all, err = client.MatchesForJD(cmd.Context(), jdIndex)
			case report.NormalizeFilter(filter) == report.FilterMatched:
				all, err = client.MatchedResumes(cmd.Context())
			case report.NormalizeFilter(filter) == report.FilterUnmatched:
				all, err = client.UnmatchedResumes(cmd.Context())
			default:
				all, err = client.ListMatches(cmd.Context())
			}
			if err != nil {
				return fmt.Errorf("failed to load matches: %w", err)
			}

			matches := report.FilterMatches(all, filter, query)
			return a.showMatches(cmd, matches, len(all))
		},
	}

	cmd.Flags().StringVar(&filter, "filter", report.FilterAll, "Filter by status: all, matched or unmatched")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Search resume, company, role and job description")
	cmd.Flags().IntVar(&jdIndex, "jd", 0, "Only list matches for this job description index")
	return cmd
}

func newMatchesStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show match statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.client(nil)
			if err != nil {
				return err
			}
			stats, err := client.Statistics(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load statistics: %w", err)
			}
			if a.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), stats)
			}
			a.printer(cmd.OutOrStdout()).PrintStatistics(*stats)
			return nil
		},
	}
}

func newMatchesBestCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "best [jd-index]",
		Short: "Show the best match per job description",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client(nil)
			if err != nil {
				return err
			}

			var best []types.ResumeMatch
			if len(args) == 1 {
				jdIndex, err := parseJDIndex(args[0])
				if err != nil {
					return err
				}
				m, err := client.BestMatchForJD(cmd.Context(), jdIndex)
				if err != nil {
					return fmt.Errorf("failed to load best match: %w", err)
				}
				best = []types.ResumeMatch{*m}
			} else if best, err = client.BestMatches(cmd.Context()); err != nil {
				return fmt.Errorf("failed to load best matches: %w", err)
			}

			if a.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), best)
			}
			a.printer(cmd.OutOrStdout()).PrintBestMatches(best)
			return nil
		},
	}
}

func newMatchesGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <match-id>",
		Short: "Show one match record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client(nil)
			if err != nil {
				return err
			}
			m, err := client.GetMatch(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to load match %s: %w", args[0], err)
			}
			return a.showMatches(cmd, []types.ResumeMatch{*m}, 1)
		},
	}
}

func newMatchesSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search stored matches on the backend",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			client, err := a.client(nil)
			if err != nil {
				return err
			}
			matches, err := client.SearchMatches(cmd.Context(), query)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}
			return a.showMatches(cmd, matches, len(matches))
		},
	}
}

func newMatchesRangeCmd(a *app) *cobra.Command {
	var r types.ScoreRange

	cmd := &cobra.Command{
		Use:   "range",
		Short: "List matches with a score between --min and --max",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := r.Validate(); err != nil {
				return err
			}
			client, err := a.client(nil)
			if err != nil {
				return err
			}
			matches, err := client.MatchesByScoreRange(cmd.Context(), r)
			if err != nil {
				return fmt.Errorf("failed to load matches: %w", err)
			}
			return a.showMatches(cmd, report.FilterMatches(matches, report.FilterAll, ""), len(matches))
		},
	}

	cmd.Flags().Float64Var(&r.Min, "min", 0, "Lowest score (0-10)")
	cmd.Flags().Float64Var(&r.Max, "max", 10, "Highest score (0-10)")
	return cmd
}

func newMatchesClearCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every stored match",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes && !confirm(cmd, "Are you sure you want to clear all matches? This action cannot be undone.") {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}
			client, err := a.client(nil)
			if err != nil {
				return err
			}
			if err := client.ClearMatches(cmd.Context()); err != nil {
				return fmt.Errorf("failed to clear matches: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All matches cleared.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newMatchesDownloadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "download <jd-index>",
		Short: "Download the best matching resume for a job description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jdIndex, err := parseJDIndex(args[0])
			if err != nil {
				return err
			}
			client, err := a.client(nil)
			if err != nil {
				return err
			}

			dl, err := client.DownloadBestMatch(cmd.Context(), jdIndex)
			if err != nil {
				return fmt.Errorf("download failed: %w", err)
			}
			name := dl.Filename
			if name == "" {
				name = bestMatchName(cmd, client, dl, jdIndex)
			}

			path, err := saveFile(a.cfg.OutputDir, name, dl.Data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
			return nil
		},
	}
}

// bestMatchName names a download the backend sent without a filename, using
// the stored best match record when one is available.
func bestMatchName(cmd *cobra.Command, client *backend.Client, dl *backend.Download, jdIndex int) string {
	var newName string
	if best, err := client.BestMatches(cmd.Context()); err == nil {
		if m, ok := report.FindBestMatch(best, jdIndex); ok {
			newName = m.NewResumeName
		}
	}
	return report.BestMatchFilename(dl.ContentType, newName, jdIndex)
}

func (a *app) showMatches(cmd *cobra.Command, matches []types.ResumeMatch, total int) error {
	if a.jsonOutput {
		return writeJSON(cmd.OutOrStdout(), matches)
	}
	if len(matches) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), report.EmptyMatchesText(total))
		return nil
	}
	a.printer(cmd.OutOrStdout()).PrintMatches(matches)
	return nil
}

func parseJDIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid job description index %q", s)
	}
	return n, nil
}

// confirm asks a yes/no question on the command's input.
func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N]: ", question)
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
