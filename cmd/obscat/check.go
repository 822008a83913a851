package main

import (
	"github.com/matsen/obscat/internal/catalogue"
	"github.com/spf13/cobra"
)

var checkOutput string

func init() {
	checkCmd.Flags().StringVarP(&checkOutput, "output", "o", "", "Article folder (default: cached article_folder_path)")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Audit the article folders",
	Long: `Audit the article folders of a catalogue.

Reports folders without a note, with several notes (left behind when a
title changes), without a redirect stub, BibTeX record or PDF, and PDFs
that have not been rendered to images yet.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

// CheckResult is the response for the check command.
type CheckResult struct {
	Status  string       `json:"status"`
	Folders int          `json:"folders"`
	Issues  []CheckIssue `json:"issues"`
}

// CheckIssue lists the problems of one folder.
type CheckIssue struct {
	Key      string   `json:"key"`
	Folder   string   `json:"folder"`
	Problems []string `json:"problems"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	_, outputDir := resolvePaths("", checkOutput, false, true)

	statuses, err := catalogue.Audit(outputDir)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	result := buildCheckResult(statuses)

	if humanOutput {
		if len(result.Issues) == 0 {
			outputHuman("All %d folders are complete\n", result.Folders)
		} else {
			outputHuman("%d of %d folders have problems:\n\n", len(result.Issues), result.Folders)
			for _, issue := range result.Issues {
				outputHuman("  %s\n", issue.Key)
				for _, p := range issue.Problems {
					outputHuman("    - %s\n", p)
				}
			}
		}
	} else {
		outputJSON(result)
	}
	return nil
}

func buildCheckResult(statuses []catalogue.FolderStatus) CheckResult {
	result := CheckResult{Status: "ok", Folders: len(statuses), Issues: []CheckIssue{}}
	for _, s := range statuses {
		if problems := s.Problems(); len(problems) > 0 {
			result.Issues = append(result.Issues, CheckIssue{Key: s.Key, Folder: s.Folder, Problems: problems})
		}
	}
	if len(result.Issues) > 0 {
		result.Status = "issues_found"
	}
	return result
}
