package main

import (
	"github.com/matsen/obscat/internal/pdf"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(metaCmd)
}

var metaCmd = &cobra.Command{
	Use:   "meta <pdf>",
	Short: "Show the title, authors and DOI of a PDF",
	Long: `Show the title, authors and DOI of a PDF.

The title and authors come from the PDF's document information. A title is
also guessed from the first line of the first page of suitable length,
which helps with PDFs whose metadata is empty.`,
	Args: cobra.ExactArgs(1),
	RunE: runMeta,
}

func runMeta(cmd *cobra.Command, args []string) error {
	m, err := pdf.ExtractMetadata(args[0])
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		outputHuman("Title:      %s\n", orNotFound(m.Title))
		outputHuman("Authors:    %s\n", orNotFound(m.Author))
		if m.Subject != "" {
			outputHuman("Subject:    %s\n", m.Subject)
		}
		outputHuman("Text title: %s\n", orNotFound(m.TextTitle))
		if m.DOI != "" {
			outputHuman("DOI:        %s\n", m.DOI)
		}
		outputHuman("Pages:      %d\n", m.Pages)
	} else {
		outputJSON(m)
	}
	return nil
}

func orNotFound(s string) string {
	if s == "" {
		return "(not found)"
	}
	return s
}
