package main

import (
	"fmt"
	"strings"

	"github.com/matsen/obscat/internal/bibtex"
	"github.com/matsen/obscat/internal/config"
	"github.com/matsen/obscat/internal/export"
	"github.com/matsen/obscat/internal/reference"
	"github.com/spf13/cobra"
)

var (
	exportInput string
	exportKeys  []string
)

func init() {
	exportCmd.Flags().StringVarP(&exportInput, "input", "i", "", "BibTeX bibliography (default: cached bib_file_path)")
	exportCmd.Flags().StringSliceVar(&exportKeys, "keys", nil, "Comma-separated citation keys to export (default: all)")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print bibliography entries as BibTeX",
	Long: `Print bibliography entries as BibTeX.

Entries are re-serialized from the parsed bibliography with @string macros
expanded, preceded by the file's @preamble blocks. Output is always BibTeX.

Examples:
  obscat export --keys smith2020,doe2021
  obscat export -i refs.bib > clean.bib`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	input, _ := resolvePaths(exportInput, "", true, false)
	input = config.ExpandPath(input)
	if err := config.ValidateBibFile(input); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	db, err := bibtex.ParseFile(input)
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}

	out, err := exportBibTeX(db, exportKeys)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	fmt.Print(out)
	return nil
}

// exportBibTeX renders the preambles of db followed by the entries named by
// keys, in the order given. Without keys every entry is exported.
func exportBibTeX(db *reference.Database, keys []string) (string, error) {
	entries := db.Entries
	if len(keys) > 0 {
		entries = make([]reference.Entry, 0, len(keys))
		for _, key := range keys {
			e, ok := db.Lookup(strings.TrimSpace(key))
			if !ok {
				return "", fmt.Errorf("unknown key: %s", key)
			}
			entries = append(entries, e)
		}
	}

	var b strings.Builder
	for _, p := range db.Preambles {
		b.WriteString(export.ToPreamble(p))
	}
	if b.Len() > 0 && len(entries) > 0 {
		b.WriteString("\n")
	}
	b.WriteString(export.ToBibTeXList(entries))
	return b.String(), nil
}
