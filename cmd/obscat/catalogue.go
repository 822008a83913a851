package main

import (
	"fmt"
	"os"

	"github.com/matsen/obscat/internal/catalogue"
	"github.com/matsen/obscat/internal/config"
	"github.com/matsen/obscat/internal/storage"
	"github.com/spf13/cobra"
)

var (
	catalogueInput    string
	catalogueOutput   string
	catalogueFullPath bool
	catalogueStrict   bool
	catalogueNoDB     bool
)

func init() {
	catalogueCmd.Flags().StringVarP(&catalogueInput, "input", "i", "", "BibTeX file (default: cached bib_file_path)")
	catalogueCmd.Flags().StringVarP(&catalogueOutput, "output", "o", "", "Article folder (default: cached article_folder_path)")
	catalogueCmd.Flags().BoolVar(&catalogueFullPath, "full-path", false, "Link notes and embeds by their path inside the article folder")
	catalogueCmd.Flags().BoolVar(&catalogueStrict, "strict", false, "Abort on the first title with unsupported markup")
	catalogueCmd.Flags().BoolVar(&catalogueNoDB, "no-db", false, "Skip rebuilding the search index")
	rootCmd.AddCommand(catalogueCmd)
}

var catalogueCmd = &cobra.Command{
	Use:   "catalogue",
	Short: "Build or refresh the article catalogue",
	Long: `Build or refresh the article catalogue from a BibTeX file.

Every @article and @inproceedings entry gets a folder named after its key
holding a note, a redirect stub and a BibTeX record. Notes are regenerated
on every run; stubs and records are only written when absent, so edits to
them survive. Entries whose PDF is not in their folder are listed in
"Missing articles.md".

Examples:
  obscat catalogue -i library.bib -o ~/vault/articles
  obscat catalogue --full-path
  obscat catalogue --strict --no-db`,
	Args: cobra.NoArgs,
	RunE: runCatalogue,
}

// CatalogueResponse is the response for the catalogue command.
type CatalogueResponse struct {
	Input         string                      `json:"input"`
	OutputDir     string                      `json:"output_dir"`
	Entries       int                         `json:"entries"`
	Catalogued    int                         `json:"catalogued"`
	Excluded      int                         `json:"excluded"`
	Index         string                      `json:"index"`
	MissingReport string                      `json:"missing_report"`
	Missing       []catalogue.MissingArtifact `json:"missing"`
	Failed        []FailedEntry               `json:"failed"`
	Database      string                      `json:"database,omitempty"`
	Indexed       int                         `json:"indexed,omitempty"`
}

// FailedEntry is an entry whose note could not be generated.
type FailedEntry struct {
	Key   string `json:"key"`
	Error string `json:"error"`
}

func runCatalogue(cmd *cobra.Command, args []string) error {
	input, outputDir := resolvePaths(catalogueInput, catalogueOutput, true, true)

	pipeline := catalogue.NewPipeline(catalogue.Options{
		OutputDir: outputDir,
		FullPath:  catalogueFullPath,
		Strict:    catalogueStrict,
		Logger:    logger,
	})
	report, err := pipeline.Run(input)
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}

	resp := newCatalogueResponse(report)

	if !catalogueNoDB {
		dbPath, n, err := rebuildIndex(outputDir, report.Results)
		if err != nil {
			exitWithError(ExitError, "rebuilding search index: %v", err)
		}
		resp.Database = dbPath
		resp.Indexed = n
	}

	if humanOutput {
		printCatalogueHuman(resp)
	} else {
		outputJSON(resp)
	}
	return nil
}

func newCatalogueResponse(report *catalogue.Report) CatalogueResponse {
	resp := CatalogueResponse{
		Input:         report.Input,
		OutputDir:     report.OutputDir,
		Entries:       report.Total,
		Catalogued:    len(report.Results),
		Excluded:      report.Excluded(),
		Index:         report.IndexPath,
		MissingReport: report.MissingPath,
		Missing:       report.Missing(),
		Failed:        []FailedEntry{},
	}
	if resp.Missing == nil {
		resp.Missing = []catalogue.MissingArtifact{}
	}
	for _, r := range report.Failed() {
		resp.Failed = append(resp.Failed, FailedEntry{Key: r.Entry.Key, Error: r.Err.Error()})
	}
	return resp
}

// rebuildIndex writes the article snapshot and rebuilds the SQLite index from it.
func rebuildIndex(outputDir string, results []catalogue.Result) (string, int, error) {
	if err := os.MkdirAll(config.DataPath(outputDir), 0755); err != nil {
		return "", 0, fmt.Errorf("creating data directory: %w", err)
	}

	snapshot := config.ArticlesPath(outputDir)
	if err := storage.WriteAll(snapshot, storage.FromResults(results)); err != nil {
		return "", 0, err
	}

	dbPath := config.DBPath(outputDir)
	db, err := storage.OpenDB(dbPath)
	if err != nil {
		return "", 0, err
	}
	defer db.Close()

	n, err := db.RebuildFromJSONL(snapshot)
	if err != nil {
		return "", 0, err
	}
	logger.Debug("rebuilt search index", "path", dbPath, "articles", n)
	return dbPath, n, nil
}

func printCatalogueHuman(resp CatalogueResponse) {
	outputHuman("Catalogued %d of %d entries into %s\n", resp.Catalogued, resp.Entries, resp.OutputDir)
	if resp.Excluded > 0 {
		outputHuman("  %d entries skipped (not articles or conference papers)\n", resp.Excluded)
	}
	outputHuman("  Index: %s\n", resp.Index)
	if len(resp.Missing) > 0 {
		outputHuman("  %d articles without a PDF (see %s)\n", len(resp.Missing), resp.MissingReport)
	}
	if resp.Database != "" {
		outputHuman("  Search index: %d articles\n", resp.Indexed)
	}
	if len(resp.Failed) > 0 {
		outputHuman("\nEntries without a note:\n")
		for _, f := range resp.Failed {
			outputHuman("  %s: %s\n", f.Key, f.Error)
		}
	}
}
