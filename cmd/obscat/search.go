package main

import (
	"os"

	"github.com/matsen/obscat/internal/config"
	"github.com/matsen/obscat/internal/storage"
	"github.com/spf13/cobra"
)

var (
	searchOutput  string
	searchLimit   int
	searchMissing bool
	searchAuthors []string
)

func init() {
	searchCmd.Flags().StringVarP(&searchOutput, "output", "o", "", "Article folder (default: cached article_folder_path)")
	searchCmd.Flags().IntVar(&searchLimit, "limit", DefaultSearchLimit, "Maximum results to return")
	searchCmd.Flags().BoolVar(&searchMissing, "missing", false, "Only articles without a PDF")
	searchCmd.Flags().StringArrayVarP(&searchAuthors, "author", "a", nil, "Author name: \"Last\", \"First Last\" or \"Last, First\" (repeatable, AND logic)")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the catalogue by keyword",
	Long: `Search the catalogue by keyword.

Matches titles, authors, journals and years using the index built by the
last 'obscat catalogue' run. Author filters match whole last names, so
"Yu" does not match "Yujia"; a first name matches as a prefix.

Examples:
  obscat search "phylogenetics"
  obscat search "Smith 2020"
  obscat search -a "Tim Yu" -a Bloom
  obscat search --missing`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && len(searchAuthors) == 0 && !searchMissing {
		exitWithError(ExitError, "search needs a query, --author or --missing")
	}

	_, outputDir := resolvePaths("", searchOutput, false, true)
	dbPath := config.DBPath(outputDir)
	if _, err := os.Stat(dbPath); err != nil {
		exitWithError(ExitConfigError, "no search index at %s: run 'obscat catalogue' first", dbPath)
	}

	db, err := storage.OpenDB(dbPath)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	defer db.Close()

	var query string
	if len(args) == 1 {
		query = args[0]
	}

	var articles []storage.Article
	switch {
	case len(searchAuthors) == 0 && !searchMissing:
		articles, err = db.Search(query, searchLimit)
	case query == "" && len(searchAuthors) == 0:
		articles, err = db.Missing()
	default:
		articles, err = db.SearchWithFilters(storage.SearchFilters{
			Keyword:     query,
			Authors:     searchAuthors,
			MissingOnly: searchMissing,
		}, searchLimit)
	}
	if err != nil {
		exitWithError(ExitError, "searching: %v", err)
	}

	// Empty result is not an error
	if articles == nil {
		articles = []storage.Article{}
	}

	if humanOutput {
		if len(articles) == 0 {
			outputHuman("No articles found\n")
		} else {
			outputHuman("Found %d articles:\n\n", len(articles))
			for i, a := range articles {
				printArticleSummary(i+1, a)
			}
		}
	} else {
		outputJSON(articles)
	}
	return nil
}

func printArticleSummary(num int, a storage.Article) {
	outputHuman("[%d] %s\n", num, a.Key)
	outputHuman("    %s\n", truncateString(a.Title, SummaryTitleLen))
	outputHuman("    %s\n", a.FirstAuthor)
	outputHuman("    %s (%s)\n", a.Journal, a.Year)
	if !a.HasDocument {
		outputHuman("    no pdf\n")
	}
	outputHuman("\n")
}
