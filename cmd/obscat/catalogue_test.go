package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matsen/obscat/internal/catalogue"
	"github.com/matsen/obscat/internal/config"
	"github.com/matsen/obscat/internal/storage"
)

const testBib = `@article{smith2020,
  title = {Deep Learning for {DNA}},
  author = {Smith, Jane and Doe, John},
  journal = {Nature},
  year = {2020},
  url = {https://example.org/smith}
}

@inproceedings{bad2021,
  title = {Using \unknowncommand{x}},
  author = {Bad, Bob},
  booktitle = {Proc. Things},
  year = {2021}
}

@book{skipped,
  title = {A Book},
  year = {1999}
}
`

func runTestCatalogue(t *testing.T) (*catalogue.Report, string) {
	t.Helper()

	dir := t.TempDir()
	input := filepath.Join(dir, "library.bib")
	if err := os.WriteFile(input, []byte(testBib), 0644); err != nil {
		t.Fatal(err)
	}
	outputDir := filepath.Join(dir, "articles")

	report, err := catalogue.NewPipeline(catalogue.Options{OutputDir: outputDir}).Run(input)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return report, outputDir
}

func TestNewCatalogueResponse(t *testing.T) {
	report, outputDir := runTestCatalogue(t)

	resp := newCatalogueResponse(report)
	if resp.Entries != 3 || resp.Catalogued != 2 || resp.Excluded != 1 {
		t.Errorf("counts = %d/%d/%d, want 3/2/1", resp.Entries, resp.Catalogued, resp.Excluded)
	}
	if resp.OutputDir != outputDir {
		t.Errorf("OutputDir = %q, want %q", resp.OutputDir, outputDir)
	}
	if len(resp.Missing) != 2 {
		t.Errorf("Missing = %+v, want both entries", resp.Missing)
	}
	if len(resp.Failed) != 1 || resp.Failed[0].Key != "bad2021" {
		t.Errorf("Failed = %+v, want bad2021", resp.Failed)
	}
}

func TestRebuildIndex(t *testing.T) {
	report, outputDir := runTestCatalogue(t)

	dbPath, n, err := rebuildIndex(outputDir, report.Results)
	if err != nil {
		t.Fatalf("rebuildIndex() error = %v", err)
	}
	if dbPath != config.DBPath(outputDir) {
		t.Errorf("dbPath = %q", dbPath)
	}
	if n != 2 {
		t.Errorf("indexed %d articles, want 2", n)
	}

	snapshot, err := storage.ReadAll(config.ArticlesPath(outputDir))
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(snapshot) != 2 {
		t.Errorf("snapshot has %d articles, want 2", len(snapshot))
	}

	db, err := storage.OpenDB(dbPath)
	if err != nil {
		t.Fatalf("OpenDB() error = %v", err)
	}
	defer db.Close()

	found, err := db.Search("DNA", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(found) != 1 || found[0].Key != "smith2020" {
		t.Errorf("Search(DNA) = %+v", found)
	}

	// The data directory is hidden from the audit.
	statuses, err := catalogue.Audit(outputDir)
	if err != nil {
		t.Fatalf("Audit() error = %v", err)
	}
	if len(statuses) != 2 {
		t.Errorf("Audit() found %d folders, want 2", len(statuses))
	}
}
