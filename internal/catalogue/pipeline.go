package catalogue

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/matsen/obscat/internal/bibtex"
	"github.com/matsen/obscat/internal/config"
	"github.com/matsen/obscat/internal/reference"
)

// Stage is a step of a catalogue run.
type Stage int

const (
	StageLoad Stage = iota
	StageClassify
	StageProcessEach
	StageSummarize
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageLoad:
		return "load"
	case StageClassify:
		return "classify"
	case StageProcessEach:
		return "process"
	case StageSummarize:
		return "summarize"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}

// Options configures a catalogue run.
type Options struct {
	OutputDir string
	FullPath  bool // qualify links with the entry folder
	// Strict aborts the run on the first unsafe key or title that cannot be
	// sanitized. By default such entries are skipped and reported.
	Strict bool
	Logger *slog.Logger
}

// Report summarizes a catalogue run.
type Report struct {
	Input       string
	OutputDir   string
	Total       int      // entries in the bibliography
	Results     []Result // catalogued entries in database order
	IndexPath   string
	MissingPath string
}

// Excluded returns the number of entries dropped by the classifier.
func (r *Report) Excluded() int {
	return r.Total - len(r.Results)
}

// Missing returns the missing-document records in processing order.
func (r *Report) Missing() []MissingArtifact {
	return MissingArtifacts(r.Results)
}

// Failed returns the entries skipped for an unsafe key or an unsanitizable title.
func (r *Report) Failed() []Result {
	return Failed(r.Results)
}

// Pipeline runs Load, Classify, ProcessEach and Summarize in sequence.
type Pipeline struct {
	opts   Options
	writer *Writer
	logger *slog.Logger
}

// NewPipeline creates a pipeline for the given options.
func NewPipeline(opts Options) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Pipeline{
		opts:   opts,
		writer: NewWriter(opts.OutputDir, opts.FullPath, logger),
		logger: logger,
	}
}

// Run loads the bibliography at input and builds the catalogue.
func (p *Pipeline) Run(input string) (*Report, error) {
	p.enter(StageLoad)
	input = config.ExpandPath(input)
	if err := config.ValidateBibFile(input); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInputNotFound, err)
	}

	db, err := bibtex.ParseFile(input)
	if err != nil {
		return nil, err
	}

	report, err := p.RunDatabase(db)
	if report != nil {
		report.Input = input
	}
	return report, err
}

// RunDatabase builds the catalogue from an already parsed database.
func (p *Pipeline) RunDatabase(db *reference.Database) (*Report, error) {
	if err := os.MkdirAll(p.opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	p.enter(StageClassify)
	entries := Classify(db.Entries)

	report := &Report{
		OutputDir: p.opts.OutputDir,
		Total:     len(db.Entries),
		Results:   make([]Result, 0, len(entries)),
	}

	p.enter(StageProcessEach)
	for _, e := range entries {
		res, err := p.writer.Process(e)
		if err != nil {
			return nil, err
		}
		if res.Err != nil && p.opts.Strict {
			return nil, res.Err
		}
		report.Results = append(report.Results, res)
	}

	p.enter(StageSummarize)
	missingPath, err := WriteMissingReport(p.opts.OutputDir, report.Missing())
	if err != nil {
		return nil, err
	}
	indexPath, err := WriteIndex(p.opts.OutputDir, report.Results, p.opts.FullPath)
	if err != nil {
		return nil, err
	}
	report.MissingPath = missingPath
	report.IndexPath = indexPath

	p.enter(StageDone)
	p.logger.Info("catalogue complete",
		"entries", report.Total,
		"catalogued", len(report.Results),
		"missing", len(report.Missing()),
		"failed", len(report.Failed()),
	)
	return report, nil
}

func (p *Pipeline) enter(s Stage) {
	p.logger.Debug("stage", "stage", s.String())
}
