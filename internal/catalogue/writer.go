package catalogue

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/matsen/obscat/internal/reference"
	"github.com/matsen/obscat/internal/sanitize"
)

// Writer creates and refreshes entry folders under an output directory.
type Writer struct {
	outputDir string
	fullPath  bool
	logger    *slog.Logger
}

// NewWriter creates a Writer. A nil logger discards log output.
func NewWriter(outputDir string, fullPath bool, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Writer{outputDir: outputDir, fullPath: fullPath, logger: logger}
}

// Folder returns the folder of an entry key.
func (w *Writer) Folder(key string) string {
	return filepath.Join(w.outputDir, key)
}

// Process ensures the folder of e exists and writes its artifacts according
// to their policies. A title that cannot be sanitized is reported in the
// result, and the remaining artifacts are still produced. A key that cannot
// name a folder is reported in the result and nothing is written. The
// returned error is reserved for filesystem failures.
func (w *Writer) Process(e reference.Entry) (Result, error) {
	res := Result{
		Entry: e,
		Title: DisplayTitle(e),
	}

	if err := CheckKey(e.Key); err != nil {
		res.Outcome = OutcomeUnsafeKey
		res.Err = err
		w.logger.Warn("skipping entry", "key", e.Key, "error", err)
		return res, nil
	}

	folder := w.Folder(e.Key)
	res.Folder = folder

	if err := os.MkdirAll(folder, 0755); err != nil {
		return res, fmt.Errorf("creating folder for %s: %w", e.Key, err)
	}

	if err := w.writeNote(e, &res); err != nil {
		return res, err
	}

	cleanURL := sanitize.URL(e.URL())
	if err := w.write(&res, ArtifactRedirect, RedirectFileName(e.Key), renderRedirect(cleanURL)); err != nil {
		return res, err
	}

	hasDocument, err := fileExists(filepath.Join(folder, DocumentFileName(e.Key)))
	if err != nil {
		return res, err
	}
	if !hasDocument {
		res.Missing = &MissingArtifact{Key: e.Key, URL: cleanURL, Folder: folder}
		if res.Outcome == OutcomeProcessed {
			res.Outcome = OutcomeMissingDocument
		}
	}

	if err := w.write(&res, ArtifactRecord, RecordFileName(e.Key), renderRecord(e)); err != nil {
		return res, err
	}

	w.logger.Debug("processed entry",
		"key", e.Key,
		"outcome", res.Outcome.String(),
		"written", len(res.Written),
	)
	return res, nil
}

func (w *Writer) writeNote(e reference.Entry, res *Result) error {
	name, err := NoteFileName(e)
	if err != nil {
		res.Outcome = OutcomeSanitizationFailed
		res.Err = fmt.Errorf("%w: entry %s: %w", ErrSanitization, e.Key, err)
		w.logger.Warn("skipping note", "key", e.Key, "error", err)
		return nil
	}

	content, err := renderNote(e, res.Folder, w.fullPath)
	if err != nil {
		return fmt.Errorf("rendering note for %s: %w", e.Key, err)
	}

	res.NoteFile = name
	return w.write(res, ArtifactNote, name, content)
}

func (w *Writer) write(res *Result, kind ArtifactKind, name, content string) error {
	path := filepath.Join(res.Folder, name)
	written, err := writeArtifact(kind, path, content)
	if err != nil {
		return err
	}
	if written {
		res.Written = append(res.Written, kind)
		w.logger.Debug("wrote artifact", "key", res.Entry.Key, "artifact", kind.String(), "path", path)
	}
	return nil
}
