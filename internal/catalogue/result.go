package catalogue

import "github.com/matsen/obscat/internal/reference"

// Outcome classifies how an entry was processed.
type Outcome int

const (
	// OutcomeProcessed means every artifact is in place.
	OutcomeProcessed Outcome = iota
	// OutcomeMissingDocument means the folder lacks the entry's PDF.
	OutcomeMissingDocument
	// OutcomeSanitizationFailed means no note could be written because the
	// title contains unsupported markup. It takes precedence over
	// OutcomeMissingDocument.
	OutcomeSanitizationFailed
	// OutcomeUnsafeKey means the key cannot name a folder, so nothing was
	// written for the entry.
	OutcomeUnsafeKey
)

func (o Outcome) String() string {
	switch o {
	case OutcomeProcessed:
		return "processed"
	case OutcomeMissingDocument:
		return "missing_document"
	case OutcomeSanitizationFailed:
		return "sanitization_failed"
	case OutcomeUnsafeKey:
		return "unsafe_key"
	default:
		return "unknown"
	}
}

// MissingArtifact records an entry whose primary document is absent.
type MissingArtifact struct {
	Key    string `json:"key"`
	URL    string `json:"url"` // sanitized source URL
	Folder string `json:"folder"`
}

// Result is the outcome of processing one entry.
type Result struct {
	Entry    reference.Entry
	Folder   string // empty with OutcomeUnsafeKey
	Title    string // display title, braces stripped
	NoteFile string // empty when the title could not be sanitized
	Outcome  Outcome
	Missing  *MissingArtifact
	Written  []ArtifactKind // artifacts written during this run
	Err      error          // set with OutcomeSanitizationFailed and OutcomeUnsafeKey
}

// HasNote reports whether a note was rendered for the entry.
func (r Result) HasNote() bool {
	return r.NoteFile != ""
}

// MissingArtifacts collects the missing-document records in processing order.
func MissingArtifacts(results []Result) []MissingArtifact {
	var out []MissingArtifact
	for _, r := range results {
		if r.Missing != nil {
			out = append(out, *r.Missing)
		}
	}
	return out
}

// Failed returns the results whose note could not be generated.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Outcome == OutcomeSanitizationFailed || r.Outcome == OutcomeUnsafeKey {
			out = append(out, r)
		}
	}
	return out
}
