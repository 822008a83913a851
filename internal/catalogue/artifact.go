package catalogue

import (
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"
)

// ArtifactKind identifies a file inside an entry folder.
type ArtifactKind int

const (
	ArtifactNote     ArtifactKind = iota // <sanitized title>.md
	ArtifactRedirect                     // <key>.html
	ArtifactRecord                       // <key>.bib
	ArtifactDocument                     // <key>.pdf
)

func (k ArtifactKind) String() string {
	switch k {
	case ArtifactNote:
		return "note"
	case ArtifactRedirect:
		return "redirect"
	case ArtifactRecord:
		return "record"
	case ArtifactDocument:
		return "document"
	default:
		return fmt.Sprintf("artifact(%d)", int(k))
	}
}

// Policy decides whether an artifact may be (re)written.
type Policy int

const (
	// AlwaysRegenerate rewrites the file whenever its content changes.
	AlwaysRegenerate Policy = iota
	// WriteOnceIfAbsent writes the file only when it does not exist yet,
	// so user edits survive re-runs.
	WriteOnceIfAbsent
	// UserSupplied files are never written, only detected.
	UserSupplied
)

func (p Policy) String() string {
	switch p {
	case AlwaysRegenerate:
		return "always-regenerate"
	case WriteOnceIfAbsent:
		return "write-once-if-absent"
	case UserSupplied:
		return "user-supplied"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

var artifactPolicies = map[ArtifactKind]Policy{
	ArtifactNote:     AlwaysRegenerate,
	ArtifactRedirect: WriteOnceIfAbsent,
	ArtifactRecord:   WriteOnceIfAbsent,
	ArtifactDocument: UserSupplied,
}

// PolicyFor returns the write policy of an artifact kind.
func PolicyFor(kind ArtifactKind) Policy {
	return artifactPolicies[kind]
}

// writeArtifact applies the policy of kind and reports whether path was written.
//
// The exists check and the write are not atomic; two concurrent runs against
// the same folder may both write a WriteOnceIfAbsent file.
func writeArtifact(kind ArtifactKind, path, content string) (bool, error) {
	switch PolicyFor(kind) {
	case WriteOnceIfAbsent:
		exists, err := fileExists(path)
		if err != nil {
			return false, err
		}
		if exists {
			return false, nil
		}

	case AlwaysRegenerate:
		existing, err := os.ReadFile(path)
		if err == nil && xxhash.Sum64(existing) == xxhash.Sum64String(content) {
			return false, nil
		}
		if err != nil && !os.IsNotExist(err) {
			return false, fmt.Errorf("reading %s %s: %w", kind, path, err)
		}

	case UserSupplied:
		return false, fmt.Errorf("%s artifacts are user-supplied and never written: %s", kind, path)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return false, fmt.Errorf("writing %s %s: %w", kind, path, err)
	}
	return true, nil
}

// fileExists reports whether path exists. Errors other than "not exist" are returned.
func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("checking %s: %w", path, err)
}
