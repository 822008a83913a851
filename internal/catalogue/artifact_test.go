package catalogue

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPolicyTable(t *testing.T) {
	tests := []struct {
		kind ArtifactKind
		want Policy
	}{
		{ArtifactNote, AlwaysRegenerate},
		{ArtifactRedirect, WriteOnceIfAbsent},
		{ArtifactRecord, WriteOnceIfAbsent},
		{ArtifactDocument, UserSupplied},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := PolicyFor(tt.kind); got != tt.want {
				t.Errorf("PolicyFor(%v) = %v, want %v", tt.kind, got, tt.want)
			}
		})
	}
}

func TestWriteArtifact_WriteOnceIfAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "k.bib")

	written, err := writeArtifact(ArtifactRecord, path, "first")
	if err != nil || !written {
		t.Fatalf("first write: written=%v err=%v", written, err)
	}

	written, err = writeArtifact(ArtifactRecord, path, "second")
	if err != nil {
		t.Fatalf("second write: %v", err)
	}
	if written {
		t.Error("second write should be skipped")
	}
	if got, _ := os.ReadFile(path); string(got) != "first" {
		t.Errorf("content = %q, want first", got)
	}
}

func TestWriteArtifact_AlwaysRegenerate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.md")

	if written, err := writeArtifact(ArtifactNote, path, "v1"); err != nil || !written {
		t.Fatalf("first write: written=%v err=%v", written, err)
	}
	if written, err := writeArtifact(ArtifactNote, path, "v1"); err != nil || written {
		t.Errorf("unchanged content: written=%v err=%v, want skipped", written, err)
	}
	if written, err := writeArtifact(ArtifactNote, path, "v2"); err != nil || !written {
		t.Errorf("changed content: written=%v err=%v, want written", written, err)
	}
	if got, _ := os.ReadFile(path); string(got) != "v2" {
		t.Errorf("content = %q, want v2", got)
	}
}

func TestWriteArtifact_UserSupplied(t *testing.T) {
	path := filepath.Join(t.TempDir(), "k.pdf")
	if _, err := writeArtifact(ArtifactDocument, path, "fake"); err == nil {
		t.Error("writing a user-supplied artifact should fail")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("user-supplied artifact must not be created")
	}
}
