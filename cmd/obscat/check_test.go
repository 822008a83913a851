package main

import (
	"testing"

	"github.com/matsen/obscat/internal/catalogue"
)

func TestBuildCheckResult(t *testing.T) {
	complete := catalogue.FolderStatus{
		Key: "done", Folder: "/out/done", Notes: []string{"Done.md"},
		RedirectURL: "https://x.org", HasRedirect: true, HasRecord: true,
		HasDocument: true, HasCollage: true,
	}
	incomplete := catalogue.FolderStatus{
		Key: "todo", Folder: "/out/todo", Notes: []string{"Todo.md"},
		RedirectURL: "https://x.org", HasRedirect: true, HasRecord: true,
	}

	result := buildCheckResult([]catalogue.FolderStatus{complete, incomplete})
	if result.Status != "issues_found" {
		t.Errorf("Status = %q, want issues_found", result.Status)
	}
	if result.Folders != 2 {
		t.Errorf("Folders = %d, want 2", result.Folders)
	}
	if len(result.Issues) != 1 || result.Issues[0].Key != "todo" {
		t.Fatalf("Issues = %+v", result.Issues)
	}
	if got := result.Issues[0].Problems; len(got) != 1 || got[0] != "no pdf" {
		t.Errorf("Problems = %v, want [no pdf]", got)
	}

	clean := buildCheckResult([]catalogue.FolderStatus{complete})
	if clean.Status != "ok" || len(clean.Issues) != 0 {
		t.Errorf("buildCheckResult(complete) = %+v", clean)
	}
}
