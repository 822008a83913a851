package catalogue

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FolderStatus describes the artifacts found in one entry folder.
type FolderStatus struct {
	Key          string   `json:"key"`
	Folder       string   `json:"folder"`
	Notes        []string `json:"notes"`
	RedirectURL  string   `json:"redirect_url,omitempty"`
	HasRedirect  bool     `json:"has_redirect"`
	HasRecord    bool     `json:"has_record"`
	HasDocument  bool     `json:"has_document"`
	HasNotesFile bool     `json:"has_notes_file"`
	HasCollage   bool     `json:"has_collage"`
	HasFrontpage bool     `json:"has_frontpage"`
}

// Problems lists what is missing or inconsistent in the folder.
// Absent notes files and images are not problems: they are optional.
func (s FolderStatus) Problems() []string {
	var problems []string
	switch len(s.Notes) {
	case 0:
		problems = append(problems, "no note")
	case 1:
	default:
		problems = append(problems, fmt.Sprintf("%d notes (stale note after a title change?)", len(s.Notes)))
	}
	if !s.HasRedirect {
		problems = append(problems, "no redirect stub")
	} else if s.RedirectURL == "" {
		problems = append(problems, "redirect stub has no link")
	}
	if !s.HasRecord {
		problems = append(problems, "no bibliographic record")
	}
	if !s.HasDocument {
		problems = append(problems, "no pdf")
	} else if !s.HasCollage {
		problems = append(problems, "pdf not rendered")
	}
	return problems
}

// Audit inspects every entry folder under outputDir. Hidden directories are skipped.
func Audit(outputDir string) ([]FolderStatus, error) {
	dirEntries, err := os.ReadDir(outputDir)
	if err != nil {
		return nil, fmt.Errorf("reading output directory: %w", err)
	}

	var statuses []FolderStatus
	for _, de := range dirEntries {
		if !de.IsDir() || strings.HasPrefix(de.Name(), ".") {
			continue
		}
		status, err := auditFolder(filepath.Join(outputDir, de.Name()), de.Name())
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func auditFolder(folder, key string) (FolderStatus, error) {
	status := FolderStatus{Key: key, Folder: folder}

	files, err := os.ReadDir(folder)
	if err != nil {
		return status, fmt.Errorf("reading folder %s: %w", key, err)
	}

	present := make(map[string]bool, len(files))
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		name := f.Name()
		present[name] = true
		if strings.HasSuffix(name, ".md") && name != NotesFileName(key) {
			status.Notes = append(status.Notes, name)
		}
	}

	status.HasRedirect = present[RedirectFileName(key)]
	status.HasRecord = present[RecordFileName(key)]
	status.HasDocument = present[DocumentFileName(key)]
	status.HasNotesFile = present[NotesFileName(key)]
	status.HasCollage = present[CollageFileName(key)]
	status.HasFrontpage = present[FrontpageFileName(key)]

	if status.HasRedirect {
		href, err := ReadRedirect(filepath.Join(folder, RedirectFileName(key)))
		if err != nil {
			return status, err
		}
		status.RedirectURL = href
	}
	return status, nil
}

// ReadRedirect returns the link target of a redirect stub, or "" if it has none.
func ReadRedirect(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening redirect stub: %w", err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return "", fmt.Errorf("parsing redirect stub %s: %w", path, err)
	}

	href, _ := doc.Find("a[href]").First().Attr("href")
	return href, nil
}
