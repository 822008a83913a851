package catalogue

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// RenderMissingReport renders one line per missing document, in processing order.
func RenderMissingReport(missing []MissingArtifact) string {
	var b strings.Builder
	b.WriteString("# Missing articles\n")
	for _, m := range missing {
		fmt.Fprintf(&b, "- [%s](%s) | [Folder](%s)\n",
			m.Key, linkTarget(m.URL), linkTarget(filepath.ToSlash(m.Folder)))
	}
	return b.String()
}

// WriteMissingReport writes "Missing articles.md" and returns its path.
func WriteMissingReport(outputDir string, missing []MissingArtifact) (string, error) {
	path := filepath.Join(outputDir, MissingFile)
	if err := os.WriteFile(path, []byte(RenderMissingReport(missing)), 0644); err != nil {
		return "", fmt.Errorf("writing missing articles report: %w", err)
	}
	return path, nil
}
