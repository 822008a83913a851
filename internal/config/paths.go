package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Paths is the path cache stored in state.yml. Empty fields are unset.
type Paths struct {
	BibFilePath       string `yaml:"bib_file_path"`
	ArticleFolderPath string `yaml:"article_folder_path"`
}

// IsZero reports whether neither path is set.
func (p Paths) IsZero() bool {
	return p.BibFilePath == "" && p.ArticleFolderPath == ""
}

// LoadPaths reads the path cache at path.
// A missing file is not an error: it yields empty Paths.
func LoadPaths(path string) (Paths, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Paths{}, nil
		}
		return Paths{}, fmt.Errorf("reading state file: %w", err)
	}

	var p Paths
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Paths{}, fmt.Errorf("parsing state file %s: %w", path, err)
	}

	p.BibFilePath = ExpandPath(p.BibFilePath)
	p.ArticleFolderPath = ExpandPath(p.ArticleFolderPath)
	return p, nil
}

// SavePaths merges the non-empty fields of update into the cache at path and
// writes it back. Fields left empty in update keep their stored value.
// Returns the merged result.
func SavePaths(path string, update Paths) (Paths, error) {
	merged, err := LoadPaths(path)
	if err != nil {
		return Paths{}, err
	}

	if update.BibFilePath != "" {
		merged.BibFilePath = ExpandPath(update.BibFilePath)
	}
	if update.ArticleFolderPath != "" {
		merged.ArticleFolderPath = ExpandPath(update.ArticleFolderPath)
	}

	data, err := yaml.Marshal(merged)
	if err != nil {
		return Paths{}, fmt.Errorf("encoding state file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return Paths{}, fmt.Errorf("creating state directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return Paths{}, fmt.Errorf("writing state file: %w", err)
	}

	return merged, nil
}

// Resolve fills empty flag values from the cache.
func (p Paths) Resolve(bibFlag, folderFlag string) (bib, folder string) {
	bib, folder = bibFlag, folderFlag
	if bib == "" {
		bib = p.BibFilePath
	}
	if folder == "" {
		folder = p.ArticleFolderPath
	}
	return ExpandPath(bib), ExpandPath(folder)
}
