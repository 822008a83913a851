// Package config handles the path cache and on-disk locations used by obscat.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// StateDirEnv overrides the directory holding the path cache.
	StateDirEnv = "OBSCAT_STATE_DIR"
	// StateConfigDir is the directory name under XDG_CONFIG_HOME.
	StateConfigDir = "obscat"
	// StateFile is the path cache file name.
	StateFile = "state.yml"

	// DataDir holds generated data inside the article folder.
	DataDir = ".obscat"
	// DBFile is the query index inside DataDir.
	DBFile = "catalogue.db"
	// ArticlesFile is the JSONL snapshot the query index is rebuilt from.
	ArticlesFile = "articles.jsonl"
)

// StatePath returns the path to the path cache file.
// Resolution order: $OBSCAT_STATE_DIR, $XDG_CONFIG_HOME/obscat, ~/.config/obscat.
func StatePath() string {
	if dir := os.Getenv(StateDirEnv); dir != "" {
		return filepath.Join(ExpandPath(dir), StateFile)
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, StateConfigDir, StateFile)
}

// StatePathIn returns the path cache file inside an explicit directory.
func StatePathIn(dir string) string {
	return filepath.Join(ExpandPath(dir), StateFile)
}

// DataPath returns the path to the .obscat directory of an article folder.
func DataPath(articleFolder string) string {
	return filepath.Join(articleFolder, DataDir)
}

// DBPath returns the path to the query index of an article folder.
func DBPath(articleFolder string) string {
	return filepath.Join(articleFolder, DataDir, DBFile)
}

// ArticlesPath returns the path to the article snapshot of an article folder.
func ArticlesPath(articleFolder string) string {
	return filepath.Join(articleFolder, DataDir, ArticlesFile)
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}

// ValidateBibFile checks that path names an existing regular file.
func ValidateBibFile(path string) error {
	info, err := os.Stat(ExpandPath(path))
	if err != nil {
		return fmt.Errorf("bibliography file does not exist: %s", path)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("bibliography path is not a file: %s", path)
	}
	return nil
}
