package main

import (
	"github.com/matsen/obscat/internal/config"
)

// resolvePaths fills the bibliography and article folder from the path cache
// where the flags leave them empty, exiting with a config error when a needed
// path stays unknown.
func resolvePaths(bibFlag, folderFlag string, needBib, needFolder bool) (bib, folder string) {
	statePath := config.StatePath()
	cached, err := config.LoadPaths(statePath)
	if err != nil {
		exitWithError(ExitConfigError, "loading path cache: %v", err)
	}

	bib, folder = cached.Resolve(bibFlag, folderFlag)
	logger.Debug("resolved paths", "state", statePath, "bib", bib, "folder", folder)

	if needBib && bib == "" {
		exitWithError(ExitConfigError, "no bibliography given: pass -i or run 'obscat state -b <file>'")
	}
	if needFolder && folder == "" {
		exitWithError(ExitConfigError, "no article folder given: pass -o or run 'obscat state -a <dir>'")
	}
	return bib, folder
}
