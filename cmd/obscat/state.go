package main

import (
	"github.com/matsen/obscat/internal/config"
	"github.com/spf13/cobra"
)

var (
	stateBib     string
	stateFolder  string
	stateDirFlag string
)

func init() {
	stateCmd.Flags().StringVarP(&stateBib, "bib", "b", "", "BibTeX file to remember")
	stateCmd.Flags().StringVarP(&stateFolder, "articles", "a", "", "Article folder to remember")
	stateCmd.Flags().StringVar(&stateDirFlag, "state-dir", "", "Directory holding state.yml (default: $OBSCAT_STATE_DIR or ~/.config/obscat)")
	rootCmd.AddCommand(stateCmd)
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show or update the cached bibliography and article folder",
	Long: `Show or update the cached bibliography and article folder.

The cached paths are the defaults of 'obscat catalogue'. Only the paths
given are replaced; without flags the current cache is printed.

Examples:
  obscat state
  obscat state -b ~/library.bib -a ~/vault/articles`,
	Args: cobra.NoArgs,
	RunE: runState,
}

// StateResponse is the response for the state command.
type StateResponse struct {
	Path              string `json:"path"`
	Updated           bool   `json:"updated"`
	BibFilePath       string `json:"bib_file_path"`
	ArticleFolderPath string `json:"article_folder_path"`
}

func runState(cmd *cobra.Command, args []string) error {
	statePath := config.StatePath()
	if stateDirFlag != "" {
		statePath = config.StatePathIn(stateDirFlag)
	}
	if statePath == "" {
		exitWithError(ExitConfigError, "cannot locate the state file: set %s or pass --state-dir", config.StateDirEnv)
	}

	update := config.Paths{BibFilePath: stateBib, ArticleFolderPath: stateFolder}

	var paths config.Paths
	var err error
	if update.IsZero() {
		paths, err = config.LoadPaths(statePath)
	} else {
		paths, err = config.SavePaths(statePath, update)
	}
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	logger.Debug("state", "path", statePath, "updated", !update.IsZero())

	resp := StateResponse{
		Path:              statePath,
		Updated:           !update.IsZero(),
		BibFilePath:       paths.BibFilePath,
		ArticleFolderPath: paths.ArticleFolderPath,
	}

	if humanOutput {
		if resp.Updated {
			outputHuman("Updated %s\n", resp.Path)
		} else {
			outputHuman("State file: %s\n", resp.Path)
		}
		outputHuman("  bib_file_path:       %s\n", orUnset(resp.BibFilePath))
		outputHuman("  article_folder_path: %s\n", orUnset(resp.ArticleFolderPath))
	} else {
		outputJSON(resp)
	}
	return nil
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
