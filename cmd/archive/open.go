package main

import (
	"fmt"

	"github.com/matsen/archive/internal/archive"
	"github.com/matsen/archive/internal/config"
	"github.com/matsen/archive/internal/pdf"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(openCmd)
}

var openCmd = &cobra.Command{
	Use:   "open <index>",
	Short: "Open a file-mode record in the configured viewer",
	Long: `Open the file that a file-mode record points at.

The viewer is chosen with 'archive config pdf-reader <reader>'.

Example:
  archive open M1`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

func runOpen(cmd *cobra.Command, args []string) error {
	db := mustOpenArchive()

	rec, ok := db.FindByIndex(args[0])
	if !ok {
		exitWithError(ExitError, "Not found: %s", args[0])
	}
	if rec.ContentMode != archive.ContentFile {
		exitWithError(ExitError, "record %s holds text content, not a file", rec.Index)
	}

	path := config.ExpandPath(rec.Content)
	if err := pdf.NewOpener(config.GetPDFReader()).Open(path); err != nil {
		exitWithError(ExitError, "opening %s: %v", path, err)
	}

	if humanOutput {
		fmt.Printf("Opened %s\n", path)
		return nil
	}
	return outputJSON(StatusResponse{Status: "opened", Path: path})
}
