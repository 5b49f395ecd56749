package main

import (
	"errors"
	"fmt"

	"github.com/matsen/archive/internal/archive"
	"github.com/spf13/cobra"
)

// ImportResult is the response for the import command.
type ImportResult struct {
	Imported int `json:"imported"`
	Total    int `json:"total"`
}

func init() {
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <file.jsonl>",
	Short: "Append records from a JSONL file",
	Long: `Append records from a JSONL file, one record per line.

Every record is checked before anything is written, so one bad line leaves
the archive unchanged. Records without created_at are stamped with the
current time.

Example:
  archive import records.jsonl`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	records, err := archive.ReadRecordsJSONL(args[0])
	if err != nil {
		exitWithError(ExitDataError, "reading %s: %v", args[0], err)
	}

	db := mustOpenArchive()
	n, err := db.Import(records)
	if err != nil {
		if errors.Is(err, archive.ErrInvalidContentMode) {
			exitWithError(ExitDataError, "%v", err)
		}
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		if n == 1 {
			fmt.Println("Imported 1 record")
		} else {
			fmt.Printf("Imported %d records\n", n)
		}
		return nil
	}
	return outputJSON(ImportResult{Imported: n, Total: db.Len()})
}
