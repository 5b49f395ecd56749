package main

import (
	"fmt"

	"github.com/matsen/archive/internal/archive"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all records",
	Long: `List all records in the order they were added.

Example:
  archive list --human`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db := mustOpenArchive()
	records := db.ListRecords()

	if !humanOutput {
		return outputJSON(records)
	}

	if len(records) == 0 {
		fmt.Println("No records yet.")
		return nil
	}
	printRecordTable(records)
	return nil
}

// printRecordTable prints one aligned line per record.
func printRecordTable(records []archive.Record) {
	indexWidth := len("INDEX")
	for _, rec := range records {
		indexWidth = max(indexWidth, len([]rune(rec.Index)))
	}

	fmt.Printf("%s  %s  %s  %s\n",
		padRight("#", 4), padRight("INDEX", indexWidth), padRight("MODE", 4), "TITLE")
	for i, rec := range records {
		fmt.Printf("%s  %s  %s  %s\n",
			padRight(fmt.Sprintf("%d", i+1), 4),
			padRight(rec.Index, indexWidth),
			padRight(string(rec.ContentMode), 4),
			truncateString(rec.Title, ListTitleMaxLen))
	}
}
