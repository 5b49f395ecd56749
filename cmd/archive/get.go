package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <index>",
	Short: "Find a record by Index",
	Long: `Find the first record whose Index matches exactly (case-sensitive).

Example:
  archive get A01`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	db := mustOpenArchive()

	rec, ok := db.FindByIndex(args[0])
	if !ok {
		exitWithError(ExitError, "Not found: %s", args[0])
	}

	if humanOutput {
		printRecordHuman(rec)
		return nil
	}
	return outputJSON(rec)
}
