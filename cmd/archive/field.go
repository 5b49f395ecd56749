package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/matsen/archive/internal/archive"
	"github.com/spf13/cobra"
)

// FieldAddResult is the response for the field add command.
type FieldAddResult struct {
	Status      string `json:"status"` // "added" or "updated"
	Name        string `json:"name"`
	Description string `json:"description"`
}

func init() {
	rootCmd.AddCommand(fieldCmd)
	fieldCmd.AddCommand(fieldAddCmd)
}

var fieldCmd = &cobra.Command{
	Use:   "field",
	Short: "Manage custom fields",
}

var fieldAddCmd = &cobra.Command{
	Use:   "add <name> [description]",
	Short: "Declare a custom field",
	Long: `Declare a custom field. Declaring an existing name replaces its description.

Example:
  archive field add department "Owning department"`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runFieldAdd,
}

func runFieldAdd(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(args[0])
	description := ""
	if len(args) == 2 {
		description = strings.TrimSpace(args[1])
	}

	db := mustOpenArchive()
	_, existed := db.Schema().CustomFields.Get(name)

	if err := db.AddCustomField(name, description); err != nil {
		if errors.Is(err, archive.ErrEmptyFieldName) {
			exitWithError(ExitDataError, "%v", err)
		}
		exitWithError(ExitError, "%v", err)
	}

	result := FieldAddResult{Status: "added", Name: name, Description: description}
	if existed {
		result.Status = "updated"
	}

	if humanOutput {
		fmt.Printf("Custom field '%s' saved.\n", name)
		return nil
	}
	return outputJSON(result)
}
