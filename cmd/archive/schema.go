package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(schemaCmd)
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Show the field schema",
	Long: `Show the basic and custom fields of the archive.

Example:
  archive schema --human`,
	Args: cobra.NoArgs,
	RunE: runSchema,
}

func runSchema(cmd *cobra.Command, args []string) error {
	db := mustOpenArchive()
	schema := db.Schema()

	if !humanOutput {
		return outputJSON(schema)
	}

	fmt.Println("Basic fields:")
	for name, desc := range schema.BasicFields.All() {
		fmt.Printf("- %s: %s\n", name, desc)
	}
	fmt.Println("Custom fields:")
	if schema.CustomFields.Len() == 0 {
		fmt.Println("- (none)")
	}
	for name, desc := range schema.CustomFields.All() {
		fmt.Printf("- %s: %s\n", name, desc)
	}
	return nil
}
