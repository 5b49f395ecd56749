package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/matsen/archive/internal/archive"
	"github.com/spf13/cobra"
)

var (
	addIndex   string
	addTitle   string
	addTime    string
	addAuthor  string
	addMode    string
	addContent string
	addFields  []string
)

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVar(&addIndex, "index", "", "Archival index code")
	addCmd.Flags().StringVar(&addTitle, "title", "", "Document title")
	addCmd.Flags().StringVar(&addTime, "time", "", "Published time")
	addCmd.Flags().StringVar(&addAuthor, "author", "", "Author or publication name")
	addCmd.Flags().StringVar(&addMode, "mode", string(archive.ContentText), "Content mode: text or file")
	addCmd.Flags().StringVar(&addContent, "content", "", "Literal text, or a file path with --mode file")
	addCmd.Flags().StringArrayVarP(&addFields, "field", "f", nil, "Custom field value as name=value (repeatable)")
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an archive record",
	Long: `Add an archive record without the interactive menu.

Custom field values are stored as given; they are not checked against the
schema.

Examples:
  archive add --index A01 --title "Harbour minutes" --time 1921 \
    --author "Harbour Commission" --content "dredging schedule" -f box=12
  archive add --index M1 --title "Basin map" --mode file --content ~/scans/basin.pdf`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	mode, err := archive.ParseContentMode(addMode)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	custom, err := parseFieldValues(addFields)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	rec := archive.Record{
		Index:             strings.TrimSpace(addIndex),
		Title:             strings.TrimSpace(addTitle),
		Time:              strings.TrimSpace(addTime),
		AuthorOrPublisher: strings.TrimSpace(addAuthor),
		ContentMode:       mode,
		Content:           strings.TrimSpace(addContent),
		CustomFields:      custom,
	}

	db := mustOpenArchive()
	stored, err := db.AddRecord(rec)
	if err != nil {
		if errors.Is(err, archive.ErrInvalidContentMode) {
			exitWithError(ExitDataError, "%v", err)
		}
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		fmt.Println("Record saved.")
		return nil
	}
	return outputJSON(stored)
}

// parseFieldValues turns name=value flags into ordered custom fields.
// A repeated name keeps its first position and its last value.
func parseFieldValues(values []string) (archive.Fields, error) {
	var fields archive.Fields
	for _, v := range values {
		name, value, ok := strings.Cut(v, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return archive.Fields{}, fmt.Errorf("invalid field %q: expected name=value", v)
		}
		fields.Set(name, strings.TrimSpace(value))
	}
	return fields, nil
}
