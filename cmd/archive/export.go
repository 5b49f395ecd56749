package main

import (
	"fmt"
	"time"

	"github.com/matsen/archive/internal/archive"
	"github.com/matsen/archive/internal/index"
	"github.com/spf13/cobra"
)

var exportForce bool

// ExportResult is the response for export commands.
type ExportResult struct {
	Format  string `json:"format"`
	Path    string `json:"path"`
	Records int    `json:"records"`
	Action  string `json:"action"` // "written", "rebuilt" or "skipped"
	// LastSync is when an up-to-date SQLite copy was built.
	LastSync string `json:"last_sync,omitempty"`
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportJSONLCmd)
	exportCmd.AddCommand(exportSQLiteCmd)
	exportSQLiteCmd.Flags().BoolVar(&exportForce, "force", false, "Rebuild even if the database is up to date")
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export records to other formats",
}

var exportJSONLCmd = &cobra.Command{
	Use:   "jsonl <out.jsonl>",
	Short: "Write records as JSONL",
	Long: `Write all records to a JSONL file, one record per line.
The output can be read back with 'archive import'.

Example:
  archive export jsonl backup.jsonl`,
	Args: cobra.ExactArgs(1),
	RunE: runExportJSONL,
}

var exportSQLiteCmd = &cobra.Command{
	Use:   "sqlite <out.db>",
	Short: "Build a SQLite copy of the archive",
	Long: `Build a SQLite copy of the archive for use with SQL tools.

Tables: records, record_fields, schema_fields, records_fts (FTS5 over text
content) and _meta. The copy remembers the hash of the archive file it was
built from and is skipped when nothing changed, unless --force is given.

Example:
  archive export sqlite archive.db
  sqlite3 archive.db "SELECT index_code, title FROM records"`,
	Args: cobra.ExactArgs(1),
	RunE: runExportSQLite,
}

func runExportJSONL(cmd *cobra.Command, args []string) error {
	db := mustOpenArchive()
	records := db.ListRecords()

	if err := archive.WriteRecordsJSONL(args[0], records); err != nil {
		exitWithError(ExitError, "writing %s: %v", args[0], err)
	}

	return reportExport(ExportResult{Format: "jsonl", Path: args[0], Records: len(records), Action: "written"})
}

func runExportSQLite(cmd *cobra.Command, args []string) error {
	db := mustOpenArchive()

	hash, err := index.ComputeFileHash(db.Path())
	if err != nil {
		exitWithError(ExitError, "hashing archive: %v", err)
	}

	ix, err := index.Open(args[0])
	if err != nil {
		exitWithError(ExitError, "opening %s: %v", args[0], err)
	}
	defer ix.Close()

	result := ExportResult{Format: "sqlite", Path: args[0]}

	needsSync, err := ix.NeedsSync(hash)
	if err != nil {
		exitWithError(ExitError, "checking sync status: %v", err)
	}

	if !needsSync && !exportForce {
		count, _ := ix.Count()
		result.Records = count
		result.Action = "skipped"
		if last, err := ix.LastSync(); err == nil && !last.IsZero() {
			result.LastSync = last.Format(time.RFC3339)
		}
	} else {
		if err := ix.Rebuild(db.Document(), hash, time.Now()); err != nil {
			exitWithError(ExitDataError, "building %s: %v", args[0], err)
		}
		result.Records = db.Len()
		result.Action = "rebuilt"
	}

	return reportExport(result)
}

func reportExport(result ExportResult) error {
	if !humanOutput {
		return outputJSON(result)
	}
	switch result.Action {
	case "skipped":
		fmt.Printf("'%s' already up to date (skipped)\n", result.Path)
	default:
		fmt.Printf("Exported %d records to '%s' (%s)\n", result.Records, result.Path, result.Action)
	}
	return nil
}
