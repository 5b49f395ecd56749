// Package main provides the archive CLI entry point.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/matsen/archive/internal/archive"
	"github.com/matsen/archive/internal/config"
	"github.com/matsen/archive/internal/logging"
	"github.com/matsen/archive/internal/shell"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	// dbFlag is the --db value; empty means resolve from env/config
	dbFlag  string
	verbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "archive",
	Short: "Personal archive catalog",
	Long: `archive keeps metadata records for a personal archive in a single JSON file.

Run without a subcommand to open the interactive menu. Each record has an
Index, Title, time, author_or_publisher, content (literal text or a file
path) and any custom fields declared in the schema.

The archive file defaults to ./archive_db.json and can be set with --db,
the ARCHIVE_DB environment variable (also read from ./.env), or db_path in
~/.config/archive/config.yml.

One-shot commands output JSON by default; use --human for plain text.`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runShell,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "", "Path to the archive file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Version = Version
}

// setup loads .env and installs the logger before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	if err := config.LoadEnv(); err != nil {
		exitWithError(ExitConfigError, "loading %s: %v", config.EnvFile, err)
	}

	level, err := logging.ParseLevel(config.GetLogLevel())
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	if verbose {
		level = slog.LevelDebug
	}
	logging.Setup(level)
	return nil
}

func runShell(cmd *cobra.Command, args []string) error {
	db := mustOpenArchive()
	return shell.New(db, cmd.InOrStdin(), cmd.OutOrStdout()).Run()
}

// mustResolveDBPath resolves the archive file path, exits on error.
func mustResolveDBPath() string {
	path, err := config.ResolveDBPath(dbFlag)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return path
}

// mustOpenArchive opens the archive, exits on error.
// A malformed archive file is a data error; nothing can recover from it.
func mustOpenArchive() *archive.Database {
	path := mustResolveDBPath()
	db, err := archive.Open(path, archive.WithLogger(slog.Default()))
	if err != nil {
		if errors.Is(err, archive.ErrMalformedStore) {
			exitWithError(ExitDataError, "%v", err)
		}
		exitWithError(ExitError, "opening archive: %v", err)
	}
	return db
}
