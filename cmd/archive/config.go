package main

import (
	"fmt"
	"strings"

	"github.com/matsen/archive/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

// ConfigResponse is the response for config get commands.
type ConfigResponse struct {
	DBPath    string `json:"db_path,omitempty"`
	PDFReader string `json:"pdf_reader,omitempty"`
	LogLevel  string `json:"log_level,omitempty"`
}

// UpdateResponse is the response for config set commands.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set values in ~/.config/archive/config.yml.

Usage:
  archive config                            # Show all config
  archive config db-path                    # Get specific value
  archive config db-path ~/archive/main.json
  archive config pdf-reader zathura
  archive config log-level debug

Keys:
  db-path     Default archive file
  pdf-reader  Viewer for file content (system, skim, preview, zathura, evince, okular)
  log-level   Logging level (debug, info, warn, error)`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	// No args: show all config
	if len(args) == 0 {
		if humanOutput {
			fmt.Printf("db-path:    %s\n", cfg.DBPath)
			fmt.Printf("pdf-reader: %s\n", cfg.PDFReader)
			fmt.Printf("log-level:  %s\n", cfg.LogLevel)
			return nil
		}
		return outputJSON(ConfigResponse{DBPath: cfg.DBPath, PDFReader: cfg.PDFReader, LogLevel: cfg.LogLevel})
	}

	key := normalizeKey(args[0])

	// One arg: get specific value
	if len(args) == 1 {
		var value, jsonKey string
		switch key {
		case "db-path":
			value, jsonKey = cfg.DBPath, "db_path"
		case "pdf-reader":
			value, jsonKey = cfg.PDFReader, "pdf_reader"
		case "log-level":
			value, jsonKey = cfg.LogLevel, "log_level"
		default:
			exitWithError(ExitError, "unknown configuration key: %s", args[0])
		}
		if humanOutput {
			fmt.Println(value)
			return nil
		}
		return outputJSON(map[string]string{jsonKey: value})
	}

	// Two args: set value
	value := args[1]
	switch key {
	case "db-path":
		value = config.ExpandPath(value)
		if err := config.ValidateDBPath(value); err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		cfg.DBPath = value
	case "pdf-reader":
		if err := config.ValidatePDFReader(value); err != nil {
			exitWithError(ExitError, "%v", err)
		}
		cfg.PDFReader = value
	case "log-level":
		value = strings.ToLower(value)
		if err := config.ValidateLogLevel(value); err != nil {
			exitWithError(ExitError, "%v", err)
		}
		cfg.LogLevel = value
	default:
		exitWithError(ExitError, "unknown configuration key: %s", args[0])
	}

	if err := cfg.Save(); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	if humanOutput {
		fmt.Printf("Updated %s to %s\n", key, value)
		return nil
	}
	return outputJSON(UpdateResponse{Status: "updated", Key: key, Value: value})
}

// normalizeKey converts key formats (db-path, db_path, DB_PATH) to consistent format
func normalizeKey(key string) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "_", "-")
	return key
}
