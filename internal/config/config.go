package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// DefaultDBFile is the archive file used when nothing else is configured.
	DefaultDBFile = "archive_db.json"
	// EnvDBPath names the environment variable that overrides db_path.
	EnvDBPath = "ARCHIVE_DB"
	// EnvFile is the dotenv file read from the working directory.
	EnvFile = ".env"
)

// ValidReaders lists the supported viewer values.
var ValidReaders = []string{"system", "skim", "preview", "zathura", "evince", "okular"}

// ValidLogLevels lists the accepted log_level values.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// LoadEnv reads .env from the working directory into the process
// environment. Variables already set win. A missing file is not an error.
func LoadEnv() error {
	if _, err := os.Stat(EnvFile); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(EnvFile)
}

// ResolveDBPath picks the archive file. Precedence: the explicit flag value,
// then $ARCHIVE_DB, then db_path from the global config, then DefaultDBFile.
func ResolveDBPath(flagValue string) (string, error) {
	if flagValue != "" {
		return ExpandPath(flagValue), nil
	}
	if env := os.Getenv(EnvDBPath); env != "" {
		return ExpandPath(env), nil
	}

	cfg, err := LoadGlobalConfig()
	if err != nil {
		return "", err
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, nil
	}
	return DefaultDBFile, nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}

// ValidatePDFReader checks that the reader value is valid.
func ValidatePDFReader(reader string) error {
	if reader == "" {
		return nil // Empty defaults to "system"
	}
	if !slices.Contains(ValidReaders, reader) {
		return fmt.Errorf("invalid pdf_reader: %s (valid: %v)", reader, ValidReaders)
	}
	return nil
}

// ValidateLogLevel checks that the level value is valid.
func ValidateLogLevel(level string) error {
	if level == "" {
		return nil
	}
	if !slices.Contains(ValidLogLevels, strings.ToLower(level)) {
		return fmt.Errorf("invalid log_level: %s (valid: %v)", level, ValidLogLevels)
	}
	return nil
}

// ValidateDBPath checks that a configured archive path is not a directory.
// A path that does not exist yet is fine; it is created on first save.
func ValidateDBPath(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(ExpandPath(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("checking path: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory: %s", path)
	}
	return nil
}
