package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveDBPath(t *testing.T) {
	home := useConfigHome(t)
	t.Setenv(EnvDBPath, "")

	// Nothing configured
	got, err := ResolveDBPath("")
	if err != nil {
		t.Fatalf("ResolveDBPath: %v", err)
	}
	if got != DefaultDBFile {
		t.Errorf("default = %q, want %q", got, DefaultDBFile)
	}

	// Global config
	writeGlobalConfig(t, home, "db_path: /data/cfg.json\n")
	ResetGlobalConfigCache()
	if got, _ := ResolveDBPath(""); got != "/data/cfg.json" {
		t.Errorf("from config = %q", got)
	}

	// Environment beats config
	t.Setenv(EnvDBPath, "/data/env.json")
	if got, _ := ResolveDBPath(""); got != "/data/env.json" {
		t.Errorf("from env = %q", got)
	}

	// Flag beats everything
	if got, _ := ResolveDBPath("/data/flag.json"); got != "/data/flag.json" {
		t.Errorf("from flag = %q", got)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvDBPath, "")
	os.Unsetenv(EnvDBPath)

	// Missing .env is fine
	if err := LoadEnv(); err != nil {
		t.Fatalf("LoadEnv without file: %v", err)
	}

	if err := os.WriteFile(EnvFile, []byte("ARCHIVE_DB=from-dotenv.json\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := LoadEnv(); err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if got := os.Getenv(EnvDBPath); got != "from-dotenv.json" {
		t.Errorf("%s = %q, want from-dotenv.json", EnvDBPath, got)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}

	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"/abs/path", "/abs/path"},
		{"rel/path", "rel/path"},
		{"~", home},
		{"~/docs/a.json", filepath.Join(home, "docs", "a.json")},
		{"~other/x", "~other/x"},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidatePDFReader(t *testing.T) {
	for _, r := range append([]string{""}, ValidReaders...) {
		if err := ValidatePDFReader(r); err != nil {
			t.Errorf("ValidatePDFReader(%q) = %v", r, err)
		}
	}
	if err := ValidatePDFReader("acrobat"); err == nil {
		t.Error("expected error for unknown reader")
	}
}

func TestValidateLogLevel(t *testing.T) {
	for _, l := range []string{"", "debug", "INFO", "warn", "error"} {
		if err := ValidateLogLevel(l); err != nil {
			t.Errorf("ValidateLogLevel(%q) = %v", l, err)
		}
	}
	if err := ValidateLogLevel("verbose"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestValidateDBPath(t *testing.T) {
	dir := t.TempDir()
	if err := ValidateDBPath(dir); err == nil {
		t.Error("expected error for directory")
	}
	if err := ValidateDBPath(filepath.Join(dir, "new.json")); err != nil {
		t.Errorf("non-existent file should be accepted: %v", err)
	}
}
