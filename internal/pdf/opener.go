// Package pdf inspects and opens the files that file-mode records point at.
package pdf

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Opener opens files in the configured viewer.
type Opener struct {
	reader string
	goos   string
}

// NewOpener creates an opener for the given reader preference.
func NewOpener(reader string) *Opener {
	if reader == "" {
		reader = "system"
	}
	return &Opener{
		reader: reader,
		goos:   runtime.GOOS,
	}
}

// Command returns the viewer command for path without starting it.
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	switch o.goos {
	case "darwin":
		return o.darwinCommand(path), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return o.linuxCommand(path), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", o.goos)
	}
}

// Open starts the viewer for path. The path must name an existing file.
func (o *Opener) Open(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s", path)
		}
		return fmt.Errorf("checking file: %w", err)
	}

	cmd, err := o.Command(path)
	if err != nil {
		return err
	}
	return cmd.Start()
}

// darwinCommand returns the command to open a file on macOS.
func (o *Opener) darwinCommand(path string) *exec.Cmd {
	switch o.reader {
	case "skim":
		return exec.Command("open", "-a", "Skim", path)
	case "preview":
		return exec.Command("open", "-a", "Preview", path)
	default: // "system"
		return exec.Command("open", path)
	}
}

// linuxCommand returns the command to open a file on Linux.
func (o *Opener) linuxCommand(path string) *exec.Cmd {
	switch o.reader {
	case "zathura":
		return exec.Command("zathura", path)
	case "evince":
		return exec.Command("evince", path)
	case "okular":
		return exec.Command("okular", path)
	default: // "system"
		return exec.Command("xdg-open", path)
	}
}
