package adapter

import (
	"fmt"
	"log/slog"
	"net/url"
	"os/exec"
	"runtime"
)

// Viewer opens photo URLs in an external program
type Viewer struct {
	command string   // configured viewer command, empty for system default
	args    []string // additional arguments for the viewer
	logger  *slog.Logger

	// start launches a process without waiting for it
	start func(name string, args ...string) error
}

// candidateViewers lists image-capable programs tried before the system default
var candidateViewers = map[string][]string{
	"darwin":  {},
	"linux":   {"xdg-open", "gio"},
	"windows": {},
}

// NewViewer creates a Viewer; command may be empty
func NewViewer(command string, args []string, logger *slog.Logger) *Viewer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Viewer{
		command: command,
		args:    append([]string{}, args...),
		logger:  logger,
		start:   startDetached,
	}
}

// startDetached starts a command async, don't wait
func startDetached(name string, args ...string) error {
	if _, err := exec.LookPath(name); err != nil {
		return err
	}
	return exec.Command(name, args...).Start()
}

// Open shows rawURL in the configured viewer or the system default
func (v *Viewer) Open(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("refusing to open non-http URL %q", rawURL)
	}

	// Tier 1: User configured a specific viewer
	if v.command != "" {
		args := append(append([]string{}, v.args...), rawURL)
		v.logger.Info("opening with configured viewer", "command", v.command, "args", args)
		if err := v.start(v.command, args...); err != nil {
			return fmt.Errorf("failed to start viewer %q: %w", v.command, err)
		}
		return nil
	}

	// Tier 2: Try candidate chain for this platform
	for _, name := range candidateViewers[runtime.GOOS] {
		args := []string{rawURL}
		if name == "gio" {
			args = []string{"open", rawURL}
		}
		err := v.start(name, args...)
		if err == nil {
			v.logger.Info("opened with detected viewer", "viewer", name)
			return nil
		}
		v.logger.Debug("viewer not available", "viewer", name, "error", err)
	}

	// Tier 3: Fall back to system default (open/start)
	return v.openDefault(rawURL)
}

// openDefault opens the URL using the system default handler
func (v *Viewer) openDefault(rawURL string) error {
	var name string
	var args []string

	switch runtime.GOOS {
	case "darwin":
		name, args = "open", []string{rawURL}
	case "windows":
		name, args = "cmd", []string{"/c", "start", "", rawURL}
	default:
		name, args = "xdg-open", []string{rawURL}
	}

	v.logger.Info("opening with system default", "os", runtime.GOOS, "url", rawURL)

	if err := v.start(name, args...); err != nil {
		return fmt.Errorf("no viewer available: %w", err)
	}
	return nil
}
