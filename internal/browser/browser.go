// Package browser opens URLs in the user's default web browser.
package browser

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

const (
	osDarwin  = "darwin"
	osWindows = "windows"
)

// Opener launches URLs with the platform launcher. The command runner and
// starter are injectable for tests.
type Opener struct {
	commandRunner func(ctx context.Context, name string, args ...string) *exec.Cmd
	startCommand  func(cmd *exec.Cmd) error
	goos          string
}

// New creates an Opener using the real platform launcher.
func New() *Opener {
	return &Opener{
		commandRunner: exec.CommandContext,
		startCommand:  func(cmd *exec.Cmd) error { return cmd.Start() },
		goos:          runtime.GOOS,
	}
}

// Open launches the URL in the default browser. Only http and https URLs
// are accepted.
func (o *Opener) Open(ctx context.Context, rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("refusing to open non-web URL %q", rawURL)
	}

	var cmd *exec.Cmd
	switch o.goos {
	case osDarwin:
		// #nosec G204 -- the URL is executed directly as a single argument
		cmd = o.commandRunner(ctx, "open", rawURL)
	case osWindows:
		// #nosec G204 -- the URL is executed directly as a single argument
		cmd = o.commandRunner(ctx, "rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		// #nosec G204 -- the URL is executed directly as a single argument
		cmd = o.commandRunner(ctx, "xdg-open", rawURL)
	}
	return o.startCommand(cmd)
}
