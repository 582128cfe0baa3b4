// Package main is the entry point for the myprs application.
package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shaunwen/myprs/internal/app"
	"github.com/shaunwen/myprs/internal/buildinfo"
	"github.com/shaunwen/myprs/internal/config"
	"github.com/shaunwen/myprs/internal/log"
	"github.com/shaunwen/myprs/internal/theme"
	urfavecli "github.com/urfave/cli/v3"
	"golang.org/x/term"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	buildinfo.Set(version, commit, date)
	buildinfo.Enrich()

	cmd := &urfavecli.Command{
		Name:                  "myprs",
		Usage:                 "A TUI to browse your Bitbucket pull requests",
		Version:               buildinfo.String(),
		EnableShellCompletion: true,
		Flags:                 globalFlags(),
		Action:                runTUI,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func globalFlags() []urfavecli.Flag {
	return []urfavecli.Flag{
		&urfavecli.StringSliceFlag{
			Name:    "repo",
			Aliases: []string{"r"},
			Usage:   "Repository to track as workspace/repo (repeatable)",
		},
		&urfavecli.StringFlag{
			Name:  "email",
			Usage: "Bitbucket account email for API authentication",
		},
		&urfavecli.StringFlag{
			Name:  "api-token",
			Usage: "Bitbucket API token",
		},
		&urfavecli.StringFlag{
			Name:    "status",
			Aliases: []string{"s"},
			Usage:   "Default status filter: open, merged, declined or all",
		},
		&urfavecli.StringFlag{
			Name:  "base-url",
			Usage: "Bitbucket API base URL",
		},
		&urfavecli.StringFlag{
			Name:    "theme",
			Aliases: []string{"t"},
			Usage:   "Override the UI theme",
		},
		&urfavecli.StringFlag{
			Name:  "config-file",
			Usage: "Path to configuration file",
		},
		&urfavecli.StringFlag{
			Name:  "debug-log",
			Usage: "Path to debug log file",
		},
	}
}

// runTUI launches the interactive session.
func runTUI(_ context.Context, cmd *urfavecli.Command) error {
	setupDebugLog(cmd.String("debug-log"))

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		_ = log.Close()
		return fmt.Errorf("myprs requires an interactive terminal")
	}

	cfg, err := config.Load(cmd.String("config-file"))
	if err != nil {
		_ = log.Close()
		return fmt.Errorf("loading config: %w", err)
	}

	overrides := config.Overrides{
		Repos:    cmd.StringSlice("repo"),
		Email:    cmd.String("email"),
		APIToken: cmd.String("api-token"),
		Status:   cmd.String("status"),
		BaseURL:  cmd.String("base-url"),
	}
	if err := cfg.ApplyEnvAndFlags(overrides); err != nil {
		_ = log.Close()
		return err
	}

	if _, _, ok := cfg.Credentials(); !ok {
		_ = log.Close()
		return fmt.Errorf("missing Bitbucket credentials: set email and api_token in %s, or BITBUCKET_EMAIL and BITBUCKET_API_TOKEN", cfg.Path())
	}

	themeName := theme.Normalize(cmd.String("theme"))
	if cmd.String("theme") != "" && themeName == "" {
		_ = log.Close()
		return fmt.Errorf("unknown theme %q (available: %v)", cmd.String("theme"), theme.AvailableThemes())
	}

	model := app.NewModel(cfg)
	if themeName != "" {
		model.SetTheme(themeName)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	model.Close()
	if err != nil {
		_ = log.Close()
		return fmt.Errorf("running app: %w", err)
	}

	if err := log.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing debug log: %v\n", err)
	}
	return nil
}

func setupDebugLog(path string) {
	if path == "" {
		_ = log.SetFile("")
		return
	}
	expanded, err := config.ExpandPath(path)
	if err != nil {
		expanded = path
	}
	if err := log.SetFile(expanded); err != nil {
		fmt.Fprintf(os.Stderr, "Error opening debug log file %q: %v\n", expanded, err)
	}
}
