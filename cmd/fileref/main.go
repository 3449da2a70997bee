// Package main is the entry point for the fileref application.
package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term" //nolint:depguard // Required for TTY detection

	"github.com/joe/fileref/internal/config"
	"github.com/joe/fileref/internal/logging"
	"github.com/joe/fileref/internal/tui"
	"github.com/joe/fileref/internal/tui/shared"
	"github.com/joe/fileref/pkg/fileref"
)

func main() {
	// Parse configuration
	cfg, err := config.ParseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	stdoutIsTTY := term.IsTerminal(int(os.Stdout.Fd()))
	if cfg.NoColor || !stdoutIsTTY {
		shared.DisableColor()
	}

	logger := newLogger(cfg)

	scanner, err := buildScanner(cfg, logger)
	if err != nil {
		fmt.Fprint(os.Stderr, shared.RenderActionableError(err, 0))
		os.Exit(1)
	}

	if !cfg.InteractiveMode {
		os.Exit(list(scanner, os.Stdout, os.Stderr, logger))
	}

	// Only use alt screen if stdout is a TTY
	var opts []tea.ProgramOption
	if stdoutIsTTY {
		opts = append(opts, tea.WithAltScreen())
	}

	p := tea.NewProgram(tui.NewBrowser(scanner), opts...)

	_, err = p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger picks the logger for the run. The browser owns the terminal, so
// interactive runs log nothing.
func newLogger(cfg *config.Config) logging.Logger {
	if cfg.InteractiveMode {
		return logging.NewNullLogger()
	}

	return logging.NewConsoleLogger(cfg.Verbose)
}

// buildScanner turns the configuration into an unstarted scanner.
func buildScanner(cfg *config.Config, logger logging.Logger) (*fileref.Scanner, error) {
	root := fileref.New(cfg.Root)
	scanner := root.Scanner()

	if cfg.Files {
		scanner.IncludeFiles()
	}

	if cfg.Dirs {
		scanner.IncludeDirs()
	}

	if cfg.Recurse {
		scanner.Recurse().MaxDepth(cfg.MaxDepth)
	}

	if cfg.Pattern != "" {
		scanner.Matching(cfg.Pattern)
	}

	if cfg.GitIgnore != "" {
		rules, err := fileref.LoadIgnoreFile(fileref.New(cfg.GitIgnore))
		if err != nil {
			return nil, err
		}

		logger.Verbose("ignoring entries matched by %s", cfg.GitIgnore)
		scanner.Ignoring(rules)
	}

	if cfg.OnError == config.Skip {
		scanner.SkipUnreadable()
	}

	logger.Verbose("scanning %s (files=%t dirs=%t recurse=%t max-depth=%d pattern=%q on-error=%s)",
		root, cfg.Files, cfg.Dirs, cfg.Recurse, cfg.MaxDepth, cfg.Pattern, cfg.OnError)

	return scanner, nil
}

// list prints every entry to out and reports failures to errOut.
// Returns the process exit code.
func list(scanner *fileref.Scanner, out, errOut io.Writer, logger logging.Logger) int {
	count := 0

	for ref, err := range scanner.All() {
		if err != nil {
			logger.Error("scan stopped after %d entries", count)
			fmt.Fprint(errOut, shared.RenderActionableError(err, 0))

			return 1
		}

		count++
		fmt.Fprintln(out, shared.RenderEntry(ref.Path(), ref.IsDir()))
	}

	if skipped := scanner.Skipped(); len(skipped) > 0 {
		logger.Error("skipped %d unreadable director(ies)", len(skipped))
		fmt.Fprint(errOut, shared.RenderErrorList(shared.ErrorListConfig{
			Errors:  skipped,
			Context: shared.ContextComplete,
		}))
	}

	logger.Verbose("listed %d entries", count)

	return 0
}
