// Package config handles application configuration and command-line argument parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alexflint/go-arg"
	"github.com/bmatcuk/doublestar/v4"
)

// ErrorPolicy says what a scan does when a directory cannot be listed
type ErrorPolicy int

const (
	// Abort - stop at the first unreadable directory
	Abort ErrorPolicy = iota
	// Skip - leave unreadable subdirectories out and keep going
	Skip
)

// String returns the string representation of ErrorPolicy
func (p ErrorPolicy) String() string {
	switch p {
	case Abort:
		return "abort"
	case Skip:
		return "skip"
	default:
		return "unknown"
	}
}

// ParseErrorPolicy parses a string into an ErrorPolicy
func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	s = strings.ToLower(s)
	switch s {
	case "abort", "stop":
		return Abort, nil
	case "skip", "continue":
		return Skip, nil
	default:
		return Abort, fmt.Errorf("invalid error policy: %s (valid: abort, skip)", s)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for go-arg
func (p *ErrorPolicy) UnmarshalText(text []byte) error {
	parsed, err := ParseErrorPolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Config holds the application configuration
type Config struct {
	Root            string      `arg:"positional" default:"." help:"Directory to scan"`
	Files           bool        `arg:"-f,--files" help:"List files"`
	Dirs            bool        `arg:"-d,--dirs" help:"List directories"`
	Recurse         bool        `arg:"-r,--recurse" help:"Descend into subdirectories"`
	MaxDepth        int         `arg:"--max-depth" default:"0" help:"Deepest level to descend to when recursing (0 = unlimited)"`
	Pattern         string      `arg:"-p,--pattern" help:"Only list entries whose path below the root matches this glob (case-insensitive, supports **)"`
	GitIgnore       string      `arg:"--gitignore" help:"Skip entries matched by this .gitignore-style file"`
	OnError         ErrorPolicy `arg:"--on-error" default:"abort" help:"What to do with unreadable subdirectories: abort|skip"`
	InteractiveMode bool        `arg:"-i,--interactive" help:"Browse the results in an interactive view"`
	Verbose         bool        `arg:"-v,--verbose" help:"Log what the scan is doing to stderr"`
	NoColor         bool        `arg:"--no-color" help:"Disable colored output"`
}

// Description returns the program description for go-arg
func (Config) Description() string {
	return "List files and directories, optionally recursing, filtering by glob and .gitignore rules"
}

// Version returns the version string for go-arg
func (Config) Version() string {
	return "fileref 1.0.0"
}

// ParseFlags parses command-line flags and returns configuration
func ParseFlags() (*Config, error) {
	cfg := &Config{
		Root:    ".",
		OnError: Abort,
	}

	arg.MustParse(cfg)

	return PostProcessConfig(cfg)
}

// ParseArgs parses the given arguments instead of os.Args
func ParseArgs(args []string) (*Config, error) {
	cfg := &Config{
		Root:    ".",
		OnError: Abort,
	}

	parser, err := arg.NewParser(arg.Config{Program: "fileref"}, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build argument parser: %w", err)
	}

	if err := parser.Parse(args); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}

	return PostProcessConfig(cfg)
}

// PostProcessConfig applies post-processing logic to a parsed config
func PostProcessConfig(cfg *Config) (*Config, error) {
	// With no kind selected, list both
	if !cfg.Files && !cfg.Dirs {
		cfg.Files = true
		cfg.Dirs = true
	}

	if cfg.Root == "" {
		cfg.Root = "."
	}

	if cfg.MaxDepth < 0 {
		return nil, fmt.Errorf("max depth must not be negative: %d", cfg.MaxDepth)
	}

	if cfg.MaxDepth > 0 && !cfg.Recurse {
		return nil, errors.New("--max-depth needs --recurse")
	}

	if err := ValidateFilePattern(cfg.Pattern); err != nil {
		return nil, err
	}

	if err := cfg.ValidatePaths(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ValidatePaths validates that the root is a directory and the ignore file, if any, exists
func (cfg *Config) ValidatePaths() error {
	rootInfo, err := os.Stat(cfg.Root)
	if os.IsNotExist(err) {
		return fmt.Errorf("root path does not exist: %s", cfg.Root)
	}
	if err != nil {
		return fmt.Errorf("cannot access root path: %w", err)
	}
	if !rootInfo.IsDir() {
		return fmt.Errorf("root path is not a directory: %s", cfg.Root)
	}

	if cfg.GitIgnore == "" {
		return nil
	}

	ignoreInfo, err := os.Stat(cfg.GitIgnore)
	if os.IsNotExist(err) {
		return fmt.Errorf("ignore file does not exist: %s", cfg.GitIgnore)
	}
	if err != nil {
		return fmt.Errorf("cannot access ignore file: %w", err)
	}
	if ignoreInfo.IsDir() {
		return fmt.Errorf("ignore file is a directory: %s", cfg.GitIgnore)
	}

	return nil
}

// ValidateFilePattern checks that a glob pattern is well formed. Empty is valid.
func ValidateFilePattern(pattern string) error {
	if pattern == "" {
		return nil
	}

	if !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("invalid file pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	return nil
}
