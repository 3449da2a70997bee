package fileref

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/denormal/go-gitignore"

	pkgerrors "github.com/joe/fileref/pkg/errors"
)

// EntryFilter decides whether a scanned entry is kept. relativePath is relative
// to the scan root and always uses "/".
type EntryFilter interface {
	ShouldInclude(relativePath string, isDir bool) bool
}

// GlobFilter implements EntryFilter using doublestar glob patterns.
// Matching is case-insensitive.
type GlobFilter struct {
	normalizedPattern string
	isEmpty           bool
}

// NewGlobFilter creates a new GlobFilter with the given pattern.
// Empty pattern matches everything.
func NewGlobFilter(pattern string) *GlobFilter {
	return &GlobFilter{
		normalizedPattern: strings.ToLower(pattern),
		isEmpty:           pattern == "",
	}
}

// Valid reports whether the pattern is well formed.
func (f *GlobFilter) Valid() bool {
	return doublestar.ValidatePattern(f.normalizedPattern)
}

// ShouldInclude returns true if the path matches the pattern.
func (f *GlobFilter) ShouldInclude(relativePath string, _ bool) bool {
	if f.isEmpty {
		return true
	}

	matched, err := doublestar.Match(f.normalizedPattern, strings.ToLower(relativePath))
	if err != nil {
		// an invalid pattern matches nothing
		return false
	}

	return matched
}

// IgnoreFilter implements EntryFilter with .gitignore rules.
type IgnoreFilter struct {
	ignore gitignore.GitIgnore
}

// NewIgnoreFilter wraps parsed ignore rules. A nil ignore keeps everything.
func NewIgnoreFilter(ignore gitignore.GitIgnore) *IgnoreFilter {
	return &IgnoreFilter{ignore: ignore}
}

// ShouldInclude returns false for entries the rules ignore.
func (f *IgnoreFilter) ShouldInclude(relativePath string, isDir bool) bool {
	if f.ignore == nil {
		return true
	}

	match := f.ignore.Relative(relativePath, isDir)

	return match == nil || !match.Ignore()
}

// LoadIgnoreFile parses a .gitignore-style file. The file is read directly,
// without the kind check Read applies, since names like ".gitignore" look
// like directories.
func LoadIgnoreFile(ref PathRef) (gitignore.GitIgnore, error) {
	data, err := ops.ReadAll(ref.path)
	if err != nil {
		return nil, pkgerrors.FromHost("load ignore rules from", ref.path, err)
	}

	base := "."
	if parent, err := ref.ParentDir(); err == nil && parent.path != "" {
		base = parent.path
	}

	return gitignore.New(bytes.NewReader(data), base, nil), nil
}

// ParseIgnoreRules parses ignore rules held in memory.
func ParseIgnoreRules(rules string) gitignore.GitIgnore {
	return gitignore.New(strings.NewReader(rules), ".", nil)
}

func patternError(pattern string) error {
	return fmt.Errorf("invalid glob pattern %q: %w", pattern, doublestar.ErrBadPattern)
}
