package fileref

import (
	"strings"
	"unicode"
)

// Text helpers. Those that return a PathRef go back through New, so the result
// is normalized like any other ref.

// Len returns the length of the path in bytes.
func (p PathRef) Len() int { return len(p.path) }

// IsEmpty reports whether the path is "".
func (p PathRef) IsEmpty() bool { return p.path == "" }

// Contains reports whether substr is within the path.
func (p PathRef) Contains(substr string) bool { return strings.Contains(p.path, substr) }

// HasPrefix reports whether the path begins with prefix.
func (p PathRef) HasPrefix(prefix string) bool { return strings.HasPrefix(p.path, prefix) }

// HasSuffix reports whether the path ends with suffix.
func (p PathRef) HasSuffix(suffix string) bool { return strings.HasSuffix(p.path, suffix) }

// Index returns the byte index of the first substr, or -1.
func (p PathRef) Index(substr string) int { return strings.Index(p.path, substr) }

// LastIndex returns the byte index of the last substr, or -1.
func (p PathRef) LastIndex(substr string) int { return strings.LastIndex(p.path, substr) }

// SplitAt divides the path at byte offset mid. It panics if mid is out of range.
func (p PathRef) SplitAt(mid int) (string, string) { return p.path[:mid], p.path[mid:] }

// Split slices the path around each sep.
func (p PathRef) Split(sep string) []string { return strings.Split(p.path, sep) }

// SplitN slices the path around sep into at most n pieces.
func (p PathRef) SplitN(sep string, n int) []string { return strings.SplitN(p.path, sep, n) }

// Fields splits the path around runs of whitespace.
func (p PathRef) Fields() []string { return strings.Fields(p.path) }

// Lines splits the path on "\n", dropping a trailing "\r" from each line.
func (p PathRef) Lines() []string {
	if p.path == "" {
		return nil
	}

	lines := strings.Split(strings.TrimSuffix(p.path, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return lines
}

// ToLower returns the path in lower case.
func (p PathRef) ToLower() PathRef { return New(strings.ToLower(p.path)) }

// ToUpper returns the path in upper case.
func (p PathRef) ToUpper() PathRef { return New(strings.ToUpper(p.path)) }

// Trim removes leading and trailing whitespace.
func (p PathRef) Trim() PathRef { return New(strings.TrimSpace(p.path)) }

// TrimStart removes leading whitespace.
func (p PathRef) TrimStart() PathRef { return New(strings.TrimLeftFunc(p.path, unicode.IsSpace)) }

// TrimEnd removes trailing whitespace.
func (p PathRef) TrimEnd() PathRef { return New(strings.TrimRightFunc(p.path, unicode.IsSpace)) }

// TrimStartMatches removes every leading repetition of prefix.
func (p PathRef) TrimStartMatches(prefix string) PathRef {
	path := p.path
	for prefix != "" && strings.HasPrefix(path, prefix) {
		path = path[len(prefix):]
	}

	return New(path)
}

// TrimEndMatches removes every trailing repetition of suffix.
func (p PathRef) TrimEndMatches(suffix string) PathRef {
	path := p.path
	for suffix != "" && strings.HasSuffix(path, suffix) {
		path = path[:len(path)-len(suffix)]
	}

	return New(path)
}

// Repeat returns the path concatenated count times.
func (p PathRef) Repeat(count int) PathRef { return New(strings.Repeat(p.path, count)) }

// Replace replaces every old with replacement.
func (p PathRef) Replace(old, replacement string) PathRef {
	return New(strings.ReplaceAll(p.path, old, replacement))
}

// StripPrefix removes prefix once, reporting whether it was present.
func (p PathRef) StripPrefix(prefix string) (PathRef, bool) {
	rest, ok := strings.CutPrefix(p.path, prefix)
	if !ok {
		return PathRef{}, false
	}

	return New(rest), true
}

// StripSuffix removes suffix once, reporting whether it was present.
func (p PathRef) StripSuffix(suffix string) (PathRef, bool) {
	rest, ok := strings.CutSuffix(p.path, suffix)
	if !ok {
		return PathRef{}, false
	}

	return New(rest), true
}
