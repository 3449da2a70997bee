package errors

import "strings"

// PatternMatcher matches error messages to categories using string patterns.
type PatternMatcher interface {
	Match(errorMsg string) ErrorCategory
}

// NewPatternMatcher creates a new PatternMatcher with predefined patterns.
func NewPatternMatcher() PatternMatcher {
	return &patternMatcher{
		order: []ErrorCategory{
			CategoryPermission,
			CategoryDiskSpace,
			CategoryPath,
			CategoryConflict,
			CategoryKind,
			CategoryIO,
		},
		patterns: map[ErrorCategory][]string{
			CategoryPermission: {
				"permission denied",
				"access denied",
				"operation not permitted",
			},
			CategoryDiskSpace: {
				"no space left on device",
				"disk full",
				"quota exceeded",
			},
			CategoryPath: {
				"no such file or directory",
				"file does not exist",
				"not found",
				"no parent directory",
			},
			CategoryConflict: {
				"file exists",
				"already exists",
			},
			CategoryKind: {
				"is a directory",
				"not a directory",
				"invalid operation for kind",
			},
			CategoryIO: {
				"unexpected eof",
				"short write",
				"input/output error",
				"i/o error",
				"too many open files",
			},
		},
	}
}

// patternMatcher is the concrete implementation of PatternMatcher.
type patternMatcher struct {
	order    []ErrorCategory
	patterns map[ErrorCategory][]string
}

// Match returns the error category based on pattern matching.
// Categories are tried in a fixed order so overlapping messages classify the same way every time.
func (m *patternMatcher) Match(errorMsg string) ErrorCategory {
	lowerMsg := strings.ToLower(errorMsg)

	for _, category := range m.order {
		for _, pattern := range m.patterns[category] {
			if strings.Contains(lowerMsg, pattern) {
				return category
			}
		}
	}

	return CategoryUnknown
}
