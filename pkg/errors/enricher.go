package errors

import (
	"errors"
	"regexp"
	"strings"
)

// Enricher enriches standard errors with actionable suggestions.
type Enricher interface {
	Enrich(err error, affectedPath string) error
}

// NewEnricher creates a new Enricher with default pattern matcher and suggestion generator.
func NewEnricher() Enricher {
	return &enricher{
		matcher:   NewPatternMatcher(),
		generator: NewSuggestionGenerator(),
	}
}

// unexported variables.
var (
	//nolint:gochecknoglobals // Compiled regexes shared across all enricher instances
	pathExtractionPatterns = []*regexp.Regexp{
		// PathError format: could not read "path": reason
		regexp.MustCompile(`\bcould not \w+(?: \w+)* "([^"]+)":`),
		// os error format: open /path/to/file: reason
		regexp.MustCompile(`\b\w+\s+([./][^\s:]+):`),
		// Windows paths with backslashes
		regexp.MustCompile(`\b\w+\s+([A-Za-z]:\\[^\s:]+):`),
	}
)

// enricher is the concrete implementation of Enricher.
type enricher struct {
	matcher   PatternMatcher
	generator SuggestionGenerator
}

// Enrich takes an error and enriches it with category and actionable suggestions.
// If the error is already an ActionableError, it is returned unchanged.
// A PathError decides the category by its kind; KindIO and plain errors are
// categorised by matching the message.
// If affectedPath is empty, the PathError path or a path found in the message is used.
func (e *enricher) Enrich(err error, affectedPath string) error {
	if err == nil {
		return nil
	}

	var actionableErr ActionableError
	if errors.As(err, &actionableErr) {
		return actionableErr
	}

	errMsg := err.Error()

	var pathErr *PathError
	isPathErr := errors.As(err, &pathErr)

	if affectedPath == "" {
		if isPathErr {
			affectedPath = pathErr.Path
		} else {
			affectedPath = extractPath(errMsg)
		}
	}

	category := CategoryUnknown
	if isPathErr {
		category = categoryForKind(pathErr.Kind)
	}
	if category == CategoryUnknown {
		category = e.matcher.Match(errMsg)
	}

	return NewActionableError(
		errMsg,
		category,
		e.generator.Generate(category, affectedPath),
		affectedPath,
	)
}

func categoryForKind(kind Kind) ErrorCategory {
	switch kind {
	case KindInvalidOperation:
		return CategoryKind
	case KindNotFound, KindNoParent:
		return CategoryPath
	case KindAlreadyExists:
		return CategoryConflict
	case KindIO:
		return CategoryUnknown
	default:
		return CategoryUnknown
	}
}

// extractPath attempts to extract a file path from common error message formats.
// Returns empty string if no path is found.
//
// Recognized formats:
//   - `could not read "dir/file.txt": file does not exist`
//   - "open /path/to/file: permission denied"
//   - "stat C:\data\app.log: no such file or directory"
func extractPath(errorMsg string) string {
	for _, pattern := range pathExtractionPatterns {
		if matches := pattern.FindStringSubmatch(errorMsg); len(matches) > 1 {
			path := strings.TrimSpace(matches[1])
			if path != "" {
				return path
			}
		}
	}

	return ""
}
