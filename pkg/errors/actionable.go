// Package errors defines how path operations fail and how those failures are
// turned into something a user can act on.
//
// Every fallible operation in the fileref packages returns a *PathError carrying
// one of five kinds (see Kind). Callers branch on kind with errors.Is:
//
//	if errors.Is(err, pkgerrors.ErrNotFound) {
//	    // create it first
//	}
//
// Host applications that show errors to people can enrich them with a category
// and suggestions:
//
//	enricher := pkgerrors.NewEnricher()
//	actionable := enricher.Enrich(err, "")
//	fmt.Println(actionable.Error())
//	fmt.Println(pkgerrors.FormatSuggestions(actionable))
//
// The enricher uses the PathError kind when present and falls back to matching
// host error messages ("permission denied", "no space left on device", ...).
package errors

import "strings"

// Exported constants.
const (
	CategoryConflict   ErrorCategory = "conflict"
	CategoryDiskSpace  ErrorCategory = "disk_space"
	CategoryIO         ErrorCategory = "io"
	CategoryKind       ErrorCategory = "kind"
	CategoryPath       ErrorCategory = "path"
	CategoryPermission ErrorCategory = "permission"
	CategoryUnknown    ErrorCategory = "unknown"
)

// ActionableError represents an error with actionable suggestions for the user.
type ActionableError interface {
	error
	OriginalError() string
	Category() ErrorCategory
	Suggestions() []string
	AffectedPath() string
}

// NewActionableError creates a new ActionableError with the given details.
func NewActionableError(
	originalError string,
	category ErrorCategory,
	suggestions []string,
	affectedPath string,
) ActionableError {
	return &actionableError{
		originalError: originalError,
		category:      category,
		suggestions:   suggestions,
		affectedPath:  affectedPath,
	}
}

// ErrorCategory represents the type of error that occurred.
type ErrorCategory string

// FormatSuggestions formats the suggestions from an ActionableError as a bulleted list.
// Returns empty string if the error is nil or has no suggestions.
func FormatSuggestions(err error) string {
	if err == nil {
		return ""
	}

	actionable, ok := err.(ActionableError)
	if !ok {
		return ""
	}

	suggestions := actionable.Suggestions()
	if len(suggestions) == 0 {
		return ""
	}

	var builder strings.Builder
	for i, suggestion := range suggestions {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString("  • ")
		builder.WriteString(suggestion)
	}

	return builder.String()
}

// actionableError is the concrete implementation of ActionableError.
type actionableError struct {
	originalError string
	category      ErrorCategory
	suggestions   []string
	affectedPath  string
}

// AffectedPath returns the path affected by this error.
func (e *actionableError) AffectedPath() string {
	return e.affectedPath
}

// Category returns the error category.
func (e *actionableError) Category() ErrorCategory {
	return e.category
}

// Error implements the error interface.
func (e *actionableError) Error() string {
	return e.originalError
}

// OriginalError returns the original error message.
func (e *actionableError) OriginalError() string {
	return e.originalError
}

// Suggestions returns the list of actionable suggestions.
func (e *actionableError) Suggestions() []string {
	return e.suggestions
}
