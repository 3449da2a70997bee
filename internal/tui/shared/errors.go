package shared

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/joe/fileref/pkg/errors"
)

// Error display limits for different screen contexts
const (
	// ErrorLimitInProgress is for the browser while the scan is still running
	ErrorLimitInProgress = 3

	// ErrorLimitComplete is for the final report of a finished scan
	ErrorLimitComplete = 10
)

// ErrorDisplayContext defines the context in which errors are being displayed
type ErrorDisplayContext int

const (
	// ContextInProgress indicates errors shown while scanning
	ContextInProgress ErrorDisplayContext = iota
	// ContextComplete indicates errors shown after the scan ended
	ContextComplete
)

// ErrorListConfig holds configuration for rendering error lists
type ErrorListConfig struct {
	// Errors is the list of errors to display
	Errors []error

	// Context determines the display limit and overflow message
	Context ErrorDisplayContext

	// MaxWidth is the maximum width for path and error message display
	MaxWidth int
}

// RenderErrorList renders a list of errors with appropriate limits and formatting
// based on the display context. Returns the rendered error list as a string.
func RenderErrorList(config ErrorListConfig) string {
	if len(config.Errors) == 0 {
		return ""
	}

	var builder strings.Builder

	limit := getErrorLimit(config.Context)

	for i, err := range config.Errors {
		if i >= limit {
			remaining := len(config.Errors) - limit
			fmt.Fprintf(&builder, "%s\n", getOverflowMessage(config.Context, remaining))

			break
		}

		builder.WriteString(RenderActionableError(err, config.MaxWidth))
	}

	return builder.String()
}

// RenderActionableError renders one error with its path and the enricher's suggestions.
func RenderActionableError(err error, maxWidth int) string {
	var builder strings.Builder

	path := ErrorPath(err)
	enrichedErr := errors.NewEnricher().Enrich(err, path)

	displayPath := path
	if maxWidth > 0 {
		displayPath = TruncatePath(path, maxWidth)
	}

	if displayPath != "" {
		fmt.Fprintf(&builder, "  %s %s\n", ErrorSymbol(), FileItemErrorStyle().Render(displayPath))
	}

	errMsg := enrichedErr.Error()
	if maxWidth > 3 && len(errMsg) > maxWidth {
		errMsg = errMsg[:maxWidth-3] + "..."
	}

	fmt.Fprintf(&builder, "    %s\n", errMsg)

	suggestions := errors.FormatSuggestions(enrichedErr)
	if suggestions != "" {
		indentedSuggestions := "    " + strings.ReplaceAll(suggestions, "\n", "\n    ")
		fmt.Fprintf(&builder, "%s\n", indentedSuggestions)
	}

	return builder.String()
}

// ErrorPath returns the path a PathError is about, or "" for other errors.
func ErrorPath(err error) string {
	var pathErr *errors.PathError
	if stderrors.As(err, &pathErr) {
		return pathErr.Path
	}

	return ""
}

// ErrorSymbol returns the marker placed before a failed path
func ErrorSymbol() string {
	return ErrorStyle().Render("✗")
}

// TruncatePath shortens a path to maxWidth, keeping its end.
func TruncatePath(path string, maxWidth int) string {
	if len(path) <= maxWidth || maxWidth <= len(ellipsis) {
		return path
	}

	return ellipsis + path[len(path)-(maxWidth-len(ellipsis)):]
}

const ellipsis = "..."

// getErrorLimit returns the error display limit for a given context
func getErrorLimit(context ErrorDisplayContext) int {
	switch context {
	case ContextInProgress:
		return ErrorLimitInProgress
	case ContextComplete:
		return ErrorLimitComplete
	default:
		return ErrorLimitComplete
	}
}

// getOverflowMessage returns the appropriate message when error limit is exceeded
func getOverflowMessage(context ErrorDisplayContext, remaining int) string {
	switch context {
	case ContextInProgress:
		return fmt.Sprintf("  ... and %d more (see report when the scan ends)", remaining)
	case ContextComplete:
		return fmt.Sprintf("... and %d more error(s)", remaining)
	default:
		return fmt.Sprintf("... and %d more error(s)", remaining)
	}
}
