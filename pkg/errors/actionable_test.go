package errors_test

import (
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/fileref/pkg/errors"
)

func TestActionableError_Accessors(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	suggestions := []string{"Check if path exists"}
	err := errors.NewActionableError(
		"file does not exist",
		errors.CategoryPath,
		suggestions,
		"/tmp/test/file.txt",
	)

	g.Expect(err.Error()).To(Equal("file does not exist"))
	g.Expect(err.OriginalError()).To(Equal("file does not exist"))
	g.Expect(err.Category()).To(Equal(errors.CategoryPath))
	g.Expect(err.AffectedPath()).To(Equal("/tmp/test/file.txt"))
	g.Expect(err.Suggestions()).To(Equal(suggestions))
}

func TestActionableError_FormatSuggestionsWithEmptySuggestions(t *testing.T) {
	t.Parallel()

	err := errors.NewActionableError(
		"unknown error",
		errors.CategoryUnknown,
		[]string{},
		"/path",
	)

	formatted := errors.FormatSuggestions(err)
	if formatted != "" {
		t.Errorf("expected empty string for no suggestions, got %q", formatted)
	}
}

func TestActionableError_FormatSuggestionsWithMultipleSuggestions(t *testing.T) {
	t.Parallel()

	err := errors.NewActionableError(
		"permission denied",
		errors.CategoryPermission,
		[]string{
			"Check permissions with 'ls -la'",
			"Ensure you have read/write access",
		},
		"/path/to/file",
	)

	expected := "  • Check permissions with 'ls -la'\n  • Ensure you have read/write access"
	if formatted := errors.FormatSuggestions(err); formatted != expected {
		t.Errorf("expected:\n%q\ngot:\n%q", expected, formatted)
	}
}

func TestActionableError_FormatSuggestionsWithNonActionableError(t *testing.T) {
	t.Parallel()

	if formatted := errors.FormatSuggestions(nil); formatted != "" {
		t.Errorf("expected empty string for nil error, got %q", formatted)
	}

	plain := errors.NewPathError(errors.KindNotFound, "read", "a.txt", "")
	if formatted := errors.FormatSuggestions(plain); formatted != "" {
		t.Errorf("expected empty string for non-actionable error, got %q", formatted)
	}
}

func TestErrorCategory_CategoriesAreDistinct(t *testing.T) {
	t.Parallel()

	categories := []errors.ErrorCategory{
		errors.CategoryConflict,
		errors.CategoryDiskSpace,
		errors.CategoryIO,
		errors.CategoryKind,
		errors.CategoryPath,
		errors.CategoryPermission,
		errors.CategoryUnknown,
	}

	seen := make(map[errors.ErrorCategory]bool)
	for _, cat := range categories {
		if cat == "" {
			t.Error("category should not be empty string")
		}
		if seen[cat] {
			t.Errorf("duplicate category: %q", cat)
		}

		seen[cat] = true
	}
}
