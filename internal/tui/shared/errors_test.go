//nolint:varnamelen // Test files use idiomatic short variable names (g, etc.)
package shared_test

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/fileref/internal/tui/shared"
	pkgerrors "github.com/joe/fileref/pkg/errors"
)

func listingFailure(path string) error {
	return &pkgerrors.PathError{Op: "list", Path: path, Kind: pkgerrors.KindIO, Err: fs.ErrPermission}
}

func TestRenderErrorList_Empty(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(shared.RenderErrorList(shared.ErrorListConfig{})).To(BeEmpty())
}

func TestRenderErrorList_ShowsPathMessageAndSuggestions(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	result := shared.RenderErrorList(shared.ErrorListConfig{
		Errors:  []error{listingFailure("srv/locked")},
		Context: shared.ContextComplete,
	})

	g.Expect(result).To(ContainSubstring("srv/locked"))
	g.Expect(result).To(ContainSubstring(`could not list "srv/locked"`))
	g.Expect(result).To(ContainSubstring("•"))
}

func TestRenderErrorList_LimitsByContext(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	var errs []error
	for i := range 5 {
		errs = append(errs, listingFailure(fmt.Sprintf("dir%d", i)))
	}

	inProgress := shared.RenderErrorList(shared.ErrorListConfig{Errors: errs, Context: shared.ContextInProgress})
	g.Expect(inProgress).To(ContainSubstring("dir2"))
	g.Expect(inProgress).NotTo(ContainSubstring("dir3"))
	g.Expect(inProgress).To(ContainSubstring("and 2 more"))

	complete := shared.RenderErrorList(shared.ErrorListConfig{Errors: errs, Context: shared.ContextComplete})
	g.Expect(complete).To(ContainSubstring("dir4"))
	g.Expect(complete).NotTo(ContainSubstring("more error"))
}

func TestRenderActionableError_PlainError(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	result := shared.RenderActionableError(errors.New("something odd"), 0)

	g.Expect(result).To(ContainSubstring("something odd"))
	g.Expect(shared.ErrorPath(errors.New("x"))).To(BeEmpty())
}

func TestRenderActionableError_Truncates(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	long := strings.Repeat("deep/", 20) + "locked"
	result := shared.RenderActionableError(listingFailure(long), 30)

	for _, line := range strings.Split(result, "\n") {
		if strings.Contains(line, "could not") {
			g.Expect(strings.TrimSpace(line)).To(HaveSuffix("..."))
		}
	}
}

func TestTruncatePath(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(shared.TruncatePath("short", 10)).To(Equal("short"))
	g.Expect(shared.TruncatePath("a/very/long/path.txt", 10)).To(Equal("...ath.txt"))
	g.Expect(shared.TruncatePath("abc", 2)).To(Equal("abc"))
}
