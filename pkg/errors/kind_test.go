package errors_test

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	pkgerrors "github.com/joe/fileref/pkg/errors"
)

func TestKind_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind     pkgerrors.Kind
		expected string
	}{
		{pkgerrors.KindIO, "io"},
		{pkgerrors.KindInvalidOperation, "invalid-operation"},
		{pkgerrors.KindNotFound, "not-found"},
		{pkgerrors.KindAlreadyExists, "already-exists"},
		{pkgerrors.KindNoParent, "no-parent"},
		{pkgerrors.Kind(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.expected)
		}
	}
}

func TestPathError_IsMatchesKindSentinel(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	err := pkgerrors.NewPathError(pkgerrors.KindNotFound, "read", "dir/file.txt", "file does not exist")

	g.Expect(errors.Is(err, pkgerrors.ErrNotFound)).To(BeTrue())
	g.Expect(errors.Is(err, pkgerrors.ErrAlreadyExists)).To(BeFalse())
	g.Expect(err.Error()).To(Equal(`could not read "dir/file.txt": file does not exist`))
}

func TestFromHost_KeepsHostError(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	host := &fs.PathError{Op: "open", Path: "secret.txt", Err: fs.ErrPermission}
	err := pkgerrors.FromHost("read", "secret.txt", host)

	g.Expect(errors.Is(err, pkgerrors.ErrIO)).To(BeTrue())
	g.Expect(errors.Is(err, fs.ErrPermission)).To(BeTrue())
	g.Expect(err.Error()).To(ContainSubstring("permission denied"))
	g.Expect(pkgerrors.FromHost("read", "x.txt", nil)).To(Succeed())
}

func TestFromHost_ClassifiesByHostError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want pkgerrors.Kind
	}{
		{name: "missing", err: fmt.Errorf("failed to open file a: %w", fs.ErrNotExist), want: pkgerrors.KindNotFound},
		{name: "existing", err: &fs.PathError{Op: "mkdir", Path: "a", Err: fs.ErrExist}, want: pkgerrors.KindAlreadyExists},
		{name: "permission", err: fs.ErrPermission, want: pkgerrors.KindIO},
		{name: "short read", err: io.ErrUnexpectedEOF, want: pkgerrors.KindIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := NewWithT(t)

			g.Expect(pkgerrors.KindOf(pkgerrors.FromHost("read", "a", tt.err))).To(Equal(tt.want))
		})
	}
}

func TestKindOf(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	wrapped := pkgerrors.NewPathError(pkgerrors.KindNoParent, "get parent of", "file.txt", "")
	g.Expect(pkgerrors.KindOf(wrapped)).To(Equal(pkgerrors.KindNoParent))
	g.Expect(pkgerrors.KindOf(errors.New("plain"))).To(Equal(pkgerrors.KindIO))
	g.Expect(wrapped.Error()).To(Equal(`could not get parent of "file.txt": no parent directory`))
}
