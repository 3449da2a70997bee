//nolint:varnamelen,paralleltest // Tests swap the package host and cannot run in parallel
package fileref

import (
	"errors"
	"io/fs"
	"testing"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	pkgerrors "github.com/joe/fileref/pkg/errors"
	"github.com/joe/fileref/pkg/fileops"
	"github.com/joe/fileref/pkg/filesystem"
)

// useHost routes every host call through mock until the test ends.
func useHost(t *testing.T, mock filesystem.FileSystem) {
	t.Helper()

	prevHost, prevOps := host, ops
	host, ops = mock, fileops.NewFileOps(mock)

	t.Cleanup(func() {
		host, ops = prevHost, prevOps
	})
}

func unreadableTree(t *testing.T) *filesystem.MockFileSystem {
	t.Helper()

	mock := filesystem.NewMockFileSystem()
	mock.AddFile("root/a.txt", []byte("a"))
	mock.AddFile("root/bad/x.txt", []byte("x"))
	mock.AddFile("root/good/y.txt", []byte("y"))
	mock.FailReadDir("root/bad", fs.ErrPermission)
	useHost(t, mock)

	return mock
}

func paths(refs []PathRef) []string {
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		out = append(out, ref.Path())
	}

	return out
}

func TestScanner_AbortsOnUnreadableSubdirectory(t *testing.T) {
	g := NewWithT(t)
	unreadableTree(t)

	refs, err := New("root").ListFilesRecurse().Collect()

	g.Expect(paths(refs)).To(Equal([]string{"root/a.txt"}))
	g.Expect(errors.Is(err, fs.ErrPermission)).To(BeTrue())
	g.Expect(pkgerrors.KindOf(err)).To(Equal(pkgerrors.KindIO))
	g.Expect(err.Error()).To(HavePrefix(`could not list "root/bad"`))
}

func TestScanner_SkipUnreadableContinues(t *testing.T) {
	g := NewWithT(t)
	unreadableTree(t)

	scanner := New("root").ListFilesRecurse().SkipUnreadable()
	refs, err := scanner.Collect()

	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(paths(refs)).To(Equal([]string{"root/a.txt", "root/good/y.txt"}))
	g.Expect(scanner.Skipped()).To(HaveLen(1))
	g.Expect(errors.Is(scanner.Skipped()[0], fs.ErrPermission)).To(BeTrue())
}

func TestScanner_UnreadableRootAlwaysAborts(t *testing.T) {
	g := NewWithT(t)

	mock := filesystem.NewMockFileSystem()
	mock.AddDir("root")
	mock.FailReadDir("root", fs.ErrPermission)
	useHost(t, mock)

	scanner := New("root").ListFiles().SkipUnreadable()

	_, ok := scanner.Next()
	g.Expect(ok).To(BeFalse())
	g.Expect(errors.Is(scanner.Err(), fs.ErrPermission)).To(BeTrue())

	_, ok = scanner.Next()
	g.Expect(ok).To(BeFalse())
	g.Expect(errors.Is(scanner.Err(), fs.ErrPermission)).To(BeTrue())
}

func TestScanner_DirectoryRemovedMidScan(t *testing.T) {
	g := NewWithT(t)

	mock := filesystem.NewMockFileSystem()
	mock.AddFile("root/a.txt", []byte("a"))
	mock.AddFile("root/sub/b.txt", []byte("b"))
	useHost(t, mock)

	scanner := New("root").ListFilesRecurse()

	first, ok := scanner.Next()
	g.Expect(ok).To(BeTrue())
	g.Expect(first.Path()).To(Equal("root/a.txt"))

	g.Expect(mock.RemoveAll("root/sub")).To(Succeed())

	_, ok = scanner.Next()
	g.Expect(ok).To(BeFalse())
	g.Expect(errors.Is(scanner.Err(), pkgerrors.ErrNotFound)).To(BeTrue())
}

func TestScanner_ListsOneDirectoryPerStep(t *testing.T) {
	g := NewWithT(t)

	mock := filesystem.NewMockFileSystem()
	mock.AddFile("root/a.txt", []byte("a"))
	mock.AddFile("root/sub/b.txt", []byte("b"))
	useHost(t, mock)

	scanner := New("root").ListFilesRecurse()

	_, ok := scanner.Next()
	g.Expect(ok).To(BeTrue())
	g.Expect(scanner.pending).To(HaveLen(1))
	g.Expect(scanner.pending[0].ref.Path()).To(Equal("root/sub"))
	g.Expect(scanner.pending[0].depth).To(Equal(1))
}

func TestPathRef_HostFailuresAreIOErrors(t *testing.T) {
	g := NewWithT(t)

	mock := filesystem.NewMockFileSystem()
	mock.AddFile("locked/secret.txt", []byte("s"))
	mock.FailOpen("locked/secret.txt", fs.ErrPermission)
	useHost(t, mock)

	ref := New("locked/secret.txt")

	g.Expect(ref.Exists()).To(BeTrue())
	g.Expect(ref.IsAccessible()).To(BeFalse())

	_, err := ref.ReadBytes()
	g.Expect(pkgerrors.KindOf(err)).To(Equal(pkgerrors.KindIO))
	g.Expect(errors.Is(err, fs.ErrPermission)).To(BeTrue())

	err = ref.AppendBytes([]byte("more"))
	g.Expect(errors.Is(err, pkgerrors.ErrIO)).To(BeTrue())
}

func TestPathRef_OperationsAgainstMockHost(t *testing.T) {
	g := NewWithT(t)

	mock := filesystem.NewMockFileSystem()
	useHost(t, mock)

	file := New("a\\b\\c.txt")
	g.Expect(file.Create()).To(Succeed())
	g.Expect(mock.Exists("a/b")).To(BeTrue())

	g.Expect(file.Write("Hello, world!")).To(Succeed())
	g.Expect(file.WriteBytesToRange(15, []byte("!"))).To(Succeed())

	data, err := mock.GetFile("a/b/c.txt")
	g.Expect(err).ShouldNot(HaveOccurred())
	g.Expect(data).To(Equal([]byte("Hello, world!\x00\x00!")))

	g.Expect(New("a").Delete()).To(Succeed())
	g.Expect(mock.ListFiles()).To(BeEmpty())
}
