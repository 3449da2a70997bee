// Package fileref provides PathRef, a path value that knows how to split itself
// into segments, guess whether it names a file or a directory, and perform the
// common reads, writes and listings on the host filesystem.
//
// A PathRef always uses "/" as its separator. Any "\" handed to New or Static is
// rewritten, so two refs built from "dir\file.txt" and "dir/file.txt" are equal.
//
// Kind is decided by name alone: a final segment with a non-empty extension is a
// file, everything else is a directory. No filesystem call is made to decide it.
package fileref

import (
	"strings"

	pkgerrors "github.com/joe/fileref/pkg/errors"
	"github.com/joe/fileref/pkg/fileops"
	"github.com/joe/fileref/pkg/filesystem"
)

// Exported constants.
const (
	// Separator is the only segment separator a PathRef ever contains
	Separator = "/"
	// InvalidSeparator is rewritten to Separator on construction
	InvalidSeparator = "\\"
)

//nolint:gochecknoglobals // host seam, replaced only by tests
var (
	host filesystem.FileSystem = filesystem.NewRealFileSystem()
	ops                        = fileops.NewFileOps(host)
)

// PathRef is an immutable, normalized path.
//
// The zero value is the empty path. PathRefs are comparable with ==.
type PathRef struct {
	path string
}

// New returns a PathRef that owns its text. The result never shares memory
// with path, so it stays valid whatever the caller does with its buffer.
func New(path string) PathRef {
	if strings.Contains(path, InvalidSeparator) {
		return PathRef{path: strings.ReplaceAll(path, InvalidSeparator, Separator)}
	}

	return PathRef{path: strings.Clone(path)}
}

// Static returns a PathRef for a constant path without copying it.
// The text is still normalized, which only allocates when it contains "\".
func Static(path string) PathRef {
	return PathRef{path: strings.ReplaceAll(path, InvalidSeparator, Separator)}
}

// Path returns the normalized path text.
func (p PathRef) Path() string {
	return p.path
}

// String implements fmt.Stringer.
func (p PathRef) String() string {
	return p.path
}

// Equal reports whether p and other hold the same text.
func (p PathRef) Equal(other PathRef) bool {
	return p.path == other.path
}

// Compare orders refs by their text, returning -1, 0 or +1.
func (p PathRef) Compare(other PathRef) int {
	return strings.Compare(p.path, other.path)
}

// Nodes splits the path on Separator. Empty segments are kept, so "/a" yields
// ["", "a"] and the empty path yields [""].
func (p PathRef) Nodes() []string {
	return strings.Split(p.path, Separator)
}

// Name returns the last segment.
func (p PathRef) Name() string {
	return p.path[strings.LastIndex(p.path, Separator)+1:]
}

// Extension returns the text after the last "." of the final segment, and
// whether the segment has one at all. A single leading dot does not count, so
// ".gitignore" has no extension while "archive.tar.gz" has "gz".
func (p PathRef) Extension() (string, bool) {
	name := strings.TrimPrefix(p.Name(), ".")

	i := strings.LastIndex(name, ".")
	if i < 0 {
		return "", false
	}

	return name[i+1:], true
}

// FileNameNoExtension returns the final segment without its extension.
func (p PathRef) FileNameNoExtension() string {
	name := p.Name()

	ext, ok := p.Extension()
	if !ok {
		return name
	}

	return name[:len(name)-len(ext)-1]
}

// IsDir reports whether the path looks like a directory: its final segment has
// no extension, or an empty one ("name.").
func (p PathRef) IsDir() bool {
	ext, ok := p.Extension()

	return !ok || ext == ""
}

// IsFile is the negation of IsDir.
func (p PathRef) IsFile() bool {
	return !p.IsDir()
}

// ParentDir returns the path without its last segment.
// A path with a single segment has no parent and fails with ErrNoParent.
func (p PathRef) ParentDir() (PathRef, error) {
	i := strings.LastIndex(p.path, Separator)
	if i < 0 {
		return PathRef{}, pkgerrors.NewPathError(
			pkgerrors.KindNoParent, "get parent of", p.path, "only contains the file name")
	}

	return PathRef{path: p.path[:i]}, nil
}

// Add appends suffix verbatim, no separator inserted.
func (p PathRef) Add(suffix string) PathRef {
	return New(p.path + suffix)
}

// Join appends each node preceded by Separator.
func (p PathRef) Join(nodes ...string) PathRef {
	var b strings.Builder

	b.WriteString(p.path)

	for _, node := range nodes {
		b.WriteString(Separator)
		b.WriteString(node)
	}

	return New(b.String())
}

// Exists reports whether the path exists and its metadata can be read.
func (p PathRef) Exists() bool {
	_, err := host.Stat(p.path)

	return err == nil
}

// IsAccessible reports whether the path can be used. Directories are always
// accessible; files must open for reading.
func (p PathRef) IsAccessible() bool {
	if p.IsDir() {
		return true
	}

	file, err := host.Open(p.path)
	if err != nil {
		return false
	}

	_ = file.Close()

	return true
}

// child appends a directory entry name, avoiding a doubled separator when the
// directory ref already ends with one.
func (p PathRef) child(name string) PathRef {
	switch {
	case p.path == "":
		return PathRef{path: name}
	case strings.HasSuffix(p.path, Separator):
		return PathRef{path: p.path + name}
	default:
		return PathRef{path: p.path + Separator + name}
	}
}

// osPath is the text handed to the host. The empty path means the working
// directory for listings.
func (p PathRef) osPath() string {
	if p.path == "" {
		return "."
	}

	return p.path
}
