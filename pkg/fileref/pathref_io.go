package fileref

import (
	"fmt"
	"io"
	"math"
	"os"

	pkgerrors "github.com/joe/fileref/pkg/errors"
	"github.com/joe/fileref/pkg/filesystem"
)

// Read returns the whole file as a string.
func (p PathRef) Read() (string, error) {
	data, err := p.ReadBytes()
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// ReadBytes returns the whole file.
func (p PathRef) ReadBytes() ([]byte, error) {
	if err := p.requireFile("read"); err != nil {
		return nil, err
	}

	data, err := ops.ReadAll(p.path)
	if err != nil {
		return nil, pkgerrors.FromHost("read", p.path, err)
	}

	return data, nil
}

// ReadRange returns the bytes in [start, end). A file shorter than end fails
// with ErrIO. Passing end < start is a programming error and panics.
func (p PathRef) ReadRange(start, end uint64) ([]byte, error) {
	if end < start {
		panic(fmt.Sprintf("fileref: ReadRange end %d is before start %d", end, start))
	}

	if err := p.requireFile("read"); err != nil {
		return nil, err
	}

	if end > math.MaxInt64 {
		return nil, pkgerrors.FromHost("read", p.path,
			fmt.Errorf("range end %d is beyond any file: %w", end, io.ErrUnexpectedEOF))
	}

	data, err := ops.ReadRange(p.path, int64(start), int64(end-start)) //nolint:gosec // both fit in int64 after the check above
	if err != nil {
		return nil, pkgerrors.FromHost("read", p.path, err)
	}

	return data, nil
}

// GuaranteeExists creates the path if it is missing. An existing path is left alone.
func (p PathRef) GuaranteeExists() error {
	if p.Exists() {
		return nil
	}

	return p.Create()
}

// GuaranteeParentDir creates every missing ancestor directory. Ancestors are
// always created as directories, whatever their names look like. A bare name
// lives in the working directory, so there is nothing to create for it.
func (p PathRef) GuaranteeParentDir() error {
	parent, err := p.ParentDir()
	if err != nil {
		return nil //nolint:nilerr // no parent segment means the working directory
	}

	if parent.path == "" || parent.Exists() {
		return nil
	}

	if err := host.MkdirAll(parent.path, filesystem.DefaultDirPermissions); err != nil {
		return pkgerrors.FromHost("create parent of", p.path, err)
	}

	return nil
}

// Create makes a new empty file or directory, depending on IsDir, after
// guaranteeing its parent. An existing path fails with ErrAlreadyExists.
func (p PathRef) Create() error {
	if p.Exists() {
		return pkgerrors.NewPathError(pkgerrors.KindAlreadyExists, "create", p.path, p.kindName()+" already exists")
	}

	if err := p.GuaranteeParentDir(); err != nil {
		return err
	}

	if p.IsDir() {
		if err := host.Mkdir(p.path, filesystem.DefaultDirPermissions); err != nil {
			return pkgerrors.FromHost("create", p.path, err)
		}

		return nil
	}

	file, err := host.OpenFile(p.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filesystem.DefaultFilePermissions)
	if err != nil {
		return pkgerrors.FromHost("create", p.path, err)
	}

	if err := file.Close(); err != nil {
		return pkgerrors.FromHost("create", p.path, err)
	}

	return nil
}

// Write replaces the contents of an existing file with contents.
func (p PathRef) Write(contents string) error {
	return p.WriteBytes([]byte(contents))
}

// WriteBytes replaces the contents of an existing file with data.
func (p PathRef) WriteBytes(data []byte) error {
	if err := p.requireFile("write to"); err != nil {
		return err
	}

	if err := ops.WriteAll(p.path, data); err != nil {
		return pkgerrors.FromHost("write to", p.path, err)
	}

	return nil
}

// WriteBytesToRange overwrites len(data) bytes starting at start without
// truncating. Writing past the end grows the file; the host decides what fills
// the gap (zeros on POSIX).
func (p PathRef) WriteBytesToRange(start uint64, data []byte) error {
	if err := p.requireFile("write to"); err != nil {
		return err
	}

	if err := ops.WriteAt(p.path, int64(start), data); err != nil { //nolint:gosec // offsets fit the host's off_t
		return pkgerrors.FromHost("write to", p.path, err)
	}

	return nil
}

// AppendBytes adds data at the end of the file, creating it when missing.
func (p PathRef) AppendBytes(data []byte) error {
	if p.IsDir() {
		return p.invalidForDir("append to")
	}

	if err := p.GuaranteeExists(); err != nil {
		return err
	}

	if err := ops.Append(p.path, data); err != nil {
		return pkgerrors.FromHost("append to", p.path, err)
	}

	return nil
}

// CopyTo copies the file to target, creating target's parent directories and
// replacing target if it exists. Returns the number of bytes copied.
// Copying a file onto itself fails with ErrInvalidOperationForKind and leaves
// the file untouched.
func (p PathRef) CopyTo(target PathRef) (int64, error) {
	if err := p.requireFile("copy"); err != nil {
		return 0, err
	}

	if target.Equal(p) {
		return 0, pkgerrors.NewPathError(pkgerrors.KindInvalidOperation, "copy", p.path,
			"source and target are the same file")
	}

	if err := target.GuaranteeParentDir(); err != nil {
		return 0, err
	}

	written, err := ops.CopyFile(p.path, target.path)
	if err != nil {
		return written, pkgerrors.FromHost("copy", p.path, err)
	}

	return written, nil
}

// Delete removes the path. Directories are removed with everything under them.
func (p PathRef) Delete() error {
	var err error
	if p.IsDir() {
		err = host.RemoveAll(p.path)
	} else {
		err = host.Remove(p.path)
	}

	if err != nil {
		return pkgerrors.FromHost("delete", p.path, err)
	}

	return nil
}

// requireFile checks kind first, then existence.
func (p PathRef) requireFile(op string) error {
	if p.IsDir() {
		return p.invalidForDir(op)
	}

	if !p.Exists() {
		return pkgerrors.NewPathError(pkgerrors.KindNotFound, op, p.path, "file does not exist")
	}

	return nil
}

func (p PathRef) invalidForDir(op string) error {
	return pkgerrors.NewPathError(pkgerrors.KindInvalidOperation, op, p.path, "only able to "+op+" files")
}

func (p PathRef) kindName() string {
	if p.IsDir() {
		return "dir"
	}

	return "file"
}
