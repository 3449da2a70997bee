// Package fileops provides the byte-level read, write and copy primitives that
// path references are built on. It does no kind or existence checking of its
// own; callers decide whether an operation makes sense before calling in.
package fileops

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joe/fileref/pkg/filesystem"
)

// Exported constants.
const (
	// BufferSize is the size of the buffer used for file copy operations (64KB)
	BufferSize = 64 * 1024
)

// FileOps performs file I/O through an injectable filesystem.
type FileOps struct {
	FS filesystem.FileSystem
}

// NewFileOps creates a new FileOps instance with the given filesystem.
func NewFileOps(fs filesystem.FileSystem) *FileOps {
	return &FileOps{FS: fs}
}

// Append writes data at the end of an existing file.
func (fo *FileOps) Append(path string, data []byte) error {
	return fo.writeWith(path, os.O_WRONLY|os.O_APPEND, func(file filesystem.File) error {
		return writeFull(file, data)
	})
}

// CopyFile copies src to dst, creating or truncating dst. The parent of dst must exist.
// Returns the number of bytes copied.
func (fo *FileOps) CopyFile(src, dst string) (int64, error) {
	sourceFile, err := fo.FS.Open(src)
	if err != nil {
		return 0, fmt.Errorf("failed to open source file %s: %w", src, err)
	}

	defer func() {
		_ = sourceFile.Close()
	}()

	destFile, err := fo.FS.Create(dst)
	if err != nil {
		return 0, fmt.Errorf("failed to create destination file %s: %w", dst, err)
	}

	written, err := simpleCopyLoop(sourceFile, destFile)
	closeErr := destFile.Close()

	if err != nil {
		return written, fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}
	if closeErr != nil {
		return written, fmt.Errorf("failed to close destination file %s: %w", dst, closeErr)
	}

	return written, nil
}

// ReadAll reads the whole file.
func (fo *FileOps) ReadAll(path string) ([]byte, error) {
	file, err := fo.FS.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}

	defer func() {
		_ = file.Close()
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	return data, nil
}

// ReadRange reads exactly length bytes starting at offset.
// A file that ends early fails with io.ErrUnexpectedEOF in the chain. The
// file size is checked before the buffer is allocated.
func (fo *FileOps) ReadRange(path string, offset, length int64) ([]byte, error) {
	file, err := fo.FS.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}

	defer func() {
		_ = file.Close()
	}()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file %s: %w", path, err)
	}

	if offset < 0 || length < 0 || offset > info.Size() || length > info.Size()-offset {
		return nil, fmt.Errorf("failed to read %d bytes at %d from %s (size %d): %w",
			length, offset, path, info.Size(), io.ErrUnexpectedEOF)
	}

	_, err = file.Seek(offset, io.SeekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to seek to %d in %s: %w", offset, path, err)
	}

	buf := make([]byte, length)

	_, err = io.ReadFull(file, buf)
	if errors.Is(err, io.EOF) {
		// nothing at all past offset is still a short read
		err = io.ErrUnexpectedEOF
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %d bytes at %d from %s: %w", length, offset, path, err)
	}

	return buf, nil
}

// WriteAll replaces the contents of an existing file.
func (fo *FileOps) WriteAll(path string, data []byte) error {
	return fo.writeWith(path, os.O_WRONLY|os.O_TRUNC, func(file filesystem.File) error {
		return writeFull(file, data)
	})
}

// WriteAt overwrites bytes starting at offset without truncating the file.
// Writing past the end leaves whatever gap the host produces.
func (fo *FileOps) WriteAt(path string, offset int64, data []byte) error {
	return fo.writeWith(path, os.O_WRONLY, func(file filesystem.File) error {
		if _, err := file.Seek(offset, io.SeekStart); err != nil {
			return fmt.Errorf("failed to seek to %d: %w", offset, err)
		}

		return writeFull(file, data)
	})
}

// writeWith opens an existing file with flag, runs write and closes it,
// reporting the close error when write itself succeeded.
func (fo *FileOps) writeWith(path string, flag int, write func(filesystem.File) error) error {
	file, err := fo.FS.OpenFile(path, flag, filesystem.DefaultFilePermissions)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", path, err)
	}

	err = write(file)
	closeErr := file.Close()

	if err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close file %s: %w", path, closeErr)
	}

	return nil
}

func simpleCopyLoop(sourceFile, destFile filesystem.File) (int64, error) {
	var written int64

	buf := make([]byte, BufferSize)

	for {
		nr, err := sourceFile.Read(buf) //nolint:varnamelen // nr is idiomatic for bytes read
		if nr > 0 {
			nw, err := destFile.Write(buf[0:nr]) //nolint:varnamelen // nw is idiomatic for bytes written
			if err != nil {
				return written, fmt.Errorf("failed to write to destination: %w", err)
			}

			if nr != nw {
				return written, fmt.Errorf("short write: %w", io.ErrShortWrite)
			}

			written += int64(nw)
		}

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return written, fmt.Errorf("failed to read from source: %w", err)
		}
	}

	return written, nil
}

func writeFull(file filesystem.File, data []byte) error {
	n, err := file.Write(data)
	if err != nil {
		return err //nolint:wrapcheck // wrapped by writeWith with the path
	}

	if n != len(data) {
		return fmt.Errorf("short write: %w", io.ErrShortWrite)
	}

	return nil
}
