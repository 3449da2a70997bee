package filesystem

import (
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"time"
)

// Exported variables.
var (
	ErrIsDirectory    = errors.New("is a directory")
	ErrNotDirectory   = errors.New("not a directory")
	ErrDirNotEmpty    = errors.New("directory not empty")
	ErrBadDescriptor  = errors.New("bad file descriptor")
	ErrInvalidSeekPos = errors.New("invalid argument")
)

// MockFileSystem is an in-memory filesystem for tests.
// Paths use forward slashes; "." and "/" always exist as directories.
type MockFileSystem struct {
	mu    sync.RWMutex
	files map[string]*mockFile

	// injected failures, keyed by cleaned path
	readDirFailures map[string]error
	openFailures    map[string]error
}

// mockFile represents a file or directory in the mock filesystem.
type mockFile struct {
	data    []byte
	modTime time.Time
	isDir   bool
	perm    os.FileMode
}

// mockFileInfo implements os.FileInfo for mock files.
type mockFileInfo struct {
	name    string
	size    int64
	modTime time.Time
	isDir   bool
	perm    os.FileMode
}

func (fi *mockFileInfo) Name() string       { return fi.name }
func (fi *mockFileInfo) Size() int64        { return fi.size }
func (fi *mockFileInfo) ModTime() time.Time { return fi.modTime }
func (fi *mockFileInfo) IsDir() bool        { return fi.isDir }
func (fi *mockFileInfo) Sys() interface{}   { return nil }

func (fi *mockFileInfo) Mode() os.FileMode {
	if fi.isDir {
		return fi.perm | os.ModeDir
	}

	return fi.perm
}

// mockFileHandle implements File over a private copy of the file contents.
// Writes become visible to the filesystem on Close.
type mockFileHandle struct {
	fs       *MockFileSystem
	path     string
	data     []byte
	pos      int64
	readable bool
	writable bool
	append   bool
	dirty    bool
	closed   bool
}

func (f *mockFileHandle) Read(p []byte) (int, error) {
	if f.closed {
		return 0, os.ErrClosed
	}
	if !f.readable {
		return 0, &os.PathError{Op: "read", Path: f.path, Err: ErrBadDescriptor}
	}
	if f.pos >= int64(len(f.data)) {
		return 0, io.EOF
	}

	n := copy(p, f.data[f.pos:])
	f.pos += int64(n)

	return n, nil
}

func (f *mockFileHandle) Write(p []byte) (int, error) {
	if f.closed {
		return 0, os.ErrClosed
	}
	if !f.writable {
		return 0, &os.PathError{Op: "write", Path: f.path, Err: ErrBadDescriptor}
	}
	if f.append {
		f.pos = int64(len(f.data))
	}

	end := f.pos + int64(len(p))
	if end > int64(len(f.data)) {
		// like the host, a write past the end leaves a zero gap
		grown := make([]byte, end)
		copy(grown, f.data)
		f.data = grown
	}

	copy(f.data[f.pos:], p)
	f.pos = end
	f.dirty = true

	return len(p), nil
}

func (f *mockFileHandle) Seek(offset int64, whence int) (int64, error) {
	if f.closed {
		return 0, os.ErrClosed
	}

	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = f.pos + offset
	case io.SeekEnd:
		next = int64(len(f.data)) + offset
	default:
		return 0, &os.PathError{Op: "seek", Path: f.path, Err: ErrInvalidSeekPos}
	}

	if next < 0 {
		return 0, &os.PathError{Op: "seek", Path: f.path, Err: ErrInvalidSeekPos}
	}

	f.pos = next

	return next, nil
}

func (f *mockFileHandle) Close() error {
	if f.closed {
		return os.ErrClosed
	}
	f.closed = true

	if !f.dirty {
		return nil
	}

	f.fs.mu.Lock()
	defer f.fs.mu.Unlock()

	if file, exists := f.fs.files[f.path]; exists {
		file.data = f.data
		file.modTime = time.Now()
	}

	return nil
}

func (f *mockFileHandle) Stat() (os.FileInfo, error) {
	if f.closed {
		return nil, os.ErrClosed
	}

	return &mockFileInfo{
		name:    path.Base(f.path),
		size:    int64(len(f.data)),
		modTime: time.Now(),
		perm:    DefaultFilePermissions,
	}, nil
}

// NewMockFileSystem creates a new in-memory filesystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files:           make(map[string]*mockFile),
		readDirFailures: make(map[string]error),
		openFailures:    make(map[string]error),
	}
}

// Create creates or truncates a file for writing. The parent must exist.
func (fs *MockFileSystem) Create(name string) (File, error) {
	return fs.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_TRUNC, DefaultFilePermissions)
}

// Mkdir creates a single directory. The parent must exist.
func (fs *MockFileSystem) Mkdir(name string, perm os.FileMode) error {
	name = path.Clean(name)

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.existsLocked(name) {
		return &os.PathError{Op: "mkdir", Path: name, Err: os.ErrExist}
	}
	if err := fs.checkParentLocked("mkdir", name); err != nil {
		return err
	}

	fs.files[name] = &mockFile{modTime: time.Now(), isDir: true, perm: perm}

	return nil
}

// MkdirAll creates a directory and all necessary parents.
func (fs *MockFileSystem) MkdirAll(name string, perm os.FileMode) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	return fs.mkdirAllLocked(path.Clean(name), perm)
}

// Open opens a file for reading.
func (fs *MockFileSystem) Open(name string) (File, error) {
	return fs.OpenFile(name, os.O_RDONLY, 0)
}

// OpenFile opens a file with os.OpenFile flag semantics.
//
//nolint:cyclop // Mirrors the flag combinations of os.OpenFile
func (fs *MockFileSystem) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	name = path.Clean(name)

	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err, failing := fs.openFailures[name]; failing {
		return nil, &os.PathError{Op: "open", Path: name, Err: err}
	}

	access := flag & (os.O_RDONLY | os.O_WRONLY | os.O_RDWR)
	writable := access == os.O_WRONLY || access == os.O_RDWR

	file, exists := fs.files[name]
	switch {
	case !exists && isRoot(name):
		return nil, &os.PathError{Op: "open", Path: name, Err: ErrIsDirectory}
	case !exists && flag&os.O_CREATE == 0:
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrNotExist}
	case !exists:
		if err := fs.checkParentLocked("open", name); err != nil {
			return nil, err
		}
		file = &mockFile{modTime: time.Now(), perm: perm}
		fs.files[name] = file
	case flag&os.O_CREATE != 0 && flag&os.O_EXCL != 0:
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrExist}
	case file.isDir:
		return nil, &os.PathError{Op: "open", Path: name, Err: ErrIsDirectory}
	}

	handle := &mockFileHandle{
		fs:       fs,
		path:     name,
		data:     append([]byte(nil), file.data...),
		readable: !writable || access == os.O_RDWR,
		writable: writable,
		append:   flag&os.O_APPEND != 0,
	}

	if flag&os.O_TRUNC != 0 && writable {
		handle.data = nil
		handle.dirty = true
		file.data = nil
	}

	return handle, nil
}

// ReadDir lists a directory sorted by name.
func (fs *MockFileSystem) ReadDir(name string) ([]os.DirEntry, error) {
	name = path.Clean(name)

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	if err, failing := fs.readDirFailures[name]; failing {
		return nil, &os.PathError{Op: "open", Path: name, Err: err}
	}

	if !isRoot(name) {
		dir, exists := fs.files[name]
		if !exists {
			return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrNotExist}
		}
		if !dir.isDir {
			return nil, &os.PathError{Op: "readdirent", Path: name, Err: ErrNotDirectory}
		}
	}

	entries := make([]os.DirEntry, 0)
	for p, file := range fs.files {
		if p == name || path.Dir(p) != name {
			continue
		}
		entries = append(entries, iofs.FileInfoToDirEntry(infoFor(p, file)))
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	return entries, nil
}

// Remove removes a file or empty directory.
func (fs *MockFileSystem) Remove(name string) error {
	name = path.Clean(name)

	fs.mu.Lock()
	defer fs.mu.Unlock()

	file, exists := fs.files[name]
	if !exists {
		return &os.PathError{Op: "remove", Path: name, Err: os.ErrNotExist}
	}

	if file.isDir {
		for p := range fs.files {
			if isBeneath(name, p) {
				return &os.PathError{Op: "remove", Path: name, Err: ErrDirNotEmpty}
			}
		}
	}

	delete(fs.files, name)

	return nil
}

// RemoveAll removes a path and everything beneath it. A missing path is not an error.
func (fs *MockFileSystem) RemoveAll(name string) error {
	name = path.Clean(name)

	fs.mu.Lock()
	defer fs.mu.Unlock()

	for p := range fs.files {
		if p == name || isBeneath(name, p) {
			delete(fs.files, p)
		}
	}

	return nil
}

// Stat returns file information.
func (fs *MockFileSystem) Stat(name string) (os.FileInfo, error) {
	name = path.Clean(name)

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	if isRoot(name) {
		return &mockFileInfo{name: name, isDir: true, perm: DefaultDirPermissions}, nil
	}

	file, exists := fs.files[name]
	if !exists {
		return nil, &os.PathError{Op: "stat", Path: name, Err: os.ErrNotExist}
	}

	return infoFor(name, file), nil
}

// Helper methods for testing

// AddFile adds a file with the given content, creating parent directories.
func (fs *MockFileSystem) AddFile(name string, content []byte) {
	name = path.Clean(name)

	fs.mu.Lock()
	defer fs.mu.Unlock()

	_ = fs.mkdirAllLocked(path.Dir(name), DefaultDirPermissions)

	fs.files[name] = &mockFile{
		data:    append([]byte(nil), content...),
		modTime: time.Now(),
		perm:    DefaultFilePermissions,
	}
}

// AddDir adds a directory, creating parent directories.
func (fs *MockFileSystem) AddDir(name string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	_ = fs.mkdirAllLocked(path.Clean(name), DefaultDirPermissions)
}

// GetFile retrieves a file's content.
func (fs *MockFileSystem) GetFile(name string) ([]byte, error) {
	name = path.Clean(name)

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	file, exists := fs.files[name]
	if !exists {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrNotExist}
	}

	if file.isDir {
		return nil, &os.PathError{Op: "read", Path: name, Err: ErrIsDirectory}
	}

	return append([]byte(nil), file.data...), nil
}

// Exists checks if a path exists.
func (fs *MockFileSystem) Exists(name string) bool {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	return fs.existsLocked(path.Clean(name))
}

// FailReadDir makes every later ReadDir of name fail with err.
func (fs *MockFileSystem) FailReadDir(name string, err error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.readDirFailures[path.Clean(name)] = err
}

// FailOpen makes every later Open/OpenFile of name fail with err.
func (fs *MockFileSystem) FailOpen(name string, err error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.openFailures[path.Clean(name)] = err
}

// ListFiles returns all paths in the mock filesystem, sorted.
func (fs *MockFileSystem) ListFiles() []string {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	paths := make([]string, 0, len(fs.files))
	for p := range fs.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	return paths
}

func (fs *MockFileSystem) existsLocked(name string) bool {
	if isRoot(name) {
		return true
	}

	_, exists := fs.files[name]

	return exists
}

// checkParentLocked fails unless the parent of name is an existing directory.
func (fs *MockFileSystem) checkParentLocked(op, name string) error {
	parent := path.Dir(name)
	if isRoot(parent) {
		return nil
	}

	dir, exists := fs.files[parent]
	if !exists {
		return &os.PathError{Op: op, Path: name, Err: os.ErrNotExist}
	}
	if !dir.isDir {
		return &os.PathError{Op: op, Path: name, Err: ErrNotDirectory}
	}

	return nil
}

// mkdirAllLocked is the internal implementation that assumes the lock is held.
func (fs *MockFileSystem) mkdirAllLocked(name string, perm os.FileMode) error {
	if isRoot(name) {
		return nil
	}

	if err := fs.mkdirAllLocked(path.Dir(name), perm); err != nil {
		return err
	}

	if file, exists := fs.files[name]; exists {
		if !file.isDir {
			return &os.PathError{Op: "mkdir", Path: name, Err: ErrNotDirectory}
		}

		return nil
	}

	fs.files[name] = &mockFile{modTime: time.Now(), isDir: true, perm: perm}

	return nil
}

func infoFor(name string, file *mockFile) *mockFileInfo {
	return &mockFileInfo{
		name:    path.Base(name),
		size:    int64(len(file.data)),
		modTime: file.modTime,
		isDir:   file.isDir,
		perm:    file.perm,
	}
}

func isRoot(name string) bool {
	return name == "." || name == "/"
}

// isBeneath reports whether p lies strictly below dir.
func isBeneath(dir, p string) bool {
	if dir == "." {
		return p != "." && !strings.HasPrefix(p, "/")
	}
	if dir == "/" {
		return p != "/" && strings.HasPrefix(p, "/")
	}

	return strings.HasPrefix(p, dir+"/")
}
