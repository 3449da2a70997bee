package fileref

import (
	"iter"

	"github.com/denormal/go-gitignore"

	pkgerrors "github.com/joe/fileref/pkg/errors"
)

// Scanner is a lazy, single-use iterator over the entries below a root
// directory.
//
// Configure it with the builder methods, then call Next until it returns
// false, and check Err to tell the end of the scan from a failure:
//
//	s := fileref.New("src").ListFilesRecurse()
//	for ref, ok := s.Next(); ok; ref, ok = s.Next() {
//		...
//	}
//	if err := s.Err(); err != nil {
//		...
//	}
//
// Each directory is listed in one host call, sorted by name, and its handle is
// released before any of its entries are handed out, so abandoning a scan
// early leaks nothing. Entries come out one directory at a time in pre-order:
// a directory is yielded before anything beneath it.
//
// An entry's kind comes from its name, as with PathRef.IsDir. The scanner
// only descends into entries that look like directories and that the host
// also reports as directories, so symlinks are never followed.
type Scanner struct {
	root           PathRef
	includeFiles   bool
	includeDirs    bool
	recurse        bool
	maxDepth       int
	skipUnreadable bool
	keep           []EntryFilter
	prune          []EntryFilter
	configErr      error

	started bool
	done    bool
	err     error
	skipped []error
	pending []pendingDir
	ready   []PathRef
}

type pendingDir struct {
	ref   PathRef
	rel   string
	depth int
}

// NewScanner creates a scanner rooted at root that admits nothing and does
// not recurse until configured.
func NewScanner(root PathRef) *Scanner {
	return &Scanner{root: root}
}

// Root returns the directory the scan starts from.
func (s *Scanner) Root() PathRef {
	return s.root
}

// IncludeFiles admits file entries.
func (s *Scanner) IncludeFiles() *Scanner {
	s.mustConfigure("IncludeFiles")
	s.includeFiles = true

	return s
}

// IncludeDirs admits directory entries.
func (s *Scanner) IncludeDirs() *Scanner {
	s.mustConfigure("IncludeDirs")
	s.includeDirs = true

	return s
}

// Recurse descends into subdirectories.
func (s *Scanner) Recurse() *Scanner {
	s.mustConfigure("Recurse")
	s.recurse = true

	return s
}

// MaxDepth bounds recursion. Depth 1 is the root's own entries; 0 means no bound.
func (s *Scanner) MaxDepth(depth int) *Scanner {
	s.mustConfigure("MaxDepth")
	s.maxDepth = max(depth, 0)

	return s
}

// Matching only yields entries whose root-relative path matches the doublestar
// pattern, ignoring case. Non-matching directories are still descended into.
// A malformed pattern makes the first Next fail.
func (s *Scanner) Matching(pattern string) *Scanner {
	s.mustConfigure("Matching")

	filter := NewGlobFilter(pattern)
	if !filter.Valid() && s.configErr == nil {
		s.configErr = patternError(pattern)
	}

	s.keep = append(s.keep, filter)

	return s
}

// Ignoring drops entries matched by ignore, and never descends into ignored
// directories.
func (s *Scanner) Ignoring(ignore gitignore.GitIgnore) *Scanner {
	s.mustConfigure("Ignoring")
	s.prune = append(s.prune, NewIgnoreFilter(ignore))

	return s
}

// SkipUnreadable keeps going when a subdirectory cannot be listed, leaving it
// out. Without it the first listing failure ends the scan. A root that cannot
// be listed always ends the scan.
func (s *Scanner) SkipUnreadable() *Scanner {
	s.mustConfigure("SkipUnreadable")
	s.skipUnreadable = true

	return s
}

// Clone returns an unstarted scanner with the same configuration.
func (s *Scanner) Clone() *Scanner {
	return &Scanner{
		root:           s.root,
		includeFiles:   s.includeFiles,
		includeDirs:    s.includeDirs,
		recurse:        s.recurse,
		maxDepth:       s.maxDepth,
		skipUnreadable: s.skipUnreadable,
		keep:           append([]EntryFilter(nil), s.keep...),
		prune:          append([]EntryFilter(nil), s.prune...),
		configErr:      s.configErr,
	}
}

// Next advances to the next admitted entry.
// Returns (PathRef{}, false) when done or on error.
// Check Err() after Next() returns false to distinguish between end-of-scan and error.
// Once Next has returned false it keeps doing so.
func (s *Scanner) Next() (PathRef, bool) {
	if !s.started {
		s.start()
	}

	for !s.done {
		if len(s.ready) > 0 {
			ref := s.ready[0]
			s.ready = s.ready[1:]

			return ref, true
		}

		if len(s.pending) == 0 {
			s.finish(nil)

			break
		}

		dir := s.pending[len(s.pending)-1]
		s.pending = s.pending[:len(s.pending)-1]
		s.expand(dir)
	}

	return PathRef{}, false
}

// Err returns the error that ended the scan, if any.
// Should be checked after Next() returns false.
func (s *Scanner) Err() error {
	return s.err
}

// Skipped returns the listing failures SkipUnreadable stepped over so far.
func (s *Scanner) Skipped() []error {
	return s.skipped
}

// All adapts the scanner to a range-over-func loop. A failure is delivered as
// a final (PathRef{}, err) pair.
func (s *Scanner) All() iter.Seq2[PathRef, error] {
	return func(yield func(PathRef, error) bool) {
		for {
			ref, ok := s.Next()
			if !ok {
				if err := s.Err(); err != nil {
					yield(PathRef{}, err)
				}

				return
			}

			if !yield(ref, nil) {
				return
			}
		}
	}
}

// Collect drains the scanner. On failure it returns the entries yielded
// before the failure along with the error.
func (s *Scanner) Collect() ([]PathRef, error) {
	var refs []PathRef

	for ref, ok := s.Next(); ok; ref, ok = s.Next() {
		refs = append(refs, ref)
	}

	return refs, s.Err()
}

func (s *Scanner) start() {
	s.started = true

	switch {
	case s.configErr != nil:
		s.finish(s.configErr)
	case !s.includeFiles && !s.includeDirs:
		// nothing can ever be yielded
		s.finish(nil)
	default:
		s.pending = append(s.pending, pendingDir{ref: s.root})
	}
}

// expand lists one directory, queues the entries it admits and pushes the
// subdirectories to descend into.
func (s *Scanner) expand(dir pendingDir) {
	entries, err := host.ReadDir(dir.ref.osPath())
	if err != nil {
		if dir.depth > 0 && s.skipUnreadable {
			s.skipped = append(s.skipped, pkgerrors.FromHost("list", dir.ref.path, err))

			return
		}

		s.finish(pkgerrors.FromHost("list", dir.ref.path, err))

		return
	}

	depth := dir.depth + 1
	descend := s.recurse && (s.maxDepth == 0 || depth < s.maxDepth)

	var subdirs []pendingDir

	for _, entry := range entries {
		rel := entry.Name()
		if dir.rel != "" {
			rel = dir.rel + Separator + rel
		}

		if !passes(s.prune, rel, entry.IsDir()) {
			continue
		}

		ref := dir.ref.child(entry.Name())
		isDir := ref.IsDir()

		if s.admits(isDir) && passes(s.keep, rel, isDir) {
			s.ready = append(s.ready, ref)
		}

		if descend && isDir && entry.IsDir() {
			subdirs = append(subdirs, pendingDir{ref: ref, rel: rel, depth: depth})
		}
	}

	for i := len(subdirs) - 1; i >= 0; i-- {
		s.pending = append(s.pending, subdirs[i])
	}
}

func (s *Scanner) admits(isDir bool) bool {
	if isDir {
		return s.includeDirs
	}

	return s.includeFiles
}

func (s *Scanner) finish(err error) {
	s.done = true
	s.err = err
	s.pending = nil
	s.ready = nil
}

func (s *Scanner) mustConfigure(method string) {
	if s.started {
		panic("fileref: Scanner." + method + " called after the scan started")
	}
}

func passes(filters []EntryFilter, rel string, isDir bool) bool {
	for _, filter := range filters {
		if !filter.ShouldInclude(rel, isDir) {
			return false
		}
	}

	return true
}

// Scanner returns an unconfigured scanner rooted at p.
func (p PathRef) Scanner() *Scanner {
	return NewScanner(p)
}

// ListFiles scans the files directly inside p.
func (p PathRef) ListFiles() *Scanner {
	return NewScanner(p).IncludeFiles()
}

// ListFilesRecurse scans every file below p.
func (p PathRef) ListFilesRecurse() *Scanner {
	return NewScanner(p).IncludeFiles().Recurse()
}

// ListDirs scans the directories directly inside p.
func (p PathRef) ListDirs() *Scanner {
	return NewScanner(p).IncludeDirs()
}

// ListDirsRecurse scans every directory below p.
func (p PathRef) ListDirsRecurse() *Scanner {
	return NewScanner(p).IncludeDirs().Recurse()
}
