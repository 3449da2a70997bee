package shared

import "github.com/joe/fileref/pkg/fileref"

// EntriesMsg carries one batch pulled from the scanner
type EntriesMsg struct {
	Entries []fileref.PathRef
	// Done is set on the last batch; Err and Skipped are only meaningful then
	Done    bool
	Err     error
	Skipped []error
}
