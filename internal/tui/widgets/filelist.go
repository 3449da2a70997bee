package widgets

import (
	"fmt"
	"strings"

	"github.com/joe/fileref/internal/tui/shared"
)

// Entry is one row of the entry list
type Entry struct {
	// RelativePath is the path below the scan root
	RelativePath string
	IsDir        bool
}

// EntryListView is what the entry list widget draws from
type EntryListView struct {
	Entries []Entry
	// Offset is the index of the first visible entry
	Offset int
	// Rows is the number of entries that fit
	Rows int
}

// NewEntryListWidget creates a widget that displays a window of scanned entries.
// Returns a closure that formats the list from the current view.
func NewEntryListWidget(getView func() EntryListView) func() string {
	return func() string {
		view := getView()
		if len(view.Entries) == 0 {
			return shared.RenderDim("(no entries)") + "\n"
		}

		rows := view.Rows
		if rows <= 0 {
			rows = shared.DefaultVisibleRows
		}

		start := min(max(view.Offset, 0), len(view.Entries)-1)
		end := min(start+rows, len(view.Entries))

		var builder strings.Builder

		for _, entry := range view.Entries[start:end] {
			fmt.Fprintf(&builder, "%s\n", shared.RenderEntry(entry.RelativePath, entry.IsDir))
		}

		if hidden := len(view.Entries) - end; hidden > 0 {
			fmt.Fprintf(&builder, "%s\n", shared.RenderDim(fmt.Sprintf("... %d more below", hidden)))
		}

		return builder.String()
	}
}
