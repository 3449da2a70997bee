// Package tui is the interactive result browser for the fileref command.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/joe/fileref/internal/tui/shared"
	"github.com/joe/fileref/internal/tui/widgets"
	"github.com/joe/fileref/pkg/fileref"
)

// Browser pulls entries from a scanner a batch at a time and shows them in a
// scrollable, filterable list. Only one pull is ever in flight, so the scanner
// is never touched from two goroutines at once.
type Browser struct {
	scanner  *fileref.Scanner
	prefix   string
	entries  []widgets.Entry
	filter   textinput.Model
	spinner  spinner.Model
	scanning bool
	err      error
	skipped  []error
	offset   int
	width    int
	height   int
	quitting bool
}

// NewBrowser creates a browser over an unstarted scanner.
func NewBrowser(scanner *fileref.Scanner) *Browser {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(shared.PrimaryColor())

	filter := textinput.New()
	filter.Placeholder = "type to filter"
	filter.Prompt = shared.PromptArrow
	filter.Focus()

	prefix := scanner.Root().Path()
	if prefix != "" && !strings.HasSuffix(prefix, fileref.Separator) {
		prefix += fileref.Separator
	}

	return &Browser{
		scanner:  scanner,
		prefix:   prefix,
		filter:   filter,
		spinner:  spin,
		scanning: true,
	}
}

// Init implements tea.Model
func (b Browser) Init() tea.Cmd {
	return tea.Batch(
		b.spinner.Tick,
		textinput.Blink,
		b.pull(),
	)
}

// Update implements tea.Model
func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width = msg.Width
		b.height = msg.Height

		return b, nil
	case tea.KeyMsg:
		return b.handleKeyMsg(msg)
	case shared.EntriesMsg:
		return b.handleEntries(msg)
	case spinner.TickMsg:
		if !b.scanning {
			return b, nil
		}

		var cmd tea.Cmd
		b.spinner, cmd = b.spinner.Update(msg)

		return b, cmd
	}

	return b, nil
}

// View implements tea.Model
func (b Browser) View() string {
	if b.quitting {
		return ""
	}

	var builder strings.Builder

	builder.WriteString(shared.RenderTitle("fileref " + b.scanner.Root().Path()))
	builder.WriteString("\n")

	visible := b.visibleEntries()
	if b.scanning {
		fmt.Fprintf(&builder, "%s Scanning... %d entries\n", b.spinner.View(), len(b.entries))
	} else {
		fmt.Fprintf(&builder, "%s %d of %d entries\n", shared.RenderSuccess("Done."), len(visible), len(b.entries))
	}

	builder.WriteString(b.filter.View())
	builder.WriteString("\n\n")

	list := widgets.NewEntryListWidget(func() widgets.EntryListView {
		return widgets.EntryListView{Entries: visible, Offset: b.offset, Rows: b.rows()}
	})
	builder.WriteString(list())

	if b.err != nil {
		builder.WriteString("\n")
		builder.WriteString(shared.RenderBox(
			shared.RenderError("Scan stopped:") + "\n" +
				strings.TrimRight(shared.RenderActionableError(b.err, b.boxWidth()), "\n")))
		builder.WriteString("\n")
	}

	if len(b.skipped) > 0 {
		builder.WriteString("\n")
		builder.WriteString(shared.RenderWarning(fmt.Sprintf("Skipped %d unreadable director(ies):", len(b.skipped))))
		builder.WriteString("\n")
		builder.WriteString(shared.RenderErrorList(shared.ErrorListConfig{
			Errors:   b.skipped,
			Context:  shared.ContextInProgress,
			MaxWidth: b.width,
		}))
	}

	builder.WriteString("\n")
	builder.WriteString(shared.RenderDim("↑/↓ scroll • pgup/pgdn page • esc quit"))

	return builder.String()
}

func (b Browser) handleEntries(msg shared.EntriesMsg) (tea.Model, tea.Cmd) {
	for _, ref := range msg.Entries {
		b.entries = append(b.entries, widgets.Entry{
			RelativePath: strings.TrimPrefix(ref.Path(), b.prefix),
			IsDir:        ref.IsDir(),
		})
	}

	if !msg.Done {
		return b, b.pull()
	}

	b.scanning = false
	b.err = msg.Err
	b.skipped = msg.Skipped

	return b, nil
}

func (b Browser) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case shared.KeyCtrlC, shared.KeyEsc:
		b.quitting = true

		return b, tea.Quit
	case "up":
		b.offset = max(b.offset-1, 0)

		return b, nil
	case "down":
		b.offset = min(b.offset+1, max(len(b.visibleEntries())-1, 0))

		return b, nil
	case "pgup":
		b.offset = max(b.offset-b.rows(), 0)

		return b, nil
	case "pgdown":
		b.offset = min(b.offset+b.rows(), max(len(b.visibleEntries())-1, 0))

		return b, nil
	}

	var cmd tea.Cmd
	b.filter, cmd = b.filter.Update(msg)
	b.offset = 0

	return b, cmd
}

// pull takes the next batch from the scanner.
func (b Browser) pull() tea.Cmd {
	scanner := b.scanner

	return func() tea.Msg {
		batch := make([]fileref.PathRef, 0, shared.ScanBatchSize)

		for len(batch) < shared.ScanBatchSize {
			ref, ok := scanner.Next()
			if !ok {
				return shared.EntriesMsg{
					Entries: batch,
					Done:    true,
					Err:     scanner.Err(),
					Skipped: scanner.Skipped(),
				}
			}

			batch = append(batch, ref)
		}

		return shared.EntriesMsg{Entries: batch}
	}
}

// boxWidth is the text width left inside the error box, 0 when the window
// size is not known yet.
func (b Browser) boxWidth() int {
	if b.width <= shared.BoxChrome {
		return 0
	}

	return b.width - shared.BoxChrome
}

func (b Browser) rows() int {
	if b.height <= shared.ChromeRows {
		return shared.DefaultVisibleRows
	}

	return b.height - shared.ChromeRows
}

func (b Browser) visibleEntries() []widgets.Entry {
	needle := strings.ToLower(strings.TrimSpace(b.filter.Value()))
	if needle == "" {
		return b.entries
	}

	visible := make([]widgets.Entry, 0, len(b.entries))
	for _, entry := range b.entries {
		if strings.Contains(strings.ToLower(entry.RelativePath), needle) {
			visible = append(visible, entry)
		}
	}

	return visible
}
