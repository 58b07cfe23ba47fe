package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/laneweave/laneweave/pkg/diagram/diff"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// DiffModel - Interactive diff browsing
// =============================================================================

// diffEntry is one browsable line of the delta.
type diffEntry struct {
	marker string // "+", "-", or "~"
	text   string
	detail []string // field changes for updated nodes
}

// DiffModel is the bubbletea model for browsing a structural diff.
type DiffModel struct {
	Summary string
	Entries []diffEntry
	Cursor  int
	Height  int
	Offset  int
}

// newDiffModel flattens a diff result into browsable entries, keeping the
// summary's fixed category order.
func newDiffModel(r *diff.Result) DiffModel {
	var entries []diffEntry

	for _, id := range r.NodesAdded {
		entries = append(entries, diffEntry{marker: "+", text: "node " + id})
	}
	for _, id := range r.NodesRemoved {
		entries = append(entries, diffEntry{marker: "-", text: "node " + id})
	}
	for _, ch := range r.NodesUpdated {
		var detail []string
		for field, fc := range ch.Fields {
			detail = append(detail, fmt.Sprintf("%s: %q %s %q", field, fc.Old, iconArrow, fc.New))
		}
		entries = append(entries, diffEntry{marker: "~", text: "node " + ch.ID, detail: detail})
	}
	for _, e := range r.EdgesAdded {
		entries = append(entries, diffEntry{marker: "+", text: fmt.Sprintf("edge %s %s %s", e.From, iconArrow, e.To)})
	}
	for _, e := range r.EdgesRemoved {
		entries = append(entries, diffEntry{marker: "-", text: fmt.Sprintf("edge %s %s %s", e.From, iconArrow, e.To)})
	}
	for _, id := range r.LanesAdded {
		entries = append(entries, diffEntry{marker: "+", text: "lane " + id})
	}
	for _, id := range r.LanesRemoved {
		entries = append(entries, diffEntry{marker: "-", text: "lane " + id})
	}

	return DiffModel{
		Summary: r.Summary,
		Entries: entries,
		Height:  15,
	}
}

func (m DiffModel) Init() tea.Cmd {
	return nil
}

func (m DiffModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m DiffModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Diagram Diff"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(m.Summary))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	if len(m.Entries) == 0 {
		b.WriteString(listDimStyle.Render("  nothing to show"))
		return b.String()
	}

	end := m.Offset + m.Height
	if end > len(m.Entries) {
		end = len(m.Entries)
	}

	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		style := markerStyle(e.marker)
		line := cursor + style.Render(e.marker+" "+e.text)
		if i == m.Cursor {
			line = cursor + listSelectedStyle.Render(e.marker+" "+e.text)
		}
		b.WriteString(line)
		b.WriteString("\n")

		if i == m.Cursor {
			for _, d := range e.detail {
				b.WriteString("      " + listDimStyle.Render(d) + "\n")
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entries))))

	return b.String()
}

func markerStyle(marker string) lipgloss.Style {
	switch marker {
	case "+":
		return StyleSuccess
	case "-":
		return StyleWarning
	default:
		return StyleHighlight
	}
}
