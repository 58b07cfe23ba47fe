package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/laneweave/laneweave/pkg/diagram/diff"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestDiffModelEntries(t *testing.T) {
	r := diff.Diff(
		"a {\nn1: circle label:\"Start\"\nn2: circle\n}",
		"a {\nn1: circle label:\"Begin\"\nn3: circle\n}\nb {\n}",
	)
	m := newDiffModel(r)

	// 1 added + 1 removed + 1 updated node, 1 added lane
	if len(m.Entries) != 4 {
		t.Fatalf("entries = %d: %+v", len(m.Entries), m.Entries)
	}
	if m.Summary != r.Summary {
		t.Errorf("summary = %q", m.Summary)
	}
}

func TestDiffModelNavigation(t *testing.T) {
	r := diff.Diff("", "n1: circle\nn2: circle\nn3: circle")
	m := newDiffModel(r)

	next, _ := m.Update(keyMsg("down"))
	m = next.(DiffModel)
	if m.Cursor != 1 {
		t.Errorf("cursor = %d after down", m.Cursor)
	}

	next, _ = m.Update(keyMsg("up"))
	m = next.(DiffModel)
	if m.Cursor != 0 {
		t.Errorf("cursor = %d after up", m.Cursor)
	}

	// Up at the top stays put.
	next, _ = m.Update(keyMsg("up"))
	m = next.(DiffModel)
	if m.Cursor != 0 {
		t.Errorf("cursor = %d after up at top", m.Cursor)
	}

	// q quits.
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Error("q should produce a quit command")
	}
}

func TestDiffModelView(t *testing.T) {
	r := diff.Diff("n1: circle", "n2: circle")
	m := newDiffModel(r)

	view := m.View()
	if !strings.Contains(view, "node n2") || !strings.Contains(view, "node n1") {
		t.Errorf("view missing entries:\n%s", view)
	}
	if !strings.Contains(view, m.Summary) {
		t.Error("view missing summary")
	}
}

func TestDiffModelEmpty(t *testing.T) {
	m := newDiffModel(diff.Diff("x", "x"))
	if len(m.Entries) != 0 {
		t.Fatalf("entries = %+v", m.Entries)
	}
	if !strings.Contains(m.View(), "nothing to show") {
		t.Error("empty view should say so")
	}
}
