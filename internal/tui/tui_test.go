package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"taskboard/internal/board"
	"taskboard/internal/model"
)

func testColumns() []board.Column {
	return []board.Column{
		{Status: model.Status{ID: "s1", Name: "Open"}, Tasks: []model.Task{
			{ID: "t1", Title: "First", Priority: model.PriorityLow},
			{ID: "t2", Title: "Second", Priority: model.PriorityHigh},
		}},
		{Status: model.Status{ID: "s2", Name: "Doing"}},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	if !ok {
		t.Fatalf("update returned %T", next)
	}
	return out, cmd
}

func TestBoardMsg_SetsColumnsAndClampsCursor(t *testing.T) {
	m := Model{loading: true, col: 5, row: 9}
	m, _ = update(t, m, boardMsg{columns: testColumns()})

	if m.loading {
		t.Error("loading must clear")
	}
	if m.col != 1 {
		t.Errorf("col = %d, want clamped to last column", m.col)
	}
	if m.row != 0 {
		t.Errorf("row = %d, want clamped to empty column", m.row)
	}
}

func TestPickUpCard(t *testing.T) {
	m := Model{columns: testColumns()}
	m, _ = update(t, m, key(" "))

	if !m.drag.Active() {
		t.Fatal("space over a card must start a drag")
	}
	if m.drag.TaskID() != "t1" {
		t.Errorf("held card = %q, want t1", m.drag.TaskID())
	}
	if m.targetCol != 0 {
		t.Errorf("target col = %d, want the source column", m.targetCol)
	}
}

func TestDrag_TargetNavigation(t *testing.T) {
	m := Model{columns: testColumns()}
	m, _ = update(t, m, key(" "))
	m, _ = update(t, m, key("l"))

	if m.targetCol != 1 {
		t.Errorf("target col = %d, want 1", m.targetCol)
	}

	// Right edge is a wall
	m, _ = update(t, m, key("l"))
	if m.targetCol != 1 {
		t.Errorf("target col = %d, must stop at last column", m.targetCol)
	}
}

func TestDrag_EscCancelsWithoutCommand(t *testing.T) {
	m := Model{columns: testColumns()}
	m, _ = update(t, m, key(" "))

	m, cmd := update(t, m, key("esc"))
	if m.drag.Active() {
		t.Error("esc must cancel the drag")
	}
	if cmd != nil {
		t.Error("cancelled drag must not issue any command")
	}
}

func TestReloadDuringDrag_CancelsDrag(t *testing.T) {
	m := Model{columns: testColumns()}
	m, _ = update(t, m, key(" "))
	if !m.drag.Active() {
		t.Fatal("expected an active drag")
	}

	// A reload can land mid-drag (the r key stays live); fewer columns than
	// before must not leave stale drag indices behind.
	shrunk := []board.Column{
		{Status: model.Status{ID: "s2", Name: "Doing"}},
	}
	m, _ = update(t, m, boardMsg{columns: shrunk})
	if m.drag.Active() {
		t.Error("new columns must cancel the drag in progress")
	}

	// Space after the cancelled drag starts over from the clamped cursor
	// rather than completing the stale drop.
	m, cmd := update(t, m, key(" "))
	if cmd != nil {
		t.Error("no request may follow the cancelled drag")
	}
	if m.drag.Active() {
		t.Error("the shrunk column is empty; nothing to pick up")
	}
}

func TestDropWithStaleSourceColumnIsNoOp(t *testing.T) {
	// Drag indices pointing past the column list must not be dereferenced.
	m := Model{columns: testColumns(), dragFrom: 5, targetCol: 0}
	m.drag.Begin("t1")

	m, cmd := update(t, m, key(" "))
	if cmd != nil {
		t.Error("drop with a stale source column must issue no command")
	}
	if m.drag.Active() {
		t.Error("drag must return to idle")
	}
}

func TestPickUp_EmptyColumnIsNoOp(t *testing.T) {
	m := Model{columns: testColumns(), col: 1}
	m, _ = update(t, m, key(" "))
	if m.drag.Active() {
		t.Error("empty column has nothing to pick up")
	}
}

func TestCursorNavigation(t *testing.T) {
	m := Model{columns: testColumns()}
	m, _ = update(t, m, key("j"))
	if m.row != 1 {
		t.Errorf("row = %d, want 1", m.row)
	}
	m, _ = update(t, m, key("j"))
	if m.row != 1 {
		t.Errorf("row = %d, must stop at last card", m.row)
	}
	m, _ = update(t, m, key("l"))
	if m.col != 1 || m.row != 0 {
		t.Errorf("col,row = %d,%d; want 1,0 after column change clamp", m.col, m.row)
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	m := Model{columns: testColumns()}
	m, cmd := update(t, m, key("d"))
	if cmd != nil {
		t.Fatal("delete must not issue a request before confirmation")
	}
	if m.inputMode != InputConfirm || m.pendingDelete != "t1" {
		t.Errorf("input mode = %v pending = %q, want confirm for t1", m.inputMode, m.pendingDelete)
	}

	// Anything but y declines
	m, cmd = update(t, m, key("n"))
	if cmd != nil {
		t.Error("declined confirmation must not issue a request")
	}
	if m.inputMode != InputNone || m.pendingDelete != "" {
		t.Error("declined confirmation must reset input state")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 24); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("a very long task title here", 10); got != "a very ..." {
		t.Errorf("truncate = %q", got)
	}
}
