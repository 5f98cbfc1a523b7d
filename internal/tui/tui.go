// Package tui renders the interactive Kanban board using Bubble Tea.
//
// One column per status, cards per column. A card is picked up with space or
// enter, carried left/right across columns, and dropped with space/enter
// again; esc cancels the drag without issuing a request.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskboard/internal/api"
	"taskboard/internal/board"
	"taskboard/internal/forms"
	"taskboard/internal/model"
	"taskboard/internal/session"
)

// InputMode represents what kind of text input is active.
type InputMode int

const (
	InputNone    InputMode = iota
	InputCreate            // Entering new task title
	InputConfirm           // Confirming a delete (y/n)
)

// Priority icons
const (
	iconLow    = "▁"
	iconMedium = "▄"
	iconHigh   = "█"
)

// Layout constants
const (
	minColumnWidth = 24
	contentPadding = 1
)

// Model is the main Bubble Tea model for the board.
type Model struct {
	board *board.Board
	sess  *session.Manager
	api   *api.Client

	columns []board.Column
	col     int // cursor column
	row     int // cursor row within column

	// Drag state
	drag      board.Drag
	dragFrom  int // column the held card came from
	targetCol int // column the card would drop into

	// Input state
	inputMode     InputMode
	inputText     string
	inputLabel    string
	pendingDelete string

	// UI state
	width   int
	height  int
	loading bool
	err     error
	message string
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	columnTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39"))

	selectedCardStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	heldCardStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	priorityColors = map[model.Priority]lipgloss.Color{
		model.PriorityLow:    lipgloss.Color("42"),
		model.PriorityMedium: lipgloss.Color("214"),
		model.PriorityHigh:   lipgloss.Color("196"),
	}

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	columnBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1)

	targetColumnBorder = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("214")).
				Padding(0, 1)
)

func priorityIcon(p model.Priority) string {
	switch p {
	case model.PriorityLow:
		return iconLow
	case model.PriorityMedium:
		return iconMedium
	case model.PriorityHigh:
		return iconHigh
	default:
		return "?"
	}
}

// New creates the board TUI model.
func New(b *board.Board, sess *session.Manager, client *api.Client) Model {
	return Model{
		board:   b,
		sess:    sess,
		api:     client,
		loading: true,
	}
}

// Messages
type boardMsg struct {
	columns []board.Column
	err     error
}

type actionMsg struct {
	message string
	err     error
	reload  bool
}

// loadBoard fetches statuses and tasks and repartitions the columns.
func (m Model) loadBoard() tea.Cmd {
	b := m.board
	return func() tea.Msg {
		if err := b.LoadData(context.Background()); err != nil {
			return boardMsg{err: err}
		}
		return boardMsg{columns: b.Columns()}
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.loadBoard()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Clear transient feedback on any key
		m.message = ""
		m.err = nil
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case boardMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.columns = msg.columns
		// New columns invalidate a drag in progress; the held card or its
		// source column may no longer exist.
		if m.drag.Active() {
			m.drag.Cancel()
			m.dragFrom = 0
			m.targetCol = 0
		}
		m.clampCursor()
		return m, nil

	case actionMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.message = msg.message
		}
		if msg.reload {
			return m, m.loadBoard()
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.inputMode != InputNone {
		return m.handleInputKey(msg)
	}
	return m.handleBoardKey(msg)
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.inputMode == InputConfirm {
		switch msg.String() {
		case "y", "Y":
			id := m.pendingDelete
			m.inputMode = InputNone
			m.pendingDelete = ""
			client := m.api
			return m, func() tea.Msg {
				if err := client.DeleteTask(context.Background(), id); err != nil {
					return actionMsg{err: err}
				}
				return actionMsg{message: "Task deleted", reload: true}
			}
		default:
			m.inputMode = InputNone
			m.pendingDelete = ""
			return m, nil
		}
	}

	switch msg.String() {
	case "esc":
		m.inputMode = InputNone
		m.inputText = ""
		return m, nil

	case "enter":
		return m.submitInput()

	case "backspace":
		if len(m.inputText) > 0 {
			m.inputText = m.inputText[:len(m.inputText)-1]
		}

	default:
		if len(msg.String()) == 1 {
			m.inputText += msg.String()
		}
	}
	return m, nil
}

// submitInput creates a task in the cursor's column from the entered title.
// The full editor lives in the CLI; the board offers only this quick-create.
func (m Model) submitInput() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.inputText)
	m.inputMode = InputNone
	m.inputText = ""

	if text == "" || len(m.columns) == 0 {
		return m, nil
	}
	statusID := m.columns[m.col].Status.ID
	viewer, _ := m.sess.User()
	client := m.api

	// Quick-create collects only a title; the remaining fields get the
	// board defaults. The full editor lives behind the CLI commands.
	editor := forms.NewTaskEditor(client, viewer, nil)
	editor.Form = forms.TaskForm{
		Title:       text,
		Description: "Created from board",
		DueDate:     time.Now().UTC().Format("2006-01-02T15:04:05.000Z"),
		Priority:    string(model.PriorityMedium),
		Status:      statusID,
		Assignee:    viewer.ID,
	}

	return m, func() tea.Msg {
		if fieldErrs, err := editor.Submit(context.Background()); err != nil {
			return actionMsg{err: err}
		} else if len(fieldErrs) > 0 {
			return actionMsg{err: fmt.Errorf("%s", firstError(fieldErrs))}
		}
		return actionMsg{message: fmt.Sprintf("Created %q", text), reload: true}
	}
}

func firstError(fieldErrs forms.FieldErrors) string {
	for _, msg := range fieldErrs {
		return msg
	}
	return api.FallbackMessage
}

func (m Model) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "esc":
		if m.drag.Active() {
			// Cancelled drag: pure no-op
			m.drag.Cancel()
			m.message = "Move cancelled"
			return m, nil
		}
		return m, tea.Quit

	case "left", "h":
		if m.drag.Active() {
			if m.targetCol > 0 {
				m.targetCol--
			}
		} else if m.col > 0 {
			m.col--
			m.clampCursor()
		}

	case "right", "l":
		if m.drag.Active() {
			if m.targetCol < len(m.columns)-1 {
				m.targetCol++
			}
		} else if m.col < len(m.columns)-1 {
			m.col++
			m.clampCursor()
		}

	case "up", "k":
		if !m.drag.Active() && m.row > 0 {
			m.row--
		}

	case "down", "j":
		if !m.drag.Active() && m.row < len(m.currentTasks())-1 {
			m.row++
		}

	case " ", "enter":
		if m.drag.Active() {
			return m.dropCard()
		}
		return m.pickUpCard()

	case "r":
		m.loading = true
		return m, m.loadBoard()

	case "n":
		m.inputMode = InputCreate
		if len(m.columns) > 0 {
			m.inputLabel = fmt.Sprintf("New task [%s]: ", m.columns[m.col].Status.Name)
		} else {
			m.inputLabel = "New task: "
		}
		m.inputText = ""

	case "d":
		tasks := m.currentTasks()
		if len(tasks) == 0 {
			return m, nil
		}
		task := tasks[m.row]
		m.inputMode = InputConfirm
		m.pendingDelete = task.ID
		m.inputLabel = fmt.Sprintf("Delete %q? (y/n) ", task.Title)
	}

	return m, nil
}

func (m Model) pickUpCard() (Model, tea.Cmd) {
	tasks := m.currentTasks()
	if len(tasks) == 0 {
		return m, nil
	}
	m.drag.Begin(tasks[m.row].ID)
	m.dragFrom = m.col
	m.targetCol = m.col
	return m, nil
}

func (m Model) dropCard() (Model, tea.Cmd) {
	drag := m.drag
	m.drag.Cancel()

	if m.targetCol < 0 || m.targetCol >= len(m.columns) {
		return m, nil
	}
	if m.dragFrom < 0 || m.dragFrom >= len(m.columns) {
		return m, nil
	}
	from := m.columns[m.dragFrom].Status
	target := m.columns[m.targetCol].Status
	b := m.board

	return m, func() tea.Msg {
		moved, err := drag.Drop(target.ID, func(taskID, statusID string) (bool, error) {
			return b.MoveTask(context.Background(), taskID, statusID)
		})
		if err != nil {
			return actionMsg{err: err}
		}
		if !moved {
			return actionMsg{message: fmt.Sprintf("Already in %q", target.Name)}
		}
		return actionMsg{
			message: fmt.Sprintf("Task moved from %q to %q", from.Name, target.Name),
			reload:  true,
		}
	}
}

func (m *Model) currentTasks() []model.Task {
	if m.col < 0 || m.col >= len(m.columns) {
		return nil
	}
	return m.columns[m.col].Tasks
}

func (m *Model) clampCursor() {
	if m.col >= len(m.columns) {
		m.col = max(0, len(m.columns)-1)
	}
	if tasks := m.currentTasks(); m.row >= len(tasks) {
		m.row = max(0, len(tasks)-1)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	user, _ := m.sess.User()
	header := titleStyle.Render("Kanban Board")
	header += dimStyle.Render(fmt.Sprintf("  %s (%s)", user.DisplayName(), m.sess.Role()))
	b.WriteString(header)
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(dimStyle.Render("Loading board..."))
	case len(m.columns) == 0:
		b.WriteString("No statuses provided.\n")
	default:
		b.WriteString(m.renderColumns())
	}
	b.WriteString("\n")

	if m.inputMode != InputNone {
		b.WriteString("\n")
		b.WriteString(inputStyle.Render(m.inputLabel + m.inputText + "█"))
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("Error: " + api.Message(m.err)))
	} else if m.message != "" {
		b.WriteString("\n")
		b.WriteString(messageStyle.Render(m.message))
	}

	b.WriteString("\n")
	if m.drag.Active() {
		b.WriteString(helpStyle.Render("←/→ choose column · space/enter drop · esc cancel"))
	} else {
		b.WriteString(helpStyle.Render("←/→/↑/↓ navigate · space pick up · n new · d delete · r reload · q quit"))
	}

	padStyle := lipgloss.NewStyle().
		PaddingLeft(contentPadding).
		PaddingRight(contentPadding).
		PaddingTop(1)
	return padStyle.Render(b.String())
}

func (m Model) renderColumns() string {
	ncols := len(m.columns)
	colWidth := minColumnWidth
	if m.width > 0 {
		if w := (m.width - 2*contentPadding - 2*ncols) / ncols; w > colWidth {
			colWidth = w
		}
	}

	rendered := make([]string, ncols)
	for i, col := range m.columns {
		rendered[i] = m.renderColumn(i, col, colWidth)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderColumn(idx int, col board.Column, width int) string {
	var b strings.Builder

	title := fmt.Sprintf("%s (%d)", col.Status.Name, len(col.Tasks))
	b.WriteString(columnTitleStyle.Render(truncate(title, width)))
	b.WriteString("\n")

	for j, task := range col.Tasks {
		line := m.renderCard(idx, j, task, width)
		b.WriteString(line)
		b.WriteString("\n")
	}
	if len(col.Tasks) == 0 {
		b.WriteString(dimStyle.Render("—"))
		b.WriteString("\n")
	}

	border := columnBorder
	if m.drag.Active() && idx == m.targetCol {
		border = targetColumnBorder
	}
	return border.Width(width).Render(b.String())
}

func (m Model) renderCard(colIdx, rowIdx int, task model.Task, width int) string {
	icon := lipgloss.NewStyle().
		Foreground(priorityColors[task.Priority]).
		Render(priorityIcon(task.Priority))

	label := truncate(task.Title, width-4)
	meta := ""
	if assignee := task.AssigneeLabel(); assignee != "" {
		meta = " " + dimStyle.Render("@"+truncate(assignee, 12))
	}

	line := icon + " " + label + meta
	if m.drag.Active() && task.ID == m.drag.TaskID() {
		return heldCardStyle.Render("◆ " + label)
	}
	if colIdx == m.col && rowIdx == m.row && !m.drag.Active() {
		return selectedCardStyle.Render("> " + label + meta)
	}
	return line
}

// truncate shortens s to at most width visible characters.
func truncate(s string, width int) string {
	if width <= 3 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}
