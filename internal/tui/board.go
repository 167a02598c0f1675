// Package tui renders the shared list board as an interactive
// two-panel view. Grabbing an item and dropping it on the other panel
// is the keyboard rendition of the web app's drag and drop.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jasperquin/heartlog/internal/board"
	"github.com/jasperquin/heartlog/internal/model"
)

var categories = []string{"movies", "places", "things"}

type keyMap struct {
	Up, Down, SwitchPanel, Grab, Add, Edit, Delete, NextCategory, Cancel, Quit key.Binding
}

var keys = keyMap{
	Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	SwitchPanel:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch panel")),
	Grab:         key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "grab/drop")),
	Add:          key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Edit:         key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Delete:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	NextCategory: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "category")),
	Cancel:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// BoardStore is what the TUI needs to build boards.
type BoardStore = board.ItemStore

// Model is the bubbletea model for the board view.
type Model struct {
	ctx   context.Context
	store BoardStore
	b     *board.Board

	focus  string // which partition has the cursor
	cursor map[string]int

	adding  bool
	editing bool
	editID  string
	input   textinput.Model

	errMsg string
	width  int
}

// NewModel creates the board view for the first category.
func NewModel(ctx context.Context, s BoardStore) (Model, error) {
	b, err := board.New(s, categories[0])
	if err != nil {
		return Model{}, err
	}
	if err := b.Refresh(ctx); err != nil {
		return Model{}, err
	}

	ti := textinput.New()
	ti.Placeholder = "What should we add?"
	ti.CharLimit = 120

	return Model{
		ctx:    ctx,
		store:  s,
		b:      b,
		focus:  model.StatusTodo,
		cursor: map[string]int{model.StatusTodo: 0, model.StatusDone: 0},
		input:  ti,
	}, nil
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if m.adding || m.editing {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Cancel):
		m.adding, m.editing = false, false
		m.input.Reset()
		return m, nil
	case msg.Type == tea.KeyEnter:
		title := m.input.Value()
		var err error
		if m.adding {
			_, err = m.b.Add(m.ctx, title)
		} else {
			err = m.b.Edit(m.ctx, m.editID, title)
		}
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.adding, m.editing = false, false
		m.errMsg = ""
		m.input.Reset()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Cancel):
		m.b.Release()
		m.errMsg = ""

	case key.Matches(msg, keys.Up):
		if m.cursor[m.focus] > 0 {
			m.cursor[m.focus]--
		}

	case key.Matches(msg, keys.Down):
		if m.cursor[m.focus] < len(m.b.Partition(m.focus))-1 {
			m.cursor[m.focus]++
		}

	case key.Matches(msg, keys.SwitchPanel):
		if m.focus == model.StatusTodo {
			m.focus = model.StatusDone
		} else {
			m.focus = model.StatusTodo
		}
		m.clampCursor()

	case key.Matches(msg, keys.Grab):
		if _, dragging := m.b.Dragging(); dragging {
			// Dropping on the focused panel applies the move rule: a
			// drop on the item's own partition is a no-op.
			if err := m.b.Drop(m.ctx, m.focus); err != nil {
				m.errMsg = err.Error()
			} else {
				m.errMsg = ""
			}
			m.clampCursor()
		} else if it, ok := m.selected(); ok {
			m.b.Grab(it.ID)
		}

	case key.Matches(msg, keys.Add):
		m.adding = true
		m.input.Placeholder = "What should we add?"
		m.input.Focus()
		return m, textinput.Blink

	case key.Matches(msg, keys.Edit):
		if it, ok := m.selected(); ok {
			m.editing = true
			m.editID = it.ID
			m.input.SetValue(it.Title)
			m.input.Focus()
			return m, textinput.Blink
		}

	case key.Matches(msg, keys.Delete):
		if it, ok := m.selected(); ok {
			if err := m.b.Remove(m.ctx, it.ID); err != nil {
				m.errMsg = err.Error()
			}
			m.clampCursor()
		}

	case key.Matches(msg, keys.NextCategory):
		m.nextCategory()
	}
	return m, nil
}

func (m *Model) nextCategory() {
	current := m.b.Category()
	for i, c := range categories {
		if c == current {
			next := categories[(i+1)%len(categories)]
			b, err := board.New(m.store, next)
			if err != nil {
				m.errMsg = err.Error()
				return
			}
			if err := b.Refresh(m.ctx); err != nil {
				m.errMsg = err.Error()
				return
			}
			m.b = b
			m.cursor = map[string]int{model.StatusTodo: 0, model.StatusDone: 0}
			return
		}
	}
}

func (m Model) selected() (model.Item, bool) {
	items := m.b.Partition(m.focus)
	i := m.cursor[m.focus]
	if i < 0 || i >= len(items) {
		return model.Item{}, false
	}
	return items[i], true
}

func (m *Model) clampCursor() {
	for _, status := range []string{model.StatusTodo, model.StatusDone} {
		if n := len(m.b.Partition(status)); m.cursor[status] >= n {
			m.cursor[status] = n - 1
		}
		if m.cursor[status] < 0 {
			m.cursor[status] = 0
		}
	}
}

func (m Model) View() string {
	var sb strings.Builder

	header := titleStyle.Render(fmt.Sprintf("Shared Lists · %s", m.b.Category()))
	if drag, ok := m.b.Dragging(); ok {
		header += "  " + dragStyle.Render(fmt.Sprintf("✈ %s", drag.Title))
	}
	sb.WriteString(header + "\n\n")

	todo := m.renderPanel("To Do", model.StatusTodo)
	done := m.renderPanel("Done", model.StatusDone)
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, todo, " ", done))
	sb.WriteString("\n")

	if m.adding || m.editing {
		sb.WriteString(m.input.View() + "\n")
	}
	if m.errMsg != "" {
		sb.WriteString(errorStyle.Render(m.errMsg) + "\n")
	}
	sb.WriteString(helpStyle.Render("tab panel · space grab/drop · a add · e edit · d delete · c category · q quit"))
	return sb.String()
}

func (m Model) renderPanel(title, status string) string {
	items := m.b.Partition(status)
	drag, dragging := m.b.Dragging()

	var lines []string
	lines = append(lines, headerStyle.Render(fmt.Sprintf("%s (%d)", title, len(items))))
	if len(items) == 0 {
		lines = append(lines, mutedStyle.Render("nothing here yet"))
	}
	for i, it := range items {
		line := it.Title
		if status == model.StatusDone {
			line = doneStyle.Render(line)
		}
		prefix := "  "
		if m.focus == status && i == m.cursor[status] {
			prefix = selectedStyle.Render("> ")
		}
		if dragging && drag.ID == it.ID {
			line = dragStyle.Render(it.Title)
		}
		lines = append(lines, prefix+line)
	}

	style := panelStyle
	if m.focus == status {
		style = focusedPanelStyle
	}
	width := 36
	if m.width > 80 {
		width = (m.width - 6) / 2
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

// Run starts the board TUI over the given store.
func Run(ctx context.Context, s BoardStore) error {
	m, err := NewModel(ctx, s)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
