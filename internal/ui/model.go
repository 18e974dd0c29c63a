package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Innocent9712/much-to-do/Server/TodoList/internal/client"
	"github.com/Innocent9712/much-to-do/Server/TodoList/internal/todo"
)

// API is the subset of the HTTP client the controller drives.
type API interface {
	List(ctx context.Context) ([]todo.Todo, error)
	Create(ctx context.Context, text string) (todo.Todo, error)
	Update(ctx context.Context, id string, p todo.Patch) (todo.Todo, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
	modeConfirmDelete
)

type connState int

const (
	connChecking connState = iota
	connOK
	connAPIError
	connUnreachable
)

func (c connState) String() string {
	switch c {
	case connOK:
		return "API connected"
	case connAPIError:
		return "API error"
	case connUnreachable:
		return "API unreachable"
	default:
		return "Checking API..."
	}
}

type (
	statusMsg struct{ err error }
	loadedMsg struct {
		todos []todo.Todo
		err   error
	}
	// mutatedMsg reports the outcome of a create, update or delete.
	mutatedMsg struct {
		ok   string
		fail string
		err  error
	}
	clearNoteMsg struct{ seq int }
)

type note struct {
	text  string
	isErr bool
}

type keyMap struct {
	Up, Down     key.Binding
	Add, Edit    key.Binding
	Toggle       key.Binding
	Delete       key.Binding
	All, Active  key.Binding
	Completed    key.Binding
	CycleFilter  key.Binding
	Reload, Help key.Binding
	Quit         key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Add:         key.NewBinding(key.WithKeys("a", "n"), key.WithHelp("a", "add")),
		Edit:        key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Toggle:      key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		Delete:      key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		All:         key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		Active:      key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "active")),
		Completed:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "completed")),
		CycleFilter: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next filter")),
		Reload:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Edit, k.Delete, k.CycleFilter, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Add, k.Edit},
		{k.Toggle, k.Delete, k.Reload},
		{k.All, k.Active, k.Completed, k.CycleFilter},
		{k.Help, k.Quit},
	}
}

// Options configure a Model.
type Options struct {
	Filter Filter
	// Endpoint is shown in the header, e.g. the collection URL.
	Endpoint string
	NoteTTL  time.Duration
}

// Model is the terminal controller. It owns no data: every render is
// driven by the last List response.
type Model struct {
	ctx      context.Context
	api      API
	endpoint string
	keys     keyMap
	help     help.Model

	input   textinput.Model
	mode    mode
	target  todo.Todo
	filter  Filter
	todos   []todo.Todo
	visible []todo.Todo
	cursor  int
	conn    connState
	loading bool

	note    note
	noteSeq int
	noteTTL time.Duration
}

func New(ctx context.Context, api API, opts Options) Model {
	if opts.Filter == "" {
		opts.Filter = FilterAll
	}
	if opts.NoteTTL <= 0 {
		opts.NoteTTL = 3 * time.Second
	}
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 500

	return Model{
		ctx:      ctx,
		api:      api,
		endpoint: opts.Endpoint,
		keys:     defaultKeys(),
		help:     help.New(),
		input:    ti,
		filter:   opts.Filter,
		noteTTL:  opts.NoteTTL,
		loading:  true,
	}
}

func (m Model) Init() tea.Cmd { return m.probe() }

func (m Model) probe() tea.Cmd {
	return func() tea.Msg { return statusMsg{err: m.api.Ping(m.ctx)} }
}

func (m Model) load() tea.Cmd {
	return func() tea.Msg {
		todos, err := m.api.List(m.ctx)
		return loadedMsg{todos: todos, err: err}
	}
}

func (m Model) create(text string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.api.Create(m.ctx, text)
		return mutatedMsg{ok: "Task added", fail: "Could not add task", err: err}
	}
}

func (m Model) toggle(t todo.Todo) tea.Cmd {
	done := !t.Completed
	return func() tea.Msg {
		_, err := m.api.Update(m.ctx, t.ID, todo.Patch{Completed: &done})
		return mutatedMsg{fail: "Could not update task", err: err}
	}
}

func (m Model) edit(id, text string) tea.Cmd {
	return func() tea.Msg {
		_, err := m.api.Update(m.ctx, id, todo.Patch{Text: &text})
		return mutatedMsg{ok: "Task updated", fail: "Could not edit task", err: err}
	}
}

func (m Model) remove(id string) tea.Cmd {
	return func() tea.Msg {
		return mutatedMsg{ok: "Task deleted", fail: "Could not delete task", err: m.api.Delete(m.ctx, id)}
	}
}

// notify shows text on the status line until the next note or the TTL.
func (m *Model) notify(text string, isErr bool) tea.Cmd {
	m.noteSeq++
	m.note = note{text: text, isErr: isErr}
	seq := m.noteSeq
	return tea.Tick(m.noteTTL, func(time.Time) tea.Msg { return clearNoteMsg{seq: seq} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-4, 10)
		return m, nil

	case statusMsg:
		m.conn = classify(msg.err)
		if msg.err != nil {
			log.Printf("API status: %v", msg.err)
		}
		return m, m.load()

	case loadedMsg:
		m.loading = false
		if msg.err != nil {
			log.Printf("load todos: %v", msg.err)
			cmd := m.notify("Could not load todos", true)
			return m, cmd
		}
		m.todos = msg.todos
		m.refilter()
		return m, nil

	case mutatedMsg:
		if msg.err != nil {
			log.Printf("%s: %v", msg.fail, msg.err)
			if client.IsNotFound(msg.err) {
				m.loading = true
				cmd := tea.Batch(m.load(), m.notify("Task no longer exists", true))
				return m, cmd
			}
			cmd := m.notify(msg.fail, true)
			return m, cmd
		}
		m.loading = true
		if msg.ok == "" {
			return m, m.load()
		}
		cmd := tea.Batch(m.load(), m.notify(msg.ok, false))
		return m, cmd

	case clearNoteMsg:
		if msg.seq == m.noteSeq {
			m.note = note{}
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeAdd, modeEdit:
			return m.updateInput(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		default:
			return m.updateList(msg)
		}
	}

	if m.mode == modeAdd || m.mode == modeEdit {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		return m, m.probe()
	case key.Matches(msg, m.keys.All):
		return m.setFilter(FilterAll)
	case key.Matches(msg, m.keys.Active):
		return m.setFilter(FilterActive)
	case key.Matches(msg, m.keys.Completed):
		return m.setFilter(FilterCompleted)
	case key.Matches(msg, m.keys.CycleFilter):
		return m.setFilter(m.filter.Next())
	case key.Matches(msg, m.keys.Add):
		m.mode = modeAdd
		m.input.Reset()
		m.input.Placeholder = "What needs to be done?"
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.selected(); ok {
			return m, m.toggle(t)
		}
	case key.Matches(msg, m.keys.Edit):
		if t, ok := m.selected(); ok {
			m.mode = modeEdit
			m.target = t
			m.input.Placeholder = ""
			m.input.SetValue(t.Text)
			m.input.CursorEnd()
			cmd := m.input.Focus()
			return m, cmd
		}
	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.selected(); ok {
			m.mode = modeConfirmDelete
			m.target = t
		}
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeInput()
		return m, nil
	case tea.KeyEnter:
		text, err := todo.NormalizeText(m.input.Value())
		if m.mode == modeAdd {
			if err != nil {
				cmd := m.notify("Enter a task first", true)
				return m, cmd
			}
			m.closeInput()
			return m, m.create(text)
		}
		id := m.target.ID
		m.closeInput()
		if err != nil {
			return m, nil
		}
		return m, m.edit(id, text)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		id := m.target.ID
		m.mode = modeList
		m.target = todo.Todo{}
		return m, m.remove(id)
	case "n", "N", "esc", "q":
		m.mode = modeList
		m.target = todo.Todo{}
	}
	return m, nil
}

func (m Model) setFilter(f Filter) (tea.Model, tea.Cmd) {
	m.filter = f
	m.cursor = 0
	m.loading = true
	return m, m.load()
}

func (m *Model) closeInput() {
	m.mode = modeList
	m.target = todo.Todo{}
	m.input.Reset()
	m.input.Blur()
}

func (m *Model) refilter() {
	m.visible = m.filter.Apply(m.todos)
	if m.cursor >= len(m.visible) {
		m.cursor = max(len(m.visible)-1, 0)
	}
}

func (m Model) selected() (todo.Todo, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return todo.Todo{}, false
	}
	return m.visible[m.cursor], true
}

func classify(err error) connState {
	if err == nil {
		return connOK
	}
	var ae *client.APIError
	if errors.As(err, &ae) {
		return connAPIError
	}
	return connUnreachable
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Todos"))
	b.WriteString("  ")
	b.WriteString(m.connView())
	if m.endpoint != "" {
		b.WriteString("  " + mutedStyle.Render(m.endpoint))
	}
	b.WriteString("\n")
	b.WriteString(m.tabsView())
	b.WriteString("\n\n")

	switch {
	case m.loading && m.todos == nil:
		b.WriteString(mutedStyle.Render("Loading todos..."))
		b.WriteString("\n")
	case len(m.visible) == 0:
		b.WriteString(mutedStyle.Render(emptyText(m.filter)))
		b.WriteString("\n")
	default:
		for i, t := range m.visible {
			b.WriteString(renderItem(t, i == m.cursor))
			b.WriteString("\n")
		}
	}

	st := ComputeStats(m.todos)
	fmt.Fprintf(&b, "\n%s %d  %s %d  %s %d\n",
		accentStyle.Render("Total"), st.Total,
		pendingStyle.Render("Active"), st.Active,
		successStyle.Render("Completed"), st.Completed,
	)

	switch m.mode {
	case modeAdd:
		b.WriteString("\n" + modalStyle.Render("New task\n"+m.input.View()+"\n"+mutedStyle.Render("enter save • esc cancel")) + "\n")
	case modeEdit:
		b.WriteString("\n" + modalStyle.Render("Edit task\n"+m.input.View()+"\n"+mutedStyle.Render("enter save • esc cancel")) + "\n")
	case modeConfirmDelete:
		prompt := fmt.Sprintf("Delete this task?\n%s\n%s", Sanitize(m.target.Text), mutedStyle.Render("y delete • n cancel"))
		b.WriteString("\n" + modalStyle.Render(prompt) + "\n")
	}

	if m.note.text != "" {
		style := successStyle
		if m.note.isErr {
			style = errorStyle
		}
		b.WriteString("\n" + style.Render(m.note.text) + "\n")
	}

	if m.mode == modeList {
		b.WriteString("\n" + m.help.View(m.keys))
	}
	return b.String()
}

func (m Model) connView() string {
	switch m.conn {
	case connOK:
		return successStyle.Render("● " + m.conn.String())
	case connAPIError, connUnreachable:
		return errorStyle.Render("● " + m.conn.String())
	default:
		return mutedStyle.Render("● " + m.conn.String())
	}
}

func (m Model) tabsView() string {
	parts := make([]string, 0, len(filters))
	for i, f := range filters {
		label := fmt.Sprintf("%d %s", i+1, f)
		if f == m.filter {
			parts = append(parts, activeTab.Render(label))
		} else {
			parts = append(parts, mutedStyle.Render(label))
		}
	}
	return strings.Join(parts, "  ")
}

func renderItem(t todo.Todo, selected bool) string {
	box := mutedStyle.Render(boxUnchecked)
	text := Sanitize(t.Text)
	if t.Completed {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(text)
	}
	prefix := "  "
	if selected {
		prefix = selectedStyle.Render(">") + " "
	}
	return prefix + box + " " + text
}

func emptyText(f Filter) string {
	switch f {
	case FilterActive:
		return "No active tasks."
	case FilterCompleted:
		return "No completed tasks."
	default:
		return "No tasks yet. Press a to add one."
	}
}
