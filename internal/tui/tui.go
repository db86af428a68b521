// Package tui is the interactive browse view over a todos database.
// Items can be checked and added; nothing is written until the view quits.
package tui

import (
	"context"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/todosql/internal/model"
	"github.com/Makepad-fr/todosql/internal/ui"
)

// Store is what the browse view needs from storage.
type Store interface {
	All(ctx context.Context) iter.Seq2[model.Todo, error]
	Add(ctx context.Context, text string) (int64, error)
	Check(ctx context.Context, id int64) error
}

// NewTodo is an item added in the view and not yet stored.
type NewTodo struct {
	Text    string
	Checked bool
}

// Changes is what the view wants persisted when it quits.
type Changes struct {
	Check []int64   // existing ids to mark checked, in list order
	Add   []NewTodo // new items, in the order they were added
}

// Empty reports whether there is nothing to persist.
func (c Changes) Empty() bool { return len(c.Check) == 0 && len(c.Add) == 0 }

// listItem adapts a todo to bubbles/list.Item.
// New items have ID 0 until they are stored.
type listItem struct {
	todo       model.Todo
	wasChecked bool
}

func (i listItem) Title() string       { return i.todo.Text }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.todo.Text }

// Model implements tea.Model for the browse view.
type Model struct {
	list list.Model

	// Inline add
	adding bool
	ti     textinput.Model
	addErr string

	width, height int
}

// itemDelegate renders one item per line.
type itemDelegate struct{}

func (d itemDelegate) Height() int                         { return 1 }
func (d itemDelegate) Spacing() int                        { return 0 }
func (d itemDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	t := ui.Current()
	box := t.Muted.Render(t.BoxUnchecked)
	text := it.todo.Text
	if it.todo.Checked {
		box = t.Success.Render(t.BoxChecked)
		text = t.Done.Render(text)
	}
	id := t.Muted.Render(fmt.Sprintf("%3s", idLabel(it.todo.ID)))

	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render(">") + " "
	}
	fmt.Fprintf(w, "%s%s %s %s", prefix, id, box, text)
}

func idLabel(id int64) string {
	if id == 0 {
		return "+"
	}
	return fmt.Sprint(id)
}

var (
	checkBind = key.NewBinding(key.WithKeys(" ", "x", "enter"), key.WithHelp("space", "check"))
	addBind   = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	quitBind  = key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "save & quit"))
)

// New builds the view over the given todos.
func New(todos []model.Todo) Model {
	items := make([]list.Item, 0, len(todos))
	for _, td := range todos {
		items = append(items, listItem{todo: td, wasChecked: td.Checked})
	}

	t := ui.Current()
	l := list.New(items, itemDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = t.Title
	l.Styles.HelpStyle = t.Help
	l.Styles.PaginationStyle = t.Help
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("todo", "todos")
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{checkBind, addBind, quitBind} }
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New todo..."
	ti.CharLimit = 255

	m := Model{list: l, ti: ti}
	m.refreshTitle()
	return m
}

func (m *Model) refreshTitle() {
	done, pending := stats(m.todos())
	t := ui.Current()
	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s",
		"Todos",
		t.SymDone, done,
		t.SymPending, pending,
		ui.ProgressBar(done, done+pending, 20),
	)
}

func (m Model) todos() []model.Todo {
	out := make([]model.Todo, 0, len(m.list.Items()))
	for _, it := range m.list.Items() {
		if li, ok := it.(listItem); ok {
			out = append(out, li.todo)
		}
	}
	return out
}

// Changes reports the checks and additions made so far.
func (m Model) Changes() Changes {
	var c Changes
	for _, it := range m.list.Items() {
		li, ok := it.(listItem)
		if !ok {
			continue
		}
		switch {
		case li.todo.ID == 0:
			c.Add = append(c.Add, NewTodo{Text: li.todo.Text, Checked: li.todo.Checked})
		case li.todo.Checked && !li.wasChecked:
			c.Check = append(c.Check, li.todo.ID)
		}
	}
	return c
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.resize()
		return m, nil
	}

	if m.adding {
		return m.updateAdding(msg)
	}

	// while typing a filter every key belongs to the list
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case km.String() == "esc" && m.list.FilterState() == list.FilterApplied:
			m.list.ResetFilter()
			return m, nil
		case key.Matches(km, quitBind):
			return m, tea.Quit
		case key.Matches(km, checkBind):
			m.checkSelected()
			return m, nil
		case key.Matches(km, addBind):
			m.adding = true
			m.addErr = ""
			m.ti.SetValue("")
			m.ti.Focus()
			m.resize()
			return m, textinput.Blink
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			text := strings.TrimSpace(m.ti.Value())
			if text == "" {
				m.addErr = "Todo cannot be empty"
				return m, nil
			}
			m.list.InsertItem(len(m.list.Items()), listItem{todo: model.Todo{Text: text}})
			m.stopAdding()
			m.refreshTitle()
			return m, nil
		case "esc":
			m.stopAdding()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m *Model) stopAdding() {
	m.adding = false
	m.addErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
	m.resize()
}

// checkSelected flips the selected item to checked. Checked items stay checked.
func (m *Model) checkSelected() {
	li, ok := m.list.SelectedItem().(listItem)
	if !ok || li.todo.Checked {
		return
	}
	li.todo.Checked = true
	m.list.SetItem(m.list.GlobalIndex(), li)
	m.refreshTitle()
}

func (m *Model) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}
	h := m.height - 4
	if m.adding {
		h -= 4
	}
	if h < 1 {
		h = 1
	}
	m.list.SetSize(m.width-4, h)
}

// View implements tea.Model.
func (m Model) View() string {
	content := m.list.View()
	if m.adding {
		t := ui.Current()
		bar := lipgloss.NewStyle().Border(t.Border).BorderForeground(t.BorderColor).Padding(0, 1)
		title := "Add todo"
		if m.addErr != "" {
			title += "  " + t.Error.Render(m.addErr)
		}
		content += "\n" + bar.Render(title+"\n"+m.ti.View())
	}
	return ui.Panel(content)
}

// Run loads every todo from s, runs the view and persists the changes on quit.
func Run(ctx context.Context, s Store, opts ...tea.ProgramOption) (Changes, error) {
	var todos []model.Todo
	for td, err := range s.All(ctx) {
		if err != nil {
			return Changes{}, err
		}
		todos = append(todos, td)
	}

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	final, err := tea.NewProgram(New(todos), opts...).Run()
	if err != nil {
		return Changes{}, fmt.Errorf("tui: %w", err)
	}
	fm, ok := final.(Model)
	if !ok {
		return Changes{}, nil
	}
	ch := fm.Changes()
	return ch, Apply(ctx, s, ch)
}

// Apply writes c to s: checks of existing items first, then additions.
func Apply(ctx context.Context, s Store, c Changes) error {
	for _, id := range c.Check {
		if err := s.Check(ctx, id); err != nil {
			return err
		}
	}
	for _, nt := range c.Add {
		id, err := s.Add(ctx, nt.Text)
		if err != nil {
			return err
		}
		if nt.Checked {
			if err := s.Check(ctx, id); err != nil {
				return err
			}
		}
	}
	return nil
}

// small list stats used for the header
func stats(todos []model.Todo) (done, pending int) {
	for _, td := range todos {
		if td.Checked {
			done++
		} else {
			pending++
		}
	}
	return
}
