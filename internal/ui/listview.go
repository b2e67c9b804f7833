package ui

import (
	"fmt"
	"slices"
	"strings"

	dom "github.com/Joshcode41/todo-app/internal/domain"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	msgFetchListFailed = "Failed to fetch todos"
	msgAdded           = "Todo added successfully"
	msgAddFailed       = "Failed to add todo"
	msgDeleted         = "Todo deleted successfully"
	msgDeleteFailed    = "Failed to delete todo"
)

// removedTodo remembers where an optimistically deleted todo sat.
type removedTodo struct {
	todo  dom.Todo
	index int
}

// ListView shows every todo, hosts the create form and dispatches deletes.
type ListView struct {
	env

	todos  []dom.Todo
	cursor int

	loading    bool
	submitting bool
	createSeq  int
	deleteSeq  int
	removed    map[int]removedTodo
	// created holds todos added while a load is in flight; the load may
	// have been answered before they existed.
	created []dom.Todo

	form    todoForm
	spinner spinner.Model
	keys    listKeyMap
	help    help.Model
}

var _ View = (*ListView)(nil)

func newListView(e env) *ListView {
	return &ListView{
		env:     e,
		todos:   []dom.Todo{},
		removed: map[int]removedTodo{},
		form:    newTodoForm(),
		spinner: newSpinner(),
		keys:    newListKeyMap(),
		help:    help.New(),
	}
}

func (l *ListView) Init() tea.Cmd {
	return l.load()
}

// Todos returns the collection as currently shown.
func (l *ListView) Todos() []dom.Todo { return l.todos }

func (l *ListView) load() tea.Cmd {
	if l.loading {
		return nil
	}
	l.loading = true
	l.created = nil
	ctx, api, res := l.ctx, l.api, l.result()
	return tea.Batch(l.spinner.Tick, func() tea.Msg {
		todos, err := api.List(ctx)
		return todosLoadedMsg{result: res, todos: todos, err: err}
	})
}

func (l *ListView) submit() tea.Cmd {
	if l.submitting {
		return nil
	}
	title, description, ok := l.form.values()
	if !ok {
		l.notify.Error(msgRequired)
		return nil
	}
	l.submitting = true
	l.createSeq++
	seq := l.createSeq
	ctx, api, res := l.ctx, l.api, l.result()
	return tea.Batch(l.spinner.Tick, func() tea.Msg {
		t, err := api.Create(ctx, title, description)
		return todoCreatedMsg{result: res, seq: seq, todo: t, err: err}
	})
}

// remove drops the todo right away and reports success; a failed request
// puts it back.
func (l *ListView) remove(id string) tea.Cmd {
	if l.loading {
		return nil
	}
	idx := slices.IndexFunc(l.todos, func(t dom.Todo) bool { return t.ID == id })
	if idx < 0 {
		return nil
	}
	l.deleteSeq++
	seq := l.deleteSeq
	l.removed[seq] = removedTodo{todo: l.todos[idx], index: idx}
	l.todos = slices.Delete(l.todos, idx, idx+1)
	l.clampCursor()
	l.notify.Success(msgDeleted)

	ctx, api, res := l.ctx, l.api, l.result()
	return func() tea.Msg {
		return todoDeletedMsg{result: res, seq: seq, err: api.Delete(ctx, id)}
	}
}

func (l *ListView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		l.form.setWidth(msg.Width - 6)
		l.help.Width = msg.Width
		return l, nil

	case spinner.TickMsg:
		if !l.loading && !l.submitting {
			return l, nil
		}
		var cmd tea.Cmd
		l.spinner, cmd = l.spinner.Update(msg)
		return l, cmd

	case todosLoadedMsg:
		if !l.owns(msg) {
			return l, nil
		}
		l.loading = false
		if msg.err != nil {
			l.created = nil
			l.logger.Warn("list todos", "err", msg.err)
			l.notify.Error(msgFetchListFailed)
			return l, nil
		}
		l.todos = l.reconcile(msg.todos)
		l.clampCursor()
		return l, nil

	case todoCreatedMsg:
		if !l.owns(msg) || !l.submitting || msg.seq != l.createSeq {
			return l, nil
		}
		l.submitting = false
		if msg.err != nil {
			l.logger.Warn("create todo", "err", msg.err)
			l.notify.Error(msgAddFailed)
			return l, nil
		}
		l.todos = append(l.todos, msg.todo)
		if l.loading {
			l.created = append(l.created, msg.todo)
		}
		l.form.reset()
		l.notify.Success(msgAdded)
		return l, nil

	case todoDeletedMsg:
		if !l.owns(msg) {
			return l, nil
		}
		r, ok := l.removed[msg.seq]
		if !ok {
			return l, nil
		}
		delete(l.removed, msg.seq)
		if msg.err == nil {
			return l, nil
		}
		l.logger.Warn("delete todo", "id", r.todo.ID, "err", msg.err)
		if !slices.ContainsFunc(l.todos, func(t dom.Todo) bool { return t.ID == r.todo.ID }) {
			l.todos = slices.Insert(l.todos, min(r.index, len(l.todos)), r.todo)
		}
		l.notify.Error(msgDeleteFailed)
		return l, nil

	case tea.KeyMsg:
		if l.form.focused != fieldNone {
			return l, l.handleFormKey(msg)
		}
		return l, l.handleListKey(msg)
	}

	return l, l.form.update(msg)
}

// reconcile applies local changes the loaded snapshot may predate: deletes
// still in flight stay hidden and todos created during the load are kept.
func (l *ListView) reconcile(loaded []dom.Todo) []dom.Todo {
	todos := slices.DeleteFunc(slices.Clone(loaded), func(t dom.Todo) bool {
		for _, r := range l.removed {
			if r.todo.ID == t.ID {
				return true
			}
		}
		return false
	})
	for _, t := range l.created {
		if !slices.ContainsFunc(todos, func(x dom.Todo) bool { return x.ID == t.ID }) {
			todos = append(todos, t)
		}
	}
	l.created = nil
	if todos == nil {
		todos = []dom.Todo{}
	}
	return todos
}

func (l *ListView) handleListKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case l.loading && (key.Matches(msg, l.keys.Up) || key.Matches(msg, l.keys.Down) ||
		key.Matches(msg, l.keys.Edit) || key.Matches(msg, l.keys.Delete)):
		// The rows are hidden behind the spinner until the load lands.
		return nil
	case key.Matches(msg, l.keys.Up):
		if l.cursor > 0 {
			l.cursor--
		}
	case key.Matches(msg, l.keys.Down):
		if l.cursor < len(l.todos)-1 {
			l.cursor++
		}
	case key.Matches(msg, l.keys.Edit):
		if t, ok := l.selected(); ok {
			return Navigate(EditPath(t.ID))
		}
	case key.Matches(msg, l.keys.Delete):
		if t, ok := l.selected(); ok {
			return l.remove(t.ID)
		}
	case key.Matches(msg, l.keys.Reload):
		return l.load()
	case key.Matches(msg, l.keys.Submit):
		return l.submit()
	case key.Matches(msg, l.keys.Add):
		l.keys.formFocused = true
		return l.form.focus(fieldTitle)
	case key.Matches(msg, l.keys.Quit):
		return func() tea.Msg { return quitMsg{} }
	}
	return nil
}

func (l *ListView) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, l.keys.Submit):
		return l.submit()
	case key.Matches(msg, l.keys.Back):
		l.form.blur()
		l.keys.formFocused = false
		return nil
	case key.Matches(msg, l.keys.Next):
		if l.form.focused == fieldTitle {
			return l.form.focus(fieldDescription)
		}
		l.form.blur()
		l.keys.formFocused = false
		return nil
	case key.Matches(msg, l.keys.Prev):
		if l.form.focused == fieldDescription {
			return l.form.focus(fieldTitle)
		}
		l.form.blur()
		l.keys.formFocused = false
		return nil
	case msg.Type == tea.KeyEnter && l.form.focused == fieldTitle:
		return l.form.focus(fieldDescription)
	}
	return l.form.update(msg)
}

func (l *ListView) selected() (dom.Todo, bool) {
	if l.cursor < 0 || l.cursor >= len(l.todos) {
		return dom.Todo{}, false
	}
	return l.todos[l.cursor], true
}

func (l *ListView) clampCursor() {
	if l.cursor >= len(l.todos) {
		l.cursor = len(l.todos) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

func (l *ListView) View() string {
	var b strings.Builder
	b.WriteString(Styles.Title.Render("Todo List"))
	b.WriteString("\n\n")

	form := l.form.view() + "\n\n"
	if l.submitting {
		form += Styles.Busy.Render(l.spinner.View() + " Adding...")
	} else {
		form += Styles.Button.Render("+ Add Todo")
	}
	b.WriteString(Styles.Box.Render(form))
	b.WriteString("\n\n")

	switch {
	case l.loading:
		b.WriteString(l.spinner.View() + " Loading todos...")
	case len(l.todos) == 0:
		b.WriteString(Styles.Empty.Render("No todos yet."))
	default:
		for i, t := range l.todos {
			marker, title := "  ", Styles.Normal.Render(t.Title)
			if i == l.cursor && l.form.focused == fieldNone {
				marker, title = Styles.Selected.Render("> "), Styles.Selected.Render(t.Title)
			}
			fmt.Fprintf(&b, "%s%s  %s\n", marker, title, Styles.Muted.Render(t.Description))
		}
	}

	b.WriteString("\n")
	b.WriteString(l.help.View(l.keys))
	return b.String()
}
