package ui

import (
	"strings"

	dom "github.com/Joshcode41/todo-app/internal/domain"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	msgFetchFailed  = "Failed to fetch todo"
	msgUpdated      = "Todo updated successfully"
	msgUpdateFailed = "Failed to update todo"
)

// EditView loads a single todo into a form and submits the replacement.
// A new EditView is mounted for every id; it never reuses state.
type EditView struct {
	env

	id      string
	loading bool
	saving  bool
	saveSeq int
	// saved is set once an update succeeds; the view is only waiting to be
	// unmounted by the navigation it returned.
	saved bool

	form    todoForm
	spinner spinner.Model
	keys    editKeyMap
	help    help.Model
}

var _ View = (*EditView)(nil)

func newEditView(e env, id string) *EditView {
	return &EditView{
		env:     e,
		id:      id,
		form:    newTodoForm(),
		spinner: newSpinner(),
		keys:    newEditKeyMap(),
		help:    help.New(),
	}
}

func (v *EditView) ID() string { return v.id }

func (v *EditView) Init() tea.Cmd {
	v.loading = true
	ctx, api, res, id := v.ctx, v.api, v.result(), v.id
	return tea.Batch(v.spinner.Tick, func() tea.Msg {
		t, err := api.Get(ctx, id)
		return todoLoadedMsg{result: res, todo: t, err: err}
	})
}

func (v *EditView) save() tea.Cmd {
	if v.saving || v.loading || v.saved {
		return nil
	}
	title, description, ok := v.form.values()
	if !ok {
		v.notify.Error(msgRequired)
		return nil
	}
	v.saving = true
	v.saveSeq++
	seq := v.saveSeq
	ctx, api, res := v.ctx, v.api, v.result()
	t := dom.Todo{ID: v.id, Title: title, Description: description}
	return tea.Batch(v.spinner.Tick, func() tea.Msg {
		updated, err := api.Update(ctx, t)
		return todoUpdatedMsg{result: res, seq: seq, todo: updated, err: err}
	})
}

func (v *EditView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.form.setWidth(msg.Width - 6)
		v.help.Width = msg.Width
		return v, nil

	case spinner.TickMsg:
		if !v.loading && !v.saving {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case todoLoadedMsg:
		if !v.owns(msg) || !v.loading {
			return v, nil
		}
		v.loading = false
		if msg.err != nil {
			v.logger.Warn("get todo", "id", v.id, "err", msg.err)
			v.notify.Error(msgFetchFailed)
			return v, v.form.focus(fieldTitle)
		}
		v.form.set(msg.todo.Title, msg.todo.Description)
		return v, v.form.focus(fieldTitle)

	case todoUpdatedMsg:
		if !v.owns(msg) || !v.saving || msg.seq != v.saveSeq {
			return v, nil
		}
		v.saving = false
		if msg.err != nil {
			v.logger.Warn("update todo", "id", v.id, "err", msg.err)
			v.notify.Error(msgUpdateFailed)
			return v, nil
		}
		v.saved = true
		v.notify.Success(msgUpdated)
		return v, Navigate(ListPath)

	case tea.KeyMsg:
		return v, v.handleKey(msg)
	}

	return v, v.form.update(msg)
}

func (v *EditView) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, v.keys.Back):
		return Navigate(ListPath)
	case v.loading:
		return nil
	case key.Matches(msg, v.keys.Submit):
		return v.save()
	case key.Matches(msg, v.keys.Next), key.Matches(msg, v.keys.Prev):
		if v.form.focused == fieldTitle {
			return v.form.focus(fieldDescription)
		}
		return v.form.focus(fieldTitle)
	case msg.Type == tea.KeyEnter && v.form.focused == fieldTitle:
		return v.form.focus(fieldDescription)
	}
	return v.form.update(msg)
}

func (v *EditView) View() string {
	if v.loading {
		return v.spinner.View() + " Loading todo..."
	}

	var b strings.Builder
	b.WriteString(Styles.Title.Render("Edit Todo"))
	b.WriteString("\n\n")

	form := v.form.view() + "\n\n"
	if v.saving {
		form += Styles.Busy.Render(v.spinner.View() + " Saving...")
	} else {
		form += Styles.Button.Render("Update Todo")
	}
	b.WriteString(Styles.Box.Render(form))
	b.WriteString("\n\n")
	b.WriteString(v.help.View(v.keys))
	return b.String()
}
