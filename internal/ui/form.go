package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	msgRequired = "Title and description are required"

	titleLimit       = 120
	descriptionLimit = 1000
)

// cursorMode applies to every form input.
var cursorMode = cursor.CursorBlink

type field int

const (
	fieldNone field = iota
	fieldTitle
	fieldDescription
)

// todoForm is the title + description pair shared by both views.
type todoForm struct {
	title       textinput.Model
	description textarea.Model
	focused     field
}

func newTodoForm() todoForm {
	ti := textinput.New()
	ti.Placeholder = "Title"
	ti.CharLimit = titleLimit
	ti.Prompt = ""
	ti.Cursor.SetMode(cursorMode)

	ta := textarea.New()
	ta.Placeholder = "Description"
	ta.CharLimit = descriptionLimit
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.SetHeight(3)
	ta.Cursor.SetMode(cursorMode)

	return todoForm{title: ti, description: ta}
}

func (f *todoForm) setWidth(w int) {
	if w <= 0 {
		return
	}
	f.title.Width = w
	f.description.SetWidth(w)
}

func (f *todoForm) focus(which field) tea.Cmd {
	f.title.Blur()
	f.description.Blur()
	f.focused = which
	switch which {
	case fieldTitle:
		return f.title.Focus()
	case fieldDescription:
		return f.description.Focus()
	}
	return nil
}

func (f *todoForm) blur() { f.focus(fieldNone) }

// update forwards msg to the focused input.
func (f *todoForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focused {
	case fieldTitle:
		f.title, cmd = f.title.Update(msg)
	case fieldDescription:
		f.description, cmd = f.description.Update(msg)
	}
	return cmd
}

func (f *todoForm) set(title, description string) {
	f.title.SetValue(title)
	f.description.SetValue(description)
}

func (f *todoForm) reset() {
	f.title.Reset()
	f.description.Reset()
}

// values returns the trimmed inputs and whether both are present.
func (f *todoForm) values() (title, description string, ok bool) {
	title = strings.TrimSpace(f.title.Value())
	description = strings.TrimSpace(f.description.Value())
	return title, description, title != "" && description != ""
}

func (f *todoForm) view() string {
	var b strings.Builder
	b.WriteString(Styles.Label.Render("Title"))
	b.WriteString("\n")
	b.WriteString(f.title.View())
	b.WriteString("\n")
	b.WriteString(Styles.Label.Render("Description"))
	b.WriteString("\n")
	b.WriteString(f.description.View())
	return b.String()
}
