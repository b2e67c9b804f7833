package ui

import "github.com/charmbracelet/bubbles/key"

type listKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Edit   key.Binding
	Delete key.Binding
	Reload key.Binding
	Add    key.Binding
	Submit key.Binding
	Next   key.Binding
	Prev   key.Binding
	Back   key.Binding
	Quit   key.Binding

	formFocused bool
}

func newListKeyMap() listKeyMap {
	return listKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Edit:   key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("e", "edit")),
		Delete: key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Add:    key.NewBinding(key.WithKeys("a", "tab"), key.WithHelp("a", "new todo")),
		Submit: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "add")),
		Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back to list")),
		Quit:   key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (k listKeyMap) ShortHelp() []key.Binding {
	if k.formFocused {
		return []key.Binding{k.Submit, k.Next, k.Prev, k.Back}
	}
	return []key.Binding{k.Up, k.Down, k.Add, k.Edit, k.Delete, k.Reload, k.Quit}
}

func (k listKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type editKeyMap struct {
	Submit key.Binding
	Next   key.Binding
	Prev   key.Binding
	Back   key.Binding
}

func newEditKeyMap() editKeyMap {
	return editKeyMap{
		Submit: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

func (k editKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Next, k.Prev, k.Back}
}

func (k editKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
