package ui

import (
	"time"

	dom "github.com/Joshcode41/todo-app/internal/domain"

	tea "github.com/charmbracelet/bubbletea"
)

// NavigateMsg asks the router to mount the view for Path.
type NavigateMsg struct {
	Path string
}

// Navigate returns a command that emits NavigateMsg.
func Navigate(path string) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Path: path} }
}

// quitMsg asks the router to tear down the current view and exit.
type quitMsg struct{}

// toastTickMsg re-renders so expired toasts disappear.
type toastTickMsg time.Time

// addressed is implemented by every request result. The router drops results
// whose token does not belong to the mounted view.
type addressed interface {
	addressedTo() uint64
}

type result struct {
	token uint64
}

func (r result) addressedTo() uint64 { return r.token }

type todosLoadedMsg struct {
	result
	todos []dom.Todo
	err   error
}

type todoCreatedMsg struct {
	result
	seq  int
	todo dom.Todo
	err  error
}

type todoDeletedMsg struct {
	result
	seq int
	err error
}

type todoLoadedMsg struct {
	result
	todo dom.Todo
	err  error
}

type todoUpdatedMsg struct {
	result
	seq  int
	todo dom.Todo
	err  error
}
