package ui

import (
	"context"
	"io"

	dom "github.com/Joshcode41/todo-app/internal/domain"
	"github.com/Joshcode41/todo-app/internal/notify"

	"github.com/charmbracelet/log"
	tea "github.com/charmbracelet/bubbletea"
)

// View is the unit of composition; implements Bubble Tea's Init/Update/View.
type View interface {
	Init() tea.Cmd
	Update(tea.Msg) (View, tea.Cmd)
	View() string
}

// TodoAPI is what the views need from TodoService. *client.Client implements it.
type TodoAPI interface {
	List(ctx context.Context) ([]dom.Todo, error)
	Get(ctx context.Context, id string) (dom.Todo, error)
	Create(ctx context.Context, title, description string) (dom.Todo, error)
	Update(ctx context.Context, t dom.Todo) (dom.Todo, error)
	Delete(ctx context.Context, id string) error
}

// env is what a mounted view gets from the router. ctx is cancelled and token
// retired when the view is torn down.
type env struct {
	ctx    context.Context
	token  uint64
	api    TodoAPI
	notify notify.Notifier
	logger *log.Logger
}

func (e env) result() result { return result{token: e.token} }

// owns reports whether a result was produced by this view instance.
func (e env) owns(msg addressed) bool { return msg.addressedTo() == e.token }

func discardLogger() *log.Logger { return log.New(io.Discard) }
