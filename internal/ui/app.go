package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Joshcode41/todo-app/internal/notify"

	"github.com/charmbracelet/log"
	tea "github.com/charmbracelet/bubbletea"
)

const toastRefresh = 250 * time.Millisecond

// ToastSource is the read side of a notifier, rendered under the current view.
type ToastSource interface {
	Active() []notify.Toast
}

type Options struct {
	// Context is the parent of every view context. Defaults to context.Background.
	Context  context.Context
	API      TodoAPI
	Notifier notify.Notifier
	// Toasts, when set, is rendered and polled for expiry.
	Toasts    ToastSource
	Logger    *log.Logger
	StartPath string
}

// Router is the root model. It mounts exactly one view at a time and tears
// the previous one down on every navigation.
type Router struct {
	ctx    context.Context
	api    TodoAPI
	notify notify.Notifier
	toasts ToastSource
	logger *log.Logger

	path      string
	view      View
	token     uint64
	cancel    context.CancelFunc
	lastToken uint64
	size      *tea.WindowSizeMsg
}

var _ tea.Model = (*Router)(nil)

func NewRouter(opts Options) *Router {
	r := &Router{
		ctx:    opts.Context,
		api:    opts.API,
		notify: opts.Notifier,
		toasts: opts.Toasts,
		logger: opts.Logger,
	}
	if r.ctx == nil {
		r.ctx = context.Background()
	}
	if r.logger == nil {
		r.logger = discardLogger()
	}
	if r.notify == nil {
		r.notify = &notify.Recorder{}
	}
	start := opts.StartPath
	if start == "" {
		start = ListPath
	}
	r.mount(start)
	return r
}

// Path is the route currently mounted.
func (r *Router) Path() string { return r.path }

// Current is the mounted view.
func (r *Router) Current() View { return r.view }

func (r *Router) Init() tea.Cmd {
	cmd := r.view.Init()
	if r.toasts != nil {
		cmd = tea.Batch(cmd, toastTick())
	}
	return cmd
}

func (r *Router) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.size = &msg
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return r, r.quit()
		}
	case quitMsg:
		return r, r.quit()
	case NavigateMsg:
		return r, r.navigate(msg.Path)
	case toastTickMsg:
		return r, toastTick()
	case addressed:
		if msg.addressedTo() != r.token {
			r.logger.Debug("dropping result for unmounted view", "msg", fmt.Sprintf("%T", msg))
			return r, nil
		}
	}

	v, cmd := r.view.Update(msg)
	r.view = v
	return r, cmd
}

func (r *Router) View() string {
	var b strings.Builder
	b.WriteString(r.view.View())
	if r.toasts != nil {
		for _, t := range r.toasts.Active() {
			b.WriteString("\n")
			if t.Level == notify.LevelError {
				b.WriteString(Styles.Error.Render(t.Message))
			} else {
				b.WriteString(Styles.Success.Render(t.Message))
			}
		}
	}
	return b.String()
}

func (r *Router) navigate(path string) tea.Cmd {
	r.mount(path)
	cmd := r.view.Init()
	if r.size != nil {
		var sizeCmd tea.Cmd
		r.view, sizeCmd = r.view.Update(*r.size)
		cmd = tea.Batch(cmd, sizeCmd)
	}
	return cmd
}

// mount tears down the current view and builds a fresh one for path.
func (r *Router) mount(path string) {
	r.teardown()
	route := ParseRoute(path)
	r.path = route.Path()

	ctx, cancel := context.WithCancel(r.ctx)
	r.lastToken++
	r.token = r.lastToken
	r.cancel = cancel
	e := env{ctx: ctx, token: r.token, api: r.api, notify: r.notify, logger: r.logger}

	switch route.Kind {
	case RouteEdit:
		r.view = newEditView(e, route.ID)
	default:
		r.view = newListView(e)
	}
	r.logger.Debug("mounted view", "path", r.path, "token", r.token)
}

// teardown cancels in-flight requests of the mounted view and retires its token.
func (r *Router) teardown() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.token = 0
}

func (r *Router) quit() tea.Cmd {
	r.teardown()
	return tea.Quit
}

func toastTick() tea.Cmd {
	return tea.Tick(toastRefresh, func(t time.Time) tea.Msg { return toastTickMsg(t) })
}
