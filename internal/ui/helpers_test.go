package ui

import (
	"context"
	"errors"
	"os"
	"strconv"
	"sync"
	"testing"

	"github.com/Joshcode41/todo-app/internal/client"
	dom "github.com/Joshcode41/todo-app/internal/domain"
	"github.com/Joshcode41/todo-app/internal/notify"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

var _ TodoAPI = (*client.Client)(nil)

var errBoom = errors.New("boom")

// fakeAPI is an in-memory TodoAPI that records how often it is called.
type fakeAPI struct {
	mu    sync.Mutex
	todos []dom.Todo
	calls map[string]int

	nextID    int
	listErr   error
	getErr    error
	createErr error
	updateErr error
	deleteErr error

	lastCreate [2]string
	lastUpdate dom.Todo
}

func newFakeAPI(todos ...dom.Todo) *fakeAPI {
	return &fakeAPI{todos: todos, calls: map[string]int{}, nextID: 100}
}

func (f *fakeAPI) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeAPI) List(ctx context.Context) ([]dom.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["list"]++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]dom.Todo{}, f.todos...), nil
}

func (f *fakeAPI) Get(ctx context.Context, id string) (dom.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["get"]++
	if f.getErr != nil {
		return dom.Todo{}, f.getErr
	}
	for _, t := range f.todos {
		if t.ID == id {
			return t, nil
		}
	}
	return dom.Todo{}, &client.StatusError{Op: "get", StatusCode: 404, Message: "not found"}
}

func (f *fakeAPI) Create(ctx context.Context, title, description string) (dom.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["create"]++
	f.lastCreate = [2]string{title, description}
	if f.createErr != nil {
		return dom.Todo{}, f.createErr
	}
	f.nextID++
	t := dom.Todo{ID: strconv.Itoa(f.nextID), Title: title, Description: description}
	f.todos = append(f.todos, t)
	return t, nil
}

func (f *fakeAPI) Update(ctx context.Context, t dom.Todo) (dom.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["update"]++
	f.lastUpdate = t
	if f.updateErr != nil {
		return dom.Todo{}, f.updateErr
	}
	return t, nil
}

func (f *fakeAPI) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["delete"]++
	return f.deleteErr
}

func testEnv(api TodoAPI, rec *notify.Recorder) env {
	return env{ctx: context.Background(), token: 1, api: api, notify: rec, logger: discardLogger()}
}

func TestMain(m *testing.M) {
	// Blinking cursors schedule timed commands that would stall exec.
	cursorMode = cursor.CursorStatic
	os.Exit(m.Run())
}

// exec runs cmd and returns the messages it produced, flattening batches.
// Spinner ticks are dropped.
func exec(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	switch msg := msg.(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, exec(c)...)
		}
		return out
	case spinner.TickMsg:
		return nil
	case nil:
		return nil
	}
	return []tea.Msg{msg}
}

// feed delivers every message to v and returns the commands v produced.
func feed(v View, msgs []tea.Msg) (View, []tea.Cmd) {
	var cmds []tea.Cmd
	for _, m := range msgs {
		var cmd tea.Cmd
		v, cmd = v.Update(m)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return v, cmds
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func messages(rec *notify.Recorder) []string {
	var out []string
	for _, e := range rec.Entries() {
		out = append(out, e.Message)
	}
	return out
}
