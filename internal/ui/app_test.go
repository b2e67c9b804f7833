package ui

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Joshcode41/todo-app/internal/app"
	"github.com/Joshcode41/todo-app/internal/client"
	"github.com/Joshcode41/todo-app/internal/config"
	dom "github.com/Joshcode41/todo-app/internal/domain"
	"github.com/Joshcode41/todo-app/internal/notify"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// step feeds msg to the router and runs whatever it schedules until nothing
// is left.
func step(r *Router, msg tea.Msg) {
	_, cmd := r.Update(msg)
	for _, m := range exec(cmd) {
		step(r, m)
	}
}

func TestRouter_StartsOnRequestedRoute(t *testing.T) {
	api := newFakeAPI(dom.Todo{ID: "7", Title: "A", Description: "a"})

	r := NewRouter(Options{API: api})
	assert.Equal(t, "/", r.Path())
	assert.IsType(t, &ListView{}, r.Current())

	r = NewRouter(Options{API: api, StartPath: "/Todo/Edit/7"})
	assert.Equal(t, "/Todo/Edit/7", r.Path())
	require.IsType(t, &EditView{}, r.Current())
	assert.Equal(t, "7", r.Current().(*EditView).ID())

	r = NewRouter(Options{API: api, StartPath: "/nowhere"})
	assert.Equal(t, "/", r.Path())
}

func TestRouter_NavigationMountsFreshViewAndCancelsOld(t *testing.T) {
	api := newFakeAPI(dom.Todo{ID: "7", Title: "A", Description: "a"})
	r := NewRouter(Options{API: api})
	first := r.Current().(*ListView)
	firstCtx := first.ctx

	r.Update(NavigateMsg{Path: EditPath("7")})
	require.IsType(t, &EditView{}, r.Current())
	assert.ErrorIs(t, firstCtx.Err(), context.Canceled)

	r.Update(NavigateMsg{Path: ListPath})
	second := r.Current().(*ListView)
	assert.NotSame(t, first, second)
	assert.NotEqual(t, first.token, second.token)
}

func TestRouter_DropsResultsForUnmountedView(t *testing.T) {
	api := newFakeAPI(dom.Todo{ID: "7", Title: "A", Description: "a"})
	rec := &notify.Recorder{}
	r := NewRouter(Options{API: api, Notifier: rec})
	list := r.Current().(*ListView)
	pending := list.Init()

	r.Update(NavigateMsg{Path: EditPath("7")})
	edit := r.Current().(*EditView)

	// The list request resolves after the user already left.
	for _, m := range exec(pending) {
		r.Update(m)
	}
	r.Update(todosLoadedMsg{result: list.result(), err: errBoom})

	assert.Same(t, edit, r.Current())
	assert.Empty(t, list.Todos())
	assert.Empty(t, rec.Entries())
}

func TestRouter_QuitCancelsView(t *testing.T) {
	r := NewRouter(Options{API: newFakeAPI()})
	ctx := r.Current().(*ListView).ctx

	_, cmd := r.Update(keyMsg("ctrl+c"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.ErrorIs(t, ctx.Err(), context.Canceled)

	r = NewRouter(Options{API: newFakeAPI()})
	_, cmd = r.Update(quitMsg{})
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestRouter_RendersToasts(t *testing.T) {
	toaster := notify.NewToaster(time.Minute)
	r := NewRouter(Options{API: newFakeAPI(), Notifier: toaster, Toasts: toaster})

	toaster.Success("Todo added successfully")
	toaster.Error("Failed to add todo")

	out := r.View()
	assert.Contains(t, out, "Todo added successfully")
	assert.Contains(t, out, "Failed to add todo")
}

func TestRouter_EditFlowAgainstService(t *testing.T) {
	gin.SetMode(gin.TestMode)
	a, err := app.New(config.Config{
		App:   config.AppConfig{Env: "test"},
		Store: config.StoreConfig{Driver: config.DriverSQLite, SQLitePath: ":memory:"},
	}, log.New(io.Discard))
	require.NoError(t, err)
	srv := httptest.NewServer(a.Router())
	t.Cleanup(func() {
		srv.Close()
		_ = a.Close(context.Background())
	})

	api := client.New(srv.URL, 5*time.Second)
	rec := &notify.Recorder{}
	r := NewRouter(Options{API: api, Notifier: rec})
	for _, m := range exec(r.Init()) {
		step(r, m)
	}

	list := r.Current().(*ListView)
	assert.Empty(t, list.Todos())
	list.form.set("Buy milk", "2%")
	step(r, keyMsg("ctrl+s"))
	require.Len(t, list.Todos(), 1)
	id := list.Todos()[0].ID

	step(r, keyMsg("e"))
	require.Equal(t, EditPath(id), r.Path())
	edit := r.Current().(*EditView)
	assert.Equal(t, "Buy milk", edit.form.title.Value())

	edit.form.set("Buy oat milk", "1L")
	step(r, keyMsg("ctrl+s"))

	require.Equal(t, "/", r.Path())
	fresh := r.Current().(*ListView)
	require.Len(t, fresh.Todos(), 1)
	assert.Equal(t, "Buy oat milk", fresh.Todos()[0].Title)
	assert.Equal(t, []string{"Todo added successfully", "Todo updated successfully"}, messages(rec))
}
