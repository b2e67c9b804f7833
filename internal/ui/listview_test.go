package ui

import (
	"fmt"
	"testing"

	dom "github.com/Joshcode41/todo-app/internal/domain"
	"github.com/Joshcode41/todo-app/internal/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadedListView(t *testing.T, api *fakeAPI, rec *notify.Recorder) *ListView {
	t.Helper()
	l := newListView(testEnv(api, rec))
	v, _ := feed(l, exec(l.Init()))
	return v.(*ListView)
}

func ids(todos []dom.Todo) []string {
	out := []string{}
	for _, t := range todos {
		out = append(out, t.ID)
	}
	return out
}

func TestListView_LoadReplacesCollection(t *testing.T) {
	api := newFakeAPI(dom.Todo{ID: "1", Title: "A", Description: "a"}, dom.Todo{ID: "2", Title: "B", Description: "b"})
	rec := &notify.Recorder{}
	l := newListView(testEnv(api, rec))

	cmd := l.Init()
	assert.True(t, l.loading)
	assert.Contains(t, l.View(), "Loading todos...")

	feed(l, exec(cmd))
	assert.False(t, l.loading)
	assert.Equal(t, []string{"1", "2"}, ids(l.Todos()))
	assert.Empty(t, rec.Entries())
	assert.NotContains(t, l.View(), "Loading todos...")
}

func TestListView_LoadFailureKeepsEmptyCollection(t *testing.T) {
	api := newFakeAPI()
	api.listErr = errBoom
	rec := &notify.Recorder{}

	l := loadedListView(t, api, rec)

	assert.Empty(t, l.Todos())
	assert.NotNil(t, l.Todos())
	assert.Equal(t, []notify.Toast{{Level: notify.LevelError, Message: "Failed to fetch todos"}}, rec.Entries())
}

func TestListView_ReloadIgnoredWhileLoading(t *testing.T) {
	api := newFakeAPI()
	l := newListView(testEnv(api, &notify.Recorder{}))

	first := l.Init()
	_, second := l.Update(keyMsg("r"))
	assert.Nil(t, second)

	exec(first)
	assert.Equal(t, 1, api.count("list"))
}

func TestListView_CreateAppendsAndClearsInputs(t *testing.T) {
	api := newFakeAPI()
	api.nextID = 6
	rec := &notify.Recorder{}
	l := loadedListView(t, api, rec)

	l.form.set("Buy milk", "2%")
	_, cmd := l.Update(keyMsg("ctrl+s"))
	require.NotNil(t, cmd)
	assert.True(t, l.submitting)
	assert.Contains(t, l.View(), "Adding...")
	assert.NotContains(t, l.View(), "+ Add Todo")

	feed(l, exec(cmd))

	assert.Equal(t, 1, api.count("create"))
	assert.Equal(t, [2]string{"Buy milk", "2%"}, api.lastCreate)
	require.Len(t, l.Todos(), 1)
	assert.Equal(t, "7", l.Todos()[0].ID)
	assert.Equal(t, "", l.form.title.Value())
	assert.Equal(t, "", l.form.description.Value())
	assert.False(t, l.submitting)
	assert.Contains(t, l.View(), "+ Add Todo")
	last, _ := rec.Last()
	assert.Equal(t, notify.Toast{Level: notify.LevelSuccess, Message: "Todo added successfully"}, last)
}

func TestListView_CreateRequiresBothFields(t *testing.T) {
	cases := []struct {
		name        string
		title, desc string
	}{
		{"empty title", "", "x"},
		{"empty description", "x", ""},
		{"both empty", "", ""},
		{"whitespace title", "   ", "x"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			api := newFakeAPI()
			rec := &notify.Recorder{}
			l := loadedListView(t, api, rec)

			l.form.set(tc.title, tc.desc)
			_, cmd := l.Update(keyMsg("ctrl+s"))

			assert.Nil(t, cmd)
			assert.False(t, l.submitting)
			assert.Equal(t, 0, api.count("create"))
			assert.Equal(t, []string{"Title and description are required"}, messages(rec))
		})
	}
}

func TestListView_CreateFailureKeepsInputs(t *testing.T) {
	api := newFakeAPI()
	api.createErr = errBoom
	rec := &notify.Recorder{}
	l := loadedListView(t, api, rec)

	l.form.set("Buy milk", "2%")
	_, cmd := l.Update(keyMsg("ctrl+s"))
	feed(l, exec(cmd))

	assert.Empty(t, l.Todos())
	assert.Equal(t, "Buy milk", l.form.title.Value())
	assert.Equal(t, "2%", l.form.description.Value())
	assert.False(t, l.submitting)
	assert.Equal(t, []string{"Failed to add todo"}, messages(rec))
}

func TestListView_DoubleSubmitSendsOneRequest(t *testing.T) {
	api := newFakeAPI()
	rec := &notify.Recorder{}
	l := loadedListView(t, api, rec)

	l.form.set("Buy milk", "2%")
	_, first := l.Update(keyMsg("ctrl+s"))
	_, second := l.Update(keyMsg("ctrl+s"))
	require.NotNil(t, first)
	assert.Nil(t, second)

	feed(l, exec(first))
	assert.Equal(t, 1, api.count("create"))
	assert.Len(t, l.Todos(), 1)
}

func TestListView_IgnoresCreateResultOfAnotherRequest(t *testing.T) {
	rec := &notify.Recorder{}
	l := loadedListView(t, newFakeAPI(), rec)

	l.Update(todoCreatedMsg{result: l.result(), seq: 42, todo: dom.Todo{ID: "x"}})

	assert.Empty(t, l.Todos())
	assert.Empty(t, rec.Entries())
}

func TestListView_DeleteRemovesExactlyThatItem(t *testing.T) {
	for size := 1; size <= 5; size++ {
		for target := 0; target < size; target++ {
			t.Run(fmt.Sprintf("%d_of_%d", target, size), func(t *testing.T) {
				var todos []dom.Todo
				for i := 0; i < size; i++ {
					todos = append(todos, dom.Todo{ID: fmt.Sprint(i + 1), Title: "t", Description: "d"})
				}
				api := newFakeAPI(todos...)
				l := loadedListView(t, api, &notify.Recorder{})

				cmd := l.remove(todos[target].ID)
				feed(l, exec(cmd))

				want := ids(append(append([]dom.Todo{}, todos[:target]...), todos[target+1:]...))
				assert.Equal(t, want, ids(l.Todos()))
				assert.Equal(t, 1, api.count("delete"))
			})
		}
	}
}

func TestListView_DeleteIsOptimistic(t *testing.T) {
	api := newFakeAPI(dom.Todo{ID: "1", Title: "A", Description: "a"})
	rec := &notify.Recorder{}
	l := loadedListView(t, api, rec)

	// The request is never executed, i.e. it never completes.
	_, cmd := l.Update(keyMsg("d"))
	require.NotNil(t, cmd)

	assert.Equal(t, []dom.Todo{}, l.Todos())
	assert.Equal(t, []string{"Todo deleted successfully"}, messages(rec))
}

func TestListView_DeleteFailureRestoresPosition(t *testing.T) {
	api := newFakeAPI(
		dom.Todo{ID: "1", Title: "A", Description: "a"},
		dom.Todo{ID: "2", Title: "B", Description: "b"},
		dom.Todo{ID: "3", Title: "C", Description: "c"},
	)
	api.deleteErr = errBoom
	rec := &notify.Recorder{}
	l := loadedListView(t, api, rec)

	cmd := l.remove("2")
	assert.Equal(t, []string{"1", "3"}, ids(l.Todos()))
	feed(l, exec(cmd))

	assert.Equal(t, []string{"1", "2", "3"}, ids(l.Todos()))
	assert.Equal(t, []string{"Todo deleted successfully", "Failed to delete todo"}, messages(rec))
}

func TestListView_DeleteFailureClampsRestoreIndex(t *testing.T) {
	api := newFakeAPI(
		dom.Todo{ID: "1", Title: "A", Description: "a"},
		dom.Todo{ID: "2", Title: "B", Description: "b"},
	)
	api.deleteErr = errBoom
	l := loadedListView(t, api, &notify.Recorder{})

	failing := l.remove("2")
	api.deleteErr = nil
	feed(l, exec(l.remove("1")))
	feed(l, exec(failing))

	assert.Equal(t, []string{"2"}, ids(l.Todos()))
}

func TestListView_EditNavigates(t *testing.T) {
	api := newFakeAPI(dom.Todo{ID: "1", Title: "A", Description: "a"}, dom.Todo{ID: "2", Title: "B", Description: "b"})
	l := loadedListView(t, api, &notify.Recorder{})

	l.Update(keyMsg("j"))
	_, cmd := l.Update(keyMsg("e"))
	require.NotNil(t, cmd)

	assert.Equal(t, NavigateMsg{Path: "/Todo/Edit/2"}, cmd())
	assert.Len(t, l.Todos(), 2)
}

func TestListView_QuitOnlyFromList(t *testing.T) {
	l := loadedListView(t, newFakeAPI(), &notify.Recorder{})

	_, cmd := l.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, quitMsg{}, cmd())

	l.Update(keyMsg("a"))
	l.Update(keyMsg("q"))
	assert.Equal(t, "q", l.form.title.Value())
}

func TestListView_FormFocusCycle(t *testing.T) {
	l := loadedListView(t, newFakeAPI(), &notify.Recorder{})

	l.Update(keyMsg("a"))
	assert.Equal(t, fieldTitle, l.form.focused)
	l.Update(keyMsg("tab"))
	assert.Equal(t, fieldDescription, l.form.focused)
	l.Update(keyMsg("shift+tab"))
	assert.Equal(t, fieldTitle, l.form.focused)
	l.Update(keyMsg("esc"))
	assert.Equal(t, fieldNone, l.form.focused)
}

func TestListView_IgnoresForeignToken(t *testing.T) {
	rec := &notify.Recorder{}
	l := loadedListView(t, newFakeAPI(), rec)

	l.Update(todosLoadedMsg{result: result{token: 99}, todos: []dom.Todo{{ID: "x"}}})
	assert.Empty(t, l.Todos())
}

func TestListView_RowKeysIgnoredWhileLoading(t *testing.T) {
	api := newFakeAPI(dom.Todo{ID: "1", Title: "A", Description: "a"}, dom.Todo{ID: "2", Title: "B", Description: "b"})
	rec := &notify.Recorder{}
	l := loadedListView(t, api, rec)

	reload := l.load()
	for _, k := range []string{"j", "e", "enter", "d"} {
		_, cmd := l.Update(keyMsg(k))
		assert.Nil(t, cmd, k)
	}
	assert.Nil(t, l.remove("1"))

	feed(l, exec(reload))
	assert.Equal(t, []string{"1", "2"}, ids(l.Todos()))
	assert.Equal(t, 0, l.cursor)
	assert.Equal(t, 0, api.count("delete"))
	assert.Empty(t, rec.Entries())
}

func TestListView_LoadKeepsChangesMadeWhileInFlight(t *testing.T) {
	api := newFakeAPI(dom.Todo{ID: "1", Title: "A", Description: "a"}, dom.Todo{ID: "2", Title: "B", Description: "b"})
	l := loadedListView(t, api, &notify.Recorder{})

	// A delete is still in flight when the reload starts.
	pendingDelete := l.remove("1")
	reload := l.load()
	// The reload is answered before the delete reaches the server.
	loaded := exec(reload)

	l.form.set("Buy milk", "2%")
	_, create := l.Update(keyMsg("ctrl+s"))
	require.NotNil(t, create)
	feed(l, exec(create))

	feed(l, loaded)
	assert.Equal(t, []string{"2", "101"}, ids(l.Todos()))

	feed(l, exec(pendingDelete))
	assert.Equal(t, []string{"2", "101"}, ids(l.Todos()))
}
