package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	dom "github.com/Joshcode41/todo-app/internal/domain"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SQLiteTodoRepo implements TodoRepo on a local SQLite database.
type SQLiteTodoRepo struct {
	db *sqlx.DB
}

func NewSQLiteTodoRepo(db *sqlx.DB) *SQLiteTodoRepo {
	return &SQLiteTodoRepo{db: db}
}

// OpenSQLite opens (or creates) the database at path and enables WAL mode.
// Pragmas travel in the DSN so every pooled connection gets them. Writes are
// serialized through a single connection; ":memory:" needs that anyway so every
// query sees the same database.
func OpenSQLite(path string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	return db, nil
}

func sqliteDSN(path string) string {
	const pragmas = "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	if path == ":memory:" {
		return "file::memory:?" + pragmas
	}
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}
	if strings.Contains(path, "?") {
		return path + "&" + pragmas
	}
	return path + "?" + pragmas
}

func (r *SQLiteTodoRepo) Create(ctx context.Context, t dom.Todo) (dom.Todo, error) {
	t.UpdatedAt = t.CreatedAt
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO todos (id, title, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Description, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return dom.Todo{}, fmt.Errorf("creating todo: %w", err)
	}
	return r.GetByID(ctx, t.ID)
}

func (r *SQLiteTodoRepo) GetByID(ctx context.Context, id string) (dom.Todo, error) {
	var t dom.Todo
	err := r.db.GetContext(ctx, &t, `
		SELECT id, title, description, created_at, updated_at
		FROM todos WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return dom.Todo{}, ErrNotFound
	}
	return t, err
}

func (r *SQLiteTodoRepo) List(ctx context.Context) ([]dom.Todo, error) {
	list := []dom.Todo{}
	err := r.db.SelectContext(ctx, &list, `
		SELECT id, title, description, created_at, updated_at
		FROM todos ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing todos: %w", err)
	}
	return list, nil
}

func (r *SQLiteTodoRepo) Update(ctx context.Context, id string, patch dom.Todo) (dom.Todo, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE todos SET title = ?, description = ?, updated_at = ?
		WHERE id = ?`,
		patch.Title, patch.Description, patch.UpdatedAt, id,
	)
	if err != nil {
		return dom.Todo{}, fmt.Errorf("updating todo: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return dom.Todo{}, fmt.Errorf("checking rows affected: %w", err)
	}
	if n == 0 {
		return dom.Todo{}, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *SQLiteTodoRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting todo: %w", err)
	}
	return nil
}
