package repo

import (
	"context"
	"errors"

	dom "github.com/Joshcode41/todo-app/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no todo matches the given id.
var ErrNotFound = errors.New("todo not found")

type TodoRepo interface {
	Create(ctx context.Context, t dom.Todo) (dom.Todo, error)
	GetByID(ctx context.Context, id string) (dom.Todo, error)
	List(ctx context.Context) ([]dom.Todo, error)
	Update(ctx context.Context, id string, patch dom.Todo) (dom.Todo, error)
	Delete(ctx context.Context, id string) error
}

type PGTodoRepo struct {
	db *pgxpool.Pool
}

func NewPGTodoRepo(db *pgxpool.Pool) *PGTodoRepo {
	return &PGTodoRepo{db: db}
}

func (r *PGTodoRepo) Create(ctx context.Context, t dom.Todo) (dom.Todo, error) {
	query := `
		INSERT INTO todos (id, title, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING id, title, description, created_at, updated_at`
	var out dom.Todo
	err := r.db.QueryRow(ctx, query, t.ID, t.Title, t.Description, t.CreatedAt).Scan(
		&out.ID, &out.Title, &out.Description, &out.CreatedAt, &out.UpdatedAt,
	)
	return out, err
}

func (r *PGTodoRepo) GetByID(ctx context.Context, id string) (dom.Todo, error) {
	query := `
		SELECT id, title, description, created_at, updated_at
		FROM todos WHERE id = $1`
	var t dom.Todo
	err := r.db.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Title, &t.Description, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, mapPGErr(err)
}

func (r *PGTodoRepo) List(ctx context.Context) ([]dom.Todo, error) {
	query := `
		SELECT id, title, description, created_at, updated_at
		FROM todos ORDER BY created_at ASC, id ASC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := []dom.Todo{}
	for rows.Next() {
		var t dom.Todo
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func (r *PGTodoRepo) Update(ctx context.Context, id string, patch dom.Todo) (dom.Todo, error) {
	query := `
		UPDATE todos SET title = $2, description = $3, updated_at = $4
		WHERE id = $1
		RETURNING id, title, description, created_at, updated_at`
	var t dom.Todo
	err := r.db.QueryRow(ctx, query, id, patch.Title, patch.Description, patch.UpdatedAt).Scan(
		&t.ID, &t.Title, &t.Description, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, mapPGErr(err)
}

// Delete removes the row. Deleting a missing id is not an error.
func (r *PGTodoRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id)
	return err
}

func mapPGErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
