package repo

import (
	"database/sql"
	"fmt"

	"github.com/Joshcode41/todo-app/migrations"

	"github.com/pressly/goose/v3"
)

// Migrate applies the embedded migrations for dialect ("postgres" or "sqlite3").
func Migrate(db *sql.DB, dialect string) error {
	dir := migrations.PostgresDir
	if dialect == "sqlite3" {
		dir = migrations.SQLiteDir
	}
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
