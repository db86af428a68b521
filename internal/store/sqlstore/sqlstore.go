package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"iter"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"

	"github.com/Makepad-fr/todosql/internal/model"
)

// SQLite-backed storage. Single file, one table, one statement per operation.
// No locking beyond what SQLite does on its own; fine for a local single-user CLI.

const driverName = "sqlite"

const (
	createTableSQL = `CREATE TABLE IF NOT EXISTS todos (
	id integer PRIMARY KEY,
	todo varchar(255) NOT NULL,
	checked BOOLEAN DEFAULT FALSE)`
	insertSQL        = `INSERT INTO todos (todo) VALUES (?)`
	selectAllSQL     = `SELECT id, todo, checked FROM todos ORDER BY id`
	selectPendingSQL = `SELECT id, todo, checked FROM todos WHERE checked = FALSE ORDER BY id`
	checkSQL         = `UPDATE todos SET checked = TRUE WHERE id = ?`
)

// Store is an open handle on a todos database file.
type Store struct {
	db   *sql.DB
	path string
	log  *log.Logger
}

// Open opens the database at path, creating the file if it does not exist.
// A nil logger discards store diagnostics.
func Open(ctx context.Context, path string, logger *log.Logger) (*Store, error) {
	if path == "" {
		return nil, &OpenError{Path: path, Err: errors.New("empty database path")}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	// one process, one statement at a time
	db.SetMaxOpenConns(1)

	// sql.Open is lazy; ping so a bad path fails here and the file gets created.
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, &OpenError{Path: path, Err: err}
	}
	logger.Debug("opened database", "path", path)
	return &Store{db: db, path: path, log: logger}, nil
}

// Path returns the database file path the store was opened with.
func (s *Store) Path() string { return s.path }

// Close releases the underlying connection.
func (s *Store) Close() error { return s.db.Close() }

// Init creates the todos table if it is missing. Calling it again is a no-op.
func (s *Store) Init(ctx context.Context) error {
	s.log.Debug("exec", "sql", "create table todos")
	if _, err := s.db.ExecContext(ctx, createTableSQL); err != nil {
		return &SchemaError{Err: err}
	}
	return nil
}

// Add inserts an unchecked todo and returns its id.
// Text is stored as given, including the empty string.
func (s *Store) Add(ctx context.Context, text string) (int64, error) {
	s.log.Debug("exec", "sql", "insert todo", "len", len(text))
	res, err := s.db.ExecContext(ctx, insertSQL, text)
	if err != nil {
		return 0, &WriteError{Op: "add todo", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, &WriteError{Op: "add todo", Err: err}
	}
	return id, nil
}

// Check marks the todo with the given id as checked.
// An id that matches no row is not an error.
func (s *Store) Check(ctx context.Context, id int64) error {
	s.log.Debug("exec", "sql", "check todo", "id", id)
	res, err := s.db.ExecContext(ctx, checkSQL, id)
	if err != nil {
		return &WriteError{Op: "check todo", Err: err}
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		s.log.Debug("check matched no rows", "id", id)
	}
	return nil
}

// All yields every todo ordered by id. Each call runs a fresh query.
func (s *Store) All(ctx context.Context) iter.Seq2[model.Todo, error] {
	return s.query(ctx, "list all todos", selectAllSQL)
}

// Unchecked yields the todos that are not checked yet, ordered by id.
func (s *Store) Unchecked(ctx context.Context) iter.Seq2[model.Todo, error] {
	return s.query(ctx, "list todos", selectPendingSQL)
}

func (s *Store) query(ctx context.Context, op, q string) iter.Seq2[model.Todo, error] {
	return func(yield func(model.Todo, error) bool) {
		s.log.Debug("query", "op", op)
		rows, err := s.db.QueryContext(ctx, q)
		if err != nil {
			yield(model.Todo{}, &ReadError{Op: op, Err: err})
			return
		}
		defer rows.Close()

		for rows.Next() {
			var t model.Todo
			if err := rows.Scan(&t.ID, &t.Text, &t.Checked); err != nil {
				yield(model.Todo{}, &ReadError{Op: op, Err: err})
				return
			}
			if !yield(t, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(model.Todo{}, &ReadError{Op: op, Err: err})
		}
	}
}

// Collect drains a todo sequence into a slice, stopping at the first error.
func Collect(seq iter.Seq2[model.Todo, error]) ([]model.Todo, error) {
	var out []model.Todo
	for t, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
