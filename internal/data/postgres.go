// internal/data/postgres.go
package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// PostgresBookModel keeps books in a PostgreSQL table. The table is expected to exist:
//
//	CREATE TABLE books (
//	    id               CHAR(24)    PRIMARY KEY,
//	    title            TEXT        NOT NULL,
//	    author           TEXT        NOT NULL,
//	    genre            TEXT        NOT NULL,
//	    publication_date TIMESTAMPTZ NOT NULL
//	);
type PostgresBookModel struct {
	DB    *sql.DB
	table string // quoted identifier
}

// OpenPostgres opens a connection pool for cfg.URI and pings it within cfg.Timeout.
// cfg.Collection names the table.
func OpenPostgres(ctx context.Context, cfg StoreConfig) (*PostgresBookModel, error) {
	db, err := sql.Open("postgres", cfg.URI)
	if err != nil {
		return nil, err
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return NewPostgresBookModel(db, cfg.Collection), nil
}

// NewPostgresBookModel wraps an open pool. An empty table name means "books".
func NewPostgresBookModel(db *sql.DB, table string) *PostgresBookModel {
	if table == "" {
		table = "books"
	}
	return &PostgresBookModel{DB: db, table: pq.QuoteIdentifier(table)}
}

// GetAll returns every book ordered by id, which follows creation order for ObjectIDs.
func (m *PostgresBookModel) GetAll(ctx context.Context) ([]*Book, error) {
	query := fmt.Sprintf(`
		SELECT id, title, author, genre, publication_date
		FROM %s
		ORDER BY id ASC`, m.table)

	rows, err := m.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []*Book{}
	for rows.Next() {
		var book Book
		err := rows.Scan(
			&book.ID,
			&book.Title,
			&book.Author,
			&book.Genre,
			&book.PublicationDate,
		)
		if err != nil {
			return nil, err
		}
		book.PublicationDate = book.PublicationDate.UTC()
		books = append(books, &book)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return books, nil
}

// Get retrieves a single book by id.
func (m *PostgresBookModel) Get(ctx context.Context, id string) (*Book, error) {
	query := fmt.Sprintf(`
		SELECT id, title, author, genre, publication_date
		FROM %s
		WHERE id = $1`, m.table)

	var book Book
	err := m.DB.QueryRowContext(ctx, query, id).Scan(
		&book.ID,
		&book.Title,
		&book.Author,
		&book.Genre,
		&book.PublicationDate,
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	book.PublicationDate = book.PublicationDate.UTC()
	return &book, nil
}

// Insert adds a new row. The generated id is written back into book only on success.
func (m *PostgresBookModel) Insert(ctx context.Context, book *Book) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, title, author, genre, publication_date)
		VALUES ($1, $2, $3, $4, $5)`, m.table)

	id := newID()
	_, err := m.DB.ExecContext(ctx, query,
		id,
		book.Title,
		book.Author,
		book.Genre,
		book.PublicationDate,
	)
	if err != nil {
		return err
	}

	book.ID = id
	return nil
}

// Update saves every content field of book.
func (m *PostgresBookModel) Update(ctx context.Context, book *Book) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, author = $2, genre = $3, publication_date = $4
		WHERE id = $5`, m.table)

	args := []any{
		book.Title,
		book.Author,
		book.Genre,
		book.PublicationDate,
		book.ID,
	}

	result, err := m.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return checkAffected(result)
}

// Delete removes the row with the given id.
func (m *PostgresBookModel) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, m.table)

	result, err := m.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffected(result)
}

// Ping verifies the pool can reach the server.
func (m *PostgresBookModel) Ping(ctx context.Context) error {
	return m.DB.PingContext(ctx)
}

// Close closes the pool.
func (m *PostgresBookModel) Close(_ context.Context) error {
	return m.DB.Close()
}

func checkAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
