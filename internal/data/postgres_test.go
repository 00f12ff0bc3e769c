package data

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestPostgres connects to BOOKSTORE_TEST_POSTGRES_DSN and creates a
// throwaway table that is dropped when the test ends.
func openTestPostgres(t *testing.T) *PostgresBookModel {
	t.Helper()

	dsn := os.Getenv("BOOKSTORE_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("BOOKSTORE_TEST_POSTGRES_DSN not set")
	}

	table := "books_" + newID()
	m, err := OpenPostgres(context.Background(), StoreConfig{
		Driver:     DriverPostgres,
		URI:        dsn,
		Collection: table,
		Timeout:    5 * time.Second,
	})
	require.NoError(t, err)

	_, err = m.DB.ExecContext(context.Background(), fmt.Sprintf(`
		CREATE TABLE %s (
			id               CHAR(24)    PRIMARY KEY,
			title            TEXT        NOT NULL,
			author           TEXT        NOT NULL,
			genre            TEXT        NOT NULL,
			publication_date TIMESTAMPTZ NOT NULL
		)`, pq.QuoteIdentifier(table)))
	require.NoError(t, err)

	t.Cleanup(func() {
		ctx := context.Background()
		_, _ = m.DB.ExecContext(ctx, "DROP TABLE IF EXISTS "+pq.QuoteIdentifier(table))
		_ = m.Close(ctx)
	})
	return m
}

func TestPostgresBookModel(t *testing.T) {
	exerciseStore(t, openTestPostgres(t))
}

func TestPostgresBookModel_MissingTable(t *testing.T) {
	m := openTestPostgres(t)
	missing := NewPostgresBookModel(m.DB, "no_such_table")

	_, err := missing.GetAll(context.Background())

	var pqErr *pq.Error
	require.ErrorAs(t, err, &pqErr)
	assert.Equal(t, pq.ErrorCode("42P01"), pqErr.Code)
}

func TestNewPostgresBookModel_DefaultTable(t *testing.T) {
	m := NewPostgresBookModel(nil, "")
	assert.Equal(t, `"books"`, m.table)
}
