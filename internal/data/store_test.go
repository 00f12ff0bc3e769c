package data

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore runs the behaviour every BookStore must share against s.
// s must start empty.
func exerciseStore(t *testing.T, s BookStore) {
	t.Helper()
	ctx := context.Background()

	books, err := s.GetAll(ctx)
	require.NoError(t, err)
	require.Empty(t, books)

	dune := &Book{
		Title:           "Dune",
		Author:          "Herbert",
		Genre:           "SciFi",
		PublicationDate: time.Date(1965, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.Insert(ctx, dune))
	assert.Len(t, dune.ID, 24)

	messiah := &Book{
		Title:           "Dune Messiah",
		Author:          "Herbert",
		Genre:           "SciFi",
		PublicationDate: time.Date(1969, 10, 15, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.Insert(ctx, messiah))
	assert.NotEqual(t, dune.ID, messiah.ID)

	got, err := s.Get(ctx, dune.ID)
	require.NoError(t, err)
	assert.Equal(t, dune.ID, got.ID)
	assert.Equal(t, dune.Title, got.Title)
	assert.True(t, dune.PublicationDate.Equal(got.PublicationDate))

	books, err = s.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, dune.ID, books[0].ID, "books are ordered by id")
	assert.Equal(t, messiah.ID, books[1].ID)

	got.Genre = "Science Fiction"
	require.NoError(t, s.Update(ctx, got))

	again, err := s.Get(ctx, dune.ID)
	require.NoError(t, err)
	assert.Equal(t, "Science Fiction", again.Genre)
	assert.Equal(t, "Dune", again.Title)

	require.NoError(t, s.Delete(ctx, dune.ID))

	_, err = s.Get(ctx, dune.ID)
	assert.True(t, errors.Is(err, ErrRecordNotFound))

	err = s.Delete(ctx, dune.ID)
	assert.True(t, errors.Is(err, ErrRecordNotFound))

	err = s.Update(ctx, got)
	assert.True(t, errors.Is(err, ErrRecordNotFound))

	_, err = s.Get(ctx, "507f1f77bcf86cd799439011")
	assert.True(t, errors.Is(err, ErrRecordNotFound))

	assert.NoError(t, s.Ping(ctx))
}
