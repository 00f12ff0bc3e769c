package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/aoideee/bookshelf-api/internal/config"
	"github.com/aoideee/bookshelf-api/internal/data"
)

// stubStore wraps the in-memory store, counts lookups and can be told to fail.
type stubStore struct {
	*data.MemoryBookModel

	getAllErr error
	getErr    error
	insertErr error
	updateErr error
	deleteErr error
	pingErr   error

	gets int
}

func newStubStore() *stubStore {
	return &stubStore{MemoryBookModel: data.NewMemoryBookModel()}
}

func (s *stubStore) GetAll(ctx context.Context) ([]*data.Book, error) {
	if s.getAllErr != nil {
		return nil, s.getAllErr
	}
	return s.MemoryBookModel.GetAll(ctx)
}

func (s *stubStore) Get(ctx context.Context, id string) (*data.Book, error) {
	s.gets++
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.MemoryBookModel.Get(ctx, id)
}

func (s *stubStore) Insert(ctx context.Context, book *data.Book) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	return s.MemoryBookModel.Insert(ctx, book)
}

func (s *stubStore) Update(ctx context.Context, book *data.Book) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	return s.MemoryBookModel.Update(ctx, book)
}

func (s *stubStore) Delete(ctx context.Context, id string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	return s.MemoryBookModel.Delete(ctx, id)
}

func (s *stubStore) Ping(ctx context.Context) error {
	return s.pingErr
}

// newTestApplication builds an application with rate limiting disabled and logging discarded.
func newTestApplication(t *testing.T, store data.BookStore) *applicationDependencies {
	t.Helper()

	cfg := config.Default()
	cfg.Server.LimiterEnabled = false

	return &applicationDependencies{
		config: cfg,
		logger: zerolog.Nop(),
		models: data.NewModels(store),
	}
}

// send performs a request against h. An empty body sends no body at all.
func send(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBook(t *testing.T, rr *httptest.ResponseRecorder) data.Book {
	t.Helper()

	var book data.Book
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &book))
	return book
}

func decodeMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body.Message
}

const duneJSON = `{"title":"Dune","author":"Herbert","genre":"SciFi","publication_date":"1965-01-01"}`

// createDune stores the reference book through the API and returns it.
func createDune(t *testing.T, h http.Handler) data.Book {
	t.Helper()

	rr := send(t, h, http.MethodPost, "/v1/books", duneJSON)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decodeBook(t, rr)
}
