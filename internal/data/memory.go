// internal/data/memory.go
package data

import (
	"context"
	"sort"
	"sync"
)

// MemoryBookModel is a process-local store for development and tests.
// Books are copied on the way in and out so callers never share state with the map.
type MemoryBookModel struct {
	mu    sync.RWMutex
	books map[string]Book
}

// NewMemoryBookModel returns an empty store.
func NewMemoryBookModel() *MemoryBookModel {
	return &MemoryBookModel{books: make(map[string]Book)}
}

// GetAll returns every book ordered by id.
func (m *MemoryBookModel) GetAll(_ context.Context) ([]*Book, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	books := make([]*Book, 0, len(m.books))
	for _, b := range m.books {
		book := b
		books = append(books, &book)
	}
	sort.Slice(books, func(i, j int) bool { return books[i].ID < books[j].ID })
	return books, nil
}

// Get returns a copy of the stored book.
func (m *MemoryBookModel) Get(_ context.Context, id string) (*Book, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.books[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &b, nil
}

// Insert assigns an id and stores a copy of book.
func (m *MemoryBookModel) Insert(_ context.Context, book *Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	book.ID = newID()
	m.books[book.ID] = *book
	return nil
}

// Update overwrites an existing book.
func (m *MemoryBookModel) Update(_ context.Context, book *Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.books[book.ID]; !ok {
		return ErrRecordNotFound
	}
	m.books[book.ID] = *book
	return nil
}

// Delete removes a book.
func (m *MemoryBookModel) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.books[id]; !ok {
		return ErrRecordNotFound
	}
	delete(m.books, id)
	return nil
}

// Ping always succeeds.
func (m *MemoryBookModel) Ping(_ context.Context) error { return nil }

// Close is a no-op.
func (m *MemoryBookModel) Close(_ context.Context) error { return nil }
