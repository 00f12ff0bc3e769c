// internal/data/models.go
package data

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrRecordNotFound is returned when a lookup finds no matching document.
var ErrRecordNotFound = errors.New("record not found")

// BookStore is the persistence boundary for books. Every backend returns
// ErrRecordNotFound for a missing id and otherwise passes driver errors through
// unchanged so their messages can reach the client.
type BookStore interface {
	GetAll(ctx context.Context) ([]*Book, error)
	Get(ctx context.Context, id string) (*Book, error)
	Insert(ctx context.Context, book *Book) error
	Update(ctx context.Context, book *Book) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Models groups all stores used by the HTTP layer.
type Models struct {
	Books BookStore
}

// NewModels wraps the given book store.
func NewModels(books BookStore) Models {
	return Models{
		Books: books,
	}
}

// Driver names accepted by Open.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// StoreConfig carries what Open needs to reach a backend.
type StoreConfig struct {
	Driver     string
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

// Open connects to the configured backend and verifies it is reachable.
func Open(ctx context.Context, cfg StoreConfig) (BookStore, error) {
	switch cfg.Driver {
	case DriverMongo:
		store, err := OpenMongo(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return store, nil
	case DriverPostgres:
		store, err := OpenPostgres(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return store, nil
	case DriverMemory:
		return NewMemoryBookModel(), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// newID returns a fresh ObjectID in hex form. All backends use it so ids look the same everywhere.
func newID() string {
	return primitive.NewObjectID().Hex()
}
