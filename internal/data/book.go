// Package data provides the data models and storage logic
// for the bookshelf service.
package data

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Book represents a single book document.
type Book struct {
	ID              string    `json:"id"`               // 24-character hex ObjectID assigned by the store
	Title           string    `json:"title"`            // Title of the book
	Author          string    `json:"author"`           // Author's name
	Genre           string    `json:"genre"`            // Genre label
	PublicationDate time.Time `json:"publication_date"` // Date the book was first published
}

// Field is one client supplied book value. Falsy JSON values (null, "", 0 and
// false) decode to "" which means "not provided". Other numbers and true keep
// their text form, so {"title": 5} stores the title "5".
type Field string

// UnmarshalJSON implements json.Unmarshaler.
func (f *Field) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch x := v.(type) {
	case nil:
		*f = ""
	case string:
		*f = Field(x)
	case bool:
		*f = ""
		if x {
			*f = "true"
		}
	case float64:
		*f = ""
		if x != 0 {
			*f = Field(strconv.FormatFloat(x, 'f', -1, 64))
		}
	default:
		return fmt.Errorf("cast to string failed for value %s", b)
	}
	return nil
}

// BookInput holds the fields a client may send when creating or updating a book.
// An empty Field means "not provided".
type BookInput struct {
	Title           Field `json:"title"            validate:"required"`
	Author          Field `json:"author"           validate:"required"`
	Genre           Field `json:"genre"            validate:"required"`
	PublicationDate Field `json:"publication_date" validate:"required"`
}

// Provided reports whether at least one field carries a value.
func (in BookInput) Provided() bool {
	return in.Title != "" || in.Author != "" || in.Genre != "" || in.PublicationDate != ""
}

// publicationDateLayouts lists the accepted input formats, tried in order.
var publicationDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
}

// ParsePublicationDate converts a client supplied date into a UTC time.
// Precision is cut to milliseconds, the resolution of a BSON datetime, so
// every backend hands back the value it was given.
func ParsePublicationDate(s string) (time.Time, error) {
	for _, layout := range publicationDateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC().Truncate(time.Millisecond), nil
		}
	}
	return time.Time{}, fmt.Errorf("cast to date failed for value %q at path \"publication_date\"", s)
}

// NewBook builds a Book from a complete input. The ID is left empty for the store to assign.
func NewBook(in BookInput) (*Book, error) {
	book := &Book{}
	if err := book.Apply(in); err != nil {
		return nil, err
	}
	return book, nil
}

// Apply merges in onto the book: each provided field overwrites, every other
// field keeps its stored value. The book is left untouched when an error is returned.
func (b *Book) Apply(in BookInput) error {
	published := b.PublicationDate
	if in.PublicationDate != "" {
		t, err := ParsePublicationDate(string(in.PublicationDate))
		if err != nil {
			return err
		}
		published = t
	}

	if in.Title != "" {
		b.Title = string(in.Title)
	}
	if in.Author != "" {
		b.Author = string(in.Author)
	}
	if in.Genre != "" {
		b.Genre = string(in.Genre)
	}
	b.PublicationDate = published

	return nil
}
