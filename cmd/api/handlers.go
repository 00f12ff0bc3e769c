// cmd/api/handlers.go
// HTTP handlers for the books resource. Handlers that address a single book
// first call loadBook and act only on the record it returns.
package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aoideee/bookshelf-api/internal/data"
	"github.com/aoideee/bookshelf-api/internal/validator"
)

// loadBook validates the ":id" parameter and fetches the book. When it returns
// false a response has already been written.
func (app *applicationDependencies) loadBook(w http.ResponseWriter, r *http.Request) (*data.Book, bool) {
	// A malformed id is answered here and never reaches the store.
	id, err := app.readIDParam(r)
	if err != nil {
		app.invalidIDResponse(w, r)
		return nil, false
	}

	// Fetch the book. A miss is a 404, anything else is a store failure.
	book, err := app.models.Books.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.bookNotFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return nil, false
	}

	return book, true
}

// listBooksHandler handles GET /v1/books.
// An empty collection is answered with 204 and no body.
func (app *applicationDependencies) listBooksHandler(w http.ResponseWriter, r *http.Request) {
	books, err := app.models.Books.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if len(books) == 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNoContent)
		return
	}

	err = app.writeJSON(w, http.StatusOK, books, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// createBookHandler handles POST /v1/books.
// All four fields are required; the store assigns the id.
func (app *applicationDependencies) createBookHandler(w http.ResponseWriter, r *http.Request) {
	// Decode the body. Falsy values such as 0 or "" come back as "not provided".
	input, err := app.readBookInput(w, r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// Every field is required. The per-field map is only logged; the client
	// gets one message naming all four fields.
	v := validator.New()
	if err := v.Struct(input); err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}
	if !v.Valid() {
		app.failedValidationResponse(w, r, msgRequiredFields, v.Errors)
		return
	}

	// Build the book. An unparsable publication_date is a 400.
	book, err := data.NewBook(input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// Persist the book. Insert writes the new id back into book.
	err = app.models.Books.Insert(r.Context(), book)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// Respond with the stored book, its location and a 201 Created status.
	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/v1/books/%s", book.ID))

	err = app.writeJSON(w, http.StatusCreated, book, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// showBookHandler handles GET /v1/books/:id.
func (app *applicationDependencies) showBookHandler(w http.ResponseWriter, r *http.Request) {
	book, ok := app.loadBook(w, r)
	if !ok {
		return
	}

	err := app.writeJSON(w, http.StatusOK, book, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// updateBookHandler handles PUT /v1/books/:id.
// Omitted fields keep their stored values, so a body without fields is a no-op.
func (app *applicationDependencies) updateBookHandler(w http.ResponseWriter, r *http.Request) {
	book, ok := app.loadBook(w, r)
	if !ok {
		return
	}

	input, err := app.readBookInput(w, r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	app.saveBook(w, r, book, input)
}

// patchBookHandler handles PATCH /v1/books/:id.
// Same merge as PUT, but at least one field must be supplied.
func (app *applicationDependencies) patchBookHandler(w http.ResponseWriter, r *http.Request) {
	book, ok := app.loadBook(w, r)
	if !ok {
		return
	}

	input, err := app.readBookInput(w, r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	v.Check(input.Provided(), "body", "must contain at least one field")
	if !v.Valid() {
		app.failedValidationResponse(w, r, msgAtLeastOne, v.Errors)
		return
	}

	app.saveBook(w, r, book, input)
}

// saveBook merges input onto book, persists it and writes the result.
// Every failure here is reported as a 400.
func (app *applicationDependencies) saveBook(w http.ResponseWriter, r *http.Request, book *data.Book, input data.BookInput) {
	// Merge the provided fields onto the stored book.
	err := book.Apply(input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// Save the merged book. Store failures are reported as 400 with the driver message.
	err = app.models.Books.Update(r.Context(), book)
	if err != nil {
		app.logError(r, err)
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, book, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// deleteBookHandler handles DELETE /v1/books/:id.
func (app *applicationDependencies) deleteBookHandler(w http.ResponseWriter, r *http.Request) {
	book, ok := app.loadBook(w, r)
	if !ok {
		return
	}

	err := app.models.Books.Delete(r.Context(), book.ID)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrRecordNotFound):
			app.bookNotFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	message := fmt.Sprintf("the book %s was deleted successfully", book.Title)
	err = app.writeJSON(w, http.StatusOK, map[string]string{"message": message}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// healthcheckHandler handles GET /v1/healthcheck and reports whether the store answers a ping.
func (app *applicationDependencies) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	body := map[string]string{
		"status":      "available",
		"environment": app.config.Primary.Env,
		"version":     appVersion,
	}

	if err := app.models.Books.Ping(r.Context()); err != nil {
		app.logError(r, err)
		status = http.StatusServiceUnavailable
		body["status"] = "unavailable"
		body["error"] = err.Error()
	}

	err := app.writeJSON(w, status, body, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
