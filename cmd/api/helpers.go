// cmd/api/helpers.go
// General-purpose helpers for reading requests and writing JSON.
// Error-response helpers live in errors.go.
package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"github.com/aoideee/bookshelf-api/internal/data"
	"github.com/aoideee/bookshelf-api/internal/validator"
)

// errInvalidID is returned by readIDParam when ":id" is not an ObjectID.
var errInvalidID = errors.New("invalid id parameter")

// readIDParam extracts the ":id" URL parameter and checks that it is a
// 24-character hex string before anything is sent to the store. Stores keep
// ids in lowercase, so the result is lowercased.
func (app *applicationDependencies) readIDParam(r *http.Request) (string, error) {
	params := httprouter.ParamsFromContext(r.Context())
	id := params.ByName("id")
	if !validator.Matches(id, validator.IDRX) {
		return "", errInvalidID
	}
	return strings.ToLower(id), nil
}

// writeJSON marshals payload to indented JSON, applies any custom headers,
// sets Content-Type to "application/json" and writes the status code and body.
func (app *applicationDependencies) writeJSON(w http.ResponseWriter, status int, payload any, headers http.Header) error {
	js, err := json.MarshalIndent(payload, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)
	return nil
}

// readJSON decodes a single JSON value from the request body into dst.
// The body is capped at 1 MB and must not contain trailing data.
// Unknown fields are ignored.
func (app *applicationDependencies) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)

	dec := json.NewDecoder(r.Body)

	err := dec.Decode(dst)
	if err != nil {
		return err
	}

	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must only contain a single JSON value")
	}

	return nil
}

// readBookInput decodes the book fields of the request body. An empty body
// yields an empty input so a PUT without fields stays a valid no-op.
func (app *applicationDependencies) readBookInput(w http.ResponseWriter, r *http.Request) (data.BookInput, error) {
	var input data.BookInput

	err := app.readJSON(w, r, &input)
	if err != nil && !errors.Is(err, io.EOF) {
		return data.BookInput{}, err
	}
	return input, nil
}
