// cmd/api/errors.go
// Error-response helpers. Every error body has the shape {"message": "..."}.
package main

import (
	"net/http"

	"github.com/rs/zerolog/hlog"
)

// Client-facing messages.
const (
	msgInvalidID      = "the book identifier is not valid"
	msgBookNotFound   = "the book could not be found"
	msgRequiredFields = "the fields title, author, genre and publication_date are required"
	msgAtLeastOne     = "at least one of these fields must be sent: title, author, genre or publication_date"
	msgServerPanic    = "the server encountered a problem and could not process your request"
)

// logError logs an internal error at ERROR level with the request method and URL.
func (app *applicationDependencies) logError(r *http.Request, err error) {
	hlog.FromRequest(r).Error().
		Err(err).
		Str("request_method", r.Method).
		Str("request_url", r.URL.String()).
		Msg("request failed")
}

// errorResponse sends {"message": message} with the given status code.
func (app *applicationDependencies) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	data := map[string]string{"message": message}
	err := app.writeJSON(w, status, data, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// serverErrorResponse logs err and sends it to the client as a 500.
// Storage messages are passed through unchanged.
func (app *applicationDependencies) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	app.errorResponse(w, r, http.StatusInternalServerError, err.Error())
}

// notFoundResponse is used for unknown routes.
func (app *applicationDependencies) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, "the requested resource could not be found")
}

// invalidIDResponse reports a malformed identifier as a 404.
func (app *applicationDependencies) invalidIDResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, msgInvalidID)
}

// bookNotFoundResponse reports a well-formed identifier with no matching book.
func (app *applicationDependencies) bookNotFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, msgBookNotFound)
}

// methodNotAllowedResponse sends a 405 Method Not Allowed error.
func (app *applicationDependencies) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	message := "the " + r.Method + " method is not supported for this resource"
	app.errorResponse(w, r, http.StatusMethodNotAllowed, message)
}

// badRequestResponse sends a 400 carrying err's message.
func (app *applicationDependencies) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

// failedValidationResponse sends a 400 with a fixed message. The per-field
// errors are only logged.
func (app *applicationDependencies) failedValidationResponse(w http.ResponseWriter, r *http.Request, message string, errors map[string]string) {
	hlog.FromRequest(r).Debug().
		Interface("fields", errors).
		Msg("validation failed")
	app.errorResponse(w, r, http.StatusBadRequest, message)
}

// rateLimitExceededResponse sends a 429 Too Many Requests error.
func (app *applicationDependencies) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusTooManyRequests, "rate limit exceeded")
}
