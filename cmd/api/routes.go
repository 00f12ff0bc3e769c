// cmd/api/routes.go
package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/hlog"
)

// routes registers all HTTP endpoints and returns the router wrapped in middleware.
//
// Middleware chain (outermost → innermost):
//
//	logger → requestID → accessLog → recoverPanic → cors → rateLimit → router
//
// Endpoints:
//
//	GET    /v1/healthcheck  – store reachability
//	GET    /v1/books        – list all books
//	POST   /v1/books        – create a book
//	GET    /v1/books/:id    – show a book
//	PUT    /v1/books/:id    – update a book, omitted fields kept
//	PATCH  /v1/books/:id    – update at least one field of a book
//	DELETE /v1/books/:id    – delete a book
func (app *applicationDependencies) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthcheckHandler)

	router.HandlerFunc(http.MethodGet, "/v1/books", app.listBooksHandler)
	router.HandlerFunc(http.MethodPost, "/v1/books", app.createBookHandler)
	router.HandlerFunc(http.MethodGet, "/v1/books/:id", app.showBookHandler)
	router.HandlerFunc(http.MethodPut, "/v1/books/:id", app.updateBookHandler)
	router.HandlerFunc(http.MethodPatch, "/v1/books/:id", app.patchBookHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/books/:id", app.deleteBookHandler)

	var handler http.Handler = router
	if app.config.Server.LimiterEnabled {
		handler = app.rateLimit(handler)
	}
	handler = app.cors(handler)
	handler = app.recoverPanic(handler)
	handler = app.accessLog(handler)
	handler = app.requestID(handler)

	return hlog.NewHandler(app.logger)(handler)
}
