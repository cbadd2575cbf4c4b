package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RouteHandler serves the uploader endpoints.
type RouteHandler interface {
	SubmitBatch(w http.ResponseWriter, r *http.Request)
	GetCatalog(w http.ResponseWriter, r *http.Request)
	Ping(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	handler RouteHandler
	router  *mux.Router
}

// NewRouter creates a router with the app's routes.
func NewRouter(handler RouteHandler, router *mux.Router) *Router {
	return &Router{
		handler: handler,
		router:  router,
	}
}

func (r *Router) RegisterRoutes() {
	// multipart form: api_key, file, pattern_count, start_time_day, ...
	r.router.HandleFunc("/v1/batches", r.handler.SubmitBatch).Methods("POST")

	// expects an X-API-Key header and optionally ?domain={domain}
	r.router.HandleFunc("/v1/catalog", r.handler.GetCatalog).Methods("GET")

	r.router.HandleFunc("/ping", r.handler.Ping).Methods("GET")
}
