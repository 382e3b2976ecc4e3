package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Handlers is the set of endpoints the router exposes.
type Handlers interface {
	Ping(w http.ResponseWriter, r *http.Request)
	ListCategories(w http.ResponseWriter, r *http.Request)
	GetCategoryAnalysis(w http.ResponseWriter, r *http.Request)
	GetBusiness(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	handlers Handlers
	router   *mux.Router
}

// NewRouter creates a router with the app's routes.
func NewRouter(handlers Handlers, router *mux.Router) *Router {
	return &Router{
		handlers: handlers,
		router:   router,
	}
}

func (r *Router) RegisterRoutes() {
	r.router.HandleFunc("/ping", r.handlers.Ping).Methods(http.MethodGet)
	r.router.HandleFunc("/v1/categories", r.handlers.ListCategories).Methods(http.MethodGet)
	// expects ?location={location}; empty selects the default location
	r.router.HandleFunc("/v1/categories/{category}/analysis", r.handlers.GetCategoryAnalysis).Methods(http.MethodGet)
	// expects ?url={listing url}
	r.router.HandleFunc("/v1/business", r.handlers.GetBusiness).Methods(http.MethodGet)
}
