package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/bookshelf/internal/httpserver/deps"
)

type (
	Registrar  func(r chi.Router, d deps.Deps)
	Middleware = func(http.Handler) http.Handler
)

// group is a named set of routes mounted together.
type group struct {
	name string
	reg  Registrar
	mws  []Middleware
}

var registry []group

// Register adds a route group. mws wrap only the routes of that group.
// Meant to be called from init().
func Register(name string, reg Registrar, mws ...Middleware) {
	registry = append(registry, group{name: name, reg: reg, mws: mws})
}

// RegisterAll mounts every group on r and returns their names in
// registration order. Called once per router from httpserver.NewRouter.
func RegisterAll(r chi.Router, d deps.Deps) []string {
	names := make([]string, 0, len(registry))
	for _, g := range registry {
		sub := r
		if len(g.mws) > 0 {
			sub = r.With(g.mws...)
		}
		g.reg(sub, d)
		names = append(names, g.name)
	}
	return names
}
