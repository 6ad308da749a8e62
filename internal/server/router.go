package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"edge-shortener/internal/handler"
)

// Route names, also used as metric labels.
const (
	RouteCreate   = "create"
	RouteResolve  = "resolve"
	RouteNotFound = "not_found"
)

// NewRouter builds the public decision tree:
//
//	POST <prefix>*      -> create
//	any, path != "/"    -> resolve
//	anything else       -> 404
//
// Routes are tried in registration order. A GET under the prefix fails the
// create route's method check and falls through to resolve.
func NewRouter(h *handler.Handler) *mux.Router {
	r := mux.NewRouter()
	// Paths are used verbatim as codes; no cleaning redirects.
	r.SkipClean(true)

	r.Methods(http.MethodPost).
		PathPrefix(h.Config().APIPrefix).
		HandlerFunc(h.Create).
		Name(RouteCreate)

	r.MatcherFunc(func(req *http.Request, _ *mux.RouteMatch) bool {
		return len(req.URL.Path) > 1
	}).
		HandlerFunc(h.Resolve).
		Name(RouteResolve)

	r.NotFoundHandler = http.HandlerFunc(h.NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(h.NotFound)

	return r
}

// routeNamer labels a request with the name of the route it will hit.
func routeNamer(r *mux.Router) func(*http.Request) string {
	return func(req *http.Request) string {
		var match mux.RouteMatch
		if r.Match(req, &match) && match.Route != nil {
			if name := match.Route.GetName(); name != "" {
				return name
			}
		}
		return RouteNotFound
	}
}
