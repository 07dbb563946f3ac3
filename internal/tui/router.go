package tui

// ViewType identifies the page a route mounts.
type ViewType int

const (
	ViewImprove ViewType = iota
)

// Route maps a path to a page.
type Route struct {
	Path  string
	Title string
	Icon  string
	View  ViewType
}

// DefaultRoutes is the route table of the application.
var DefaultRoutes = []Route{
	{Path: "/", Title: "Improve Content", Icon: "✎", View: ViewImprove},
}

// Router resolves paths against a fixed route table. The first route is
// the fallback for any path that does not match.
type Router struct {
	routes  []Route
	current int
}

// NewRouter creates a router over routes. An empty table falls back to
// DefaultRoutes.
func NewRouter(routes []Route) Router {
	if len(routes) == 0 {
		routes = DefaultRoutes
	}
	return Router{routes: routes}
}

// Routes returns the route table.
func (r Router) Routes() []Route {
	return r.routes
}

// Resolve returns the route for path.
func (r Router) Resolve(path string) Route {
	_, route := r.lookup(path)
	return route
}

// Navigate makes the route for path current and returns it.
func (r *Router) Navigate(path string) Route {
	i, route := r.lookup(path)
	r.current = i
	return route
}

// Current returns the active route.
func (r Router) Current() Route {
	return r.routes[r.current]
}

// Index returns the position of the active route in Routes.
func (r Router) Index() int {
	return r.current
}

func (r Router) lookup(path string) (int, Route) {
	for i, route := range r.routes {
		if route.Path == path {
			return i, route
		}
	}
	return 0, r.routes[0]
}
