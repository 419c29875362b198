package domain

// Route is a navigation target on the client surface.
type Route string

const (
	RouteLogin  Route = "/login"
	RouteSignup Route = "/signup"
)

// LandingRoute returns the dashboard of a role.
func LandingRoute(r Role) Route {
	if !r.Valid() {
		return RouteLogin
	}
	return Route("/" + string(r) + "/dashboard")
}

// Guard resolves where a request for route should land given the current
// user. Anonymous users only reach /login and /signup; a signed-in user asking
// for another role's dashboard (or the auth pages) lands on their own.
func Guard(user *User, route Route) Route {
	if user == nil {
		if route == RouteSignup {
			return RouteSignup
		}
		return RouteLogin
	}
	own := LandingRoute(user.Role)
	switch route {
	case LandingRoute(RoleAdmin), LandingRoute(RoleOwner), LandingRoute(RoleUser), RouteLogin, RouteSignup, "":
		return own
	}
	return route
}
