// Package guard is the authorization-routing gate: given the session and a
// set of allowed role names it decides whether to render a view or where to
// redirect instead. It holds no state of its own.
package guard

// Route is a navigation destination within the client.
type Route string

const (
	RouteLogin          Route = "login"
	RouteAdminDashboard Route = "dashboard/admin"
	RouteUserDashboard  Route = "dashboard/user"
)

// Session is the read-only slice of session state the gate consults.
type Session interface {
	Authenticated() bool
	Role() string
}

// Decision is the gate's verdict. When Allowed is false, Redirect names the
// destination: login for unauthenticated viewers, the viewer's own
// role-appropriate dashboard otherwise.
type Decision struct {
	Allowed  bool
	Redirect Route
}

// Decide evaluates the gate for the given allowed role names.
func Decide(sess Session, allowedRoles ...string) Decision {
	if !sess.Authenticated() {
		return Decision{Redirect: RouteLogin}
	}
	role := sess.Role()
	for _, allowed := range allowedRoles {
		if role == allowed {
			return Decision{Allowed: true}
		}
	}
	return Decision{Redirect: DashboardFor(role)}
}

// DashboardFor returns the dashboard route for a role name.
func DashboardFor(role string) Route {
	if role == "Admin" {
		return RouteAdminDashboard
	}
	return RouteUserDashboard
}
