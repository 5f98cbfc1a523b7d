package guard

import "testing"

type fakeSession struct {
	authenticated bool
	role          string
}

func (s fakeSession) Authenticated() bool { return s.authenticated }
func (s fakeSession) Role() string        { return s.role }

func TestDecide_UnauthenticatedRedirectsToLogin(t *testing.T) {
	d := Decide(fakeSession{}, "Admin")
	if d.Allowed {
		t.Error("unauthenticated viewer must not be allowed")
	}
	if d.Redirect != RouteLogin {
		t.Errorf("redirect = %q, want login", d.Redirect)
	}
}

func TestDecide_AllowedRole(t *testing.T) {
	d := Decide(fakeSession{authenticated: true, role: "Admin"}, "Admin")
	if !d.Allowed {
		t.Error("matching role must be allowed")
	}
}

func TestDecide_DisallowedRoleRedirectsToOwnDashboard(t *testing.T) {
	d := Decide(fakeSession{authenticated: true, role: "User"}, "Admin")
	if d.Allowed {
		t.Error("wrong role must not be allowed")
	}
	if d.Redirect != RouteUserDashboard {
		t.Errorf("redirect = %q, want the viewer's own dashboard", d.Redirect)
	}

	d = Decide(fakeSession{authenticated: true, role: "Admin"}, "SuperAdmin")
	if d.Redirect != RouteAdminDashboard {
		t.Errorf("redirect = %q, want admin dashboard", d.Redirect)
	}
}

func TestDecide_MultipleAllowedRoles(t *testing.T) {
	d := Decide(fakeSession{authenticated: true, role: "User"}, "Admin", "User")
	if !d.Allowed {
		t.Error("role in the allowed set must pass")
	}
}
