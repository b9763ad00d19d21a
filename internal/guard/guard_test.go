package guard

import (
	"testing"

	"ob-go/internal/model"
	"ob-go/internal/session"
)

func storeWithRole(t *testing.T, role model.Role) *session.Store {
	t.Helper()
	s := session.NewStore(session.NewMemoryPersister())
	err := s.Set(session.Session{Token: "tok", Username: "u", Role: role})
	if err != nil {
		t.Fatalf("seeding session: %v", err)
	}
	return s
}

func TestAuth(t *testing.T) {
	t.Run("anonymous is sent to login with return route", func(t *testing.T) {
		s := session.NewStore(session.NewMemoryPersister())

		d := Auth(s, "/notifications")
		if d.Allow {
			t.Error("Allow = true, want false")
		}
		if d.RedirectTo != RouteLogin {
			t.Errorf("RedirectTo = %q, want %q", d.RedirectTo, RouteLogin)
		}
		if d.ReturnTo != "/notifications" {
			t.Errorf("ReturnTo = %q, want %q", d.ReturnTo, "/notifications")
		}
	})

	t.Run("any authenticated user passes", func(t *testing.T) {
		d := Auth(storeWithRole(t, model.RoleUser), RouteFeed)
		if !d.Allow {
			t.Errorf("Allow = false, want true (decision %+v)", d)
		}
	})
}

func TestAdmin(t *testing.T) {
	t.Run("anonymous is sent to login with return route", func(t *testing.T) {
		s := session.NewStore(session.NewMemoryPersister())

		d := Admin(s, "/admin/users")
		if d.Allow {
			t.Error("Allow = true, want false")
		}
		if d.RedirectTo != RouteLogin {
			t.Errorf("RedirectTo = %q, want %q", d.RedirectTo, RouteLogin)
		}
		if d.ReturnTo != "/admin/users" {
			t.Errorf("ReturnTo = %q, want %q", d.ReturnTo, "/admin/users")
		}
	})

	t.Run("authenticated non-admin goes to the feed, not login", func(t *testing.T) {
		d := Admin(storeWithRole(t, model.RoleUser), "/admin/users")
		if d.Allow {
			t.Error("Allow = true, want false")
		}
		if d.RedirectTo != RouteFeed {
			t.Errorf("RedirectTo = %q, want %q", d.RedirectTo, RouteFeed)
		}
	})

	t.Run("admin passes", func(t *testing.T) {
		d := Admin(storeWithRole(t, model.RoleAdmin), "/admin/users")
		if !d.Allow {
			t.Errorf("Allow = false, want true (decision %+v)", d)
		}
	})
}
