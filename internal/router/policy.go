package router

import (
	"net/http"

	"github.com/iliyamo/office-seating/internal/middleware"
	"github.com/iliyamo/office-seating/internal/model"
)

var (
	staff = []string{model.RoleAdmin, model.RoleManager}
	admin = []string{model.RoleAdmin}
)

// Policy is the role table for every protected route that needs more than a
// valid token.
func Policy() middleware.Policy {
	p := middleware.Policy{}
	allow := func(rule middleware.Rule, method string, paths ...string) {
		for _, path := range paths {
			p[middleware.Key(method, path)] = rule
		}
	}
	staffOnly := middleware.Rule{Roles: staff}
	adminOnly := middleware.Rule{Roles: admin}

	allow(staffOnly, http.MethodPost, "/api/buildings", "/api/layouts", "/api/walls", "/api/furniture", "/api/seats")
	allow(staffOnly, http.MethodPut, "/api/buildings/:id", "/api/layouts/:id", "/api/walls/:id", "/api/furniture/:id", "/api/seats/:id")
	allow(staffOnly, http.MethodDelete, "/api/walls/:id", "/api/furniture/:id", "/api/seats/:id")
	allow(adminOnly, http.MethodDelete, "/api/buildings/:id", "/api/layouts/:id")

	allow(staffOnly, http.MethodPost, "/api/seats/assign", "/api/seats/:id/unassign")
	allow(staffOnly, http.MethodGet, "/api/seats/layout/:layoutId/export")

	allow(staffOnly, http.MethodGet, "/api/users")
	allow(middleware.Rule{Roles: staff, SelfParam: "id"}, http.MethodGet, "/api/users/:id")
	allow(middleware.Rule{Roles: admin, SelfParam: "id"}, http.MethodPut, "/api/users/:id")
	allow(adminOnly, http.MethodDelete, "/api/users/:id", "/api/users/:id/roles/:roleName")
	allow(adminOnly, http.MethodPost, "/api/users/:id/activate", "/api/users/:id/deactivate", "/api/users/:id/roles/:roleName")
	return p
}
