package api

import "github.com/andrzw/userhub/internal/auth"

// User management service routes
const (
	RouteRegister    = "/register"
	RouteLogin       = "/login"
	RouteUsers       = "/users"
	RouteUserByID    = "/users/{id}"
	RouteVerifyEmail = "/verify-email/{id}/{token}"
	RouteHealth      = "/healthz"
)

// RequiredRoles maps each route to the role set its handlers demand.
// Routes absent from the map are public.
var RequiredRoles = map[string][]auth.Role{
	RouteUsers:    auth.ManagementRoles,
	RouteUserByID: auth.ManagementRoles,
}

// Public reports whether a route can be reached without a token.
func Public(route string) bool {
	_, gated := RequiredRoles[route]
	return !gated
}
