package router

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Route names the guard cares about.
const (
	RouteLanding   = "landing"
	RouteLogin     = "login"
	RouteSignup    = "signup"
	RouteDashboard = "dashboard"
	RouteTickets   = "tickets"
)

// Route is one entry of the page route table. The guard is the only place
// RequiresAuth is interpreted.
type Route struct {
	Name         string `yaml:"name"`
	Path         string `yaml:"path"`
	RequiresAuth bool   `yaml:"requiresAuth"`
}

type Routes []Route

func (rs Routes) Find(name string) (Route, bool) {
	for _, r := range rs {
		if r.Name == name {
			return r, true
		}
	}
	return Route{}, false
}

// DefaultRoutes is the compiled-in page route table.
func DefaultRoutes() Routes {
	return Routes{
		{Name: RouteLanding, Path: "/"},
		{Name: RouteLogin, Path: "/auth/login"},
		{Name: RouteSignup, Path: "/auth/signup"},
		{Name: RouteDashboard, Path: "/dashboard", RequiresAuth: true},
		{Name: RouteTickets, Path: "/tickets", RequiresAuth: true},
	}
}

// LoadRoutes reads a route table from a YAML file, falling back to the
// compiled-in table when no path is configured.
func LoadRoutes(path string) (Routes, error) {
	if path == "" {
		return DefaultRoutes(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read routes file: %w", err)
	}

	var routes Routes
	if err := yaml.Unmarshal(data, &routes); err != nil {
		return nil, fmt.Errorf("parse routes file: %w", err)
	}
	if len(routes) == 0 {
		return nil, fmt.Errorf("routes file %s defines no routes", path)
	}
	return routes, nil
}
