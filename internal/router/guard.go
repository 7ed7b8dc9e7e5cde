package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ticket-app/internal/storage"
)

// Guard runs before a page route is served. It checks raw persisted session
// presence in storage, not the in-memory session state, so it behaves the
// same before and after the session service has been hydrated.
//
// Rules: an auth-gated route without a session redirects to login; login and
// signup with a session redirect to the dashboard; everything else passes.
func Guard(route Route, routes Routes, store storage.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		hasSession := store.Exists(c.Request.Context(), storage.SessionKey)

		if route.RequiresAuth && !hasSession {
			if login, ok := routes.Find(RouteLogin); ok {
				c.Redirect(http.StatusFound, login.Path)
				c.Abort()
				return
			}
		}

		if (route.Name == RouteLogin || route.Name == RouteSignup) && hasSession {
			if dashboard, ok := routes.Find(RouteDashboard); ok {
				c.Redirect(http.StatusFound, dashboard.Path)
				c.Abort()
				return
			}
		}

		c.Next()
	}
}
