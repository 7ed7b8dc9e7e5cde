package router

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"ticket-app/internal/handler"
	"ticket-app/internal/services"
	"ticket-app/internal/storage"
	"ticket-app/internal/utils"
)

// Setup builds the gin engine: guarded page routes from the route table and
// the JSON API underneath /api.
func Setup(routes Routes, store storage.Storage, sessions *services.SessionService, tickets *services.TicketService) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	pages := handler.NewPageHandler(sessions, tickets)
	for _, route := range routes {
		var page gin.HandlerFunc
		switch route.Name {
		case RouteDashboard:
			page = pages.Dashboard
		case RouteTickets:
			page = pages.Tickets
		default:
			page = pages.Static(route.Name)
		}
		r.GET(route.Path, Guard(route, routes, store), page)
	}

	sessionHandler := handler.NewSessionHandler(sessions)
	ticketHandler := handler.NewTicketHandler(tickets)
	requireSession := utils.RequireSession(store)

	auth := r.Group("/api/auth")
	{
		auth.POST("/login", sessionHandler.Login)
		auth.POST("/signup", sessionHandler.Signup)
		auth.POST("/logout", sessionHandler.Logout)
		auth.GET("/session", sessionHandler.Session)
	}

	api := r.Group("/api/tickets")
	{
		api.GET("", requireSession, ticketHandler.List)
		api.GET("/stats", requireSession, ticketHandler.Stats)
		api.POST("", requireSession, ticketHandler.Create)
		api.GET("/:id", requireSession, ticketHandler.Get)
		api.PUT("/:id", requireSession, ticketHandler.Update)
		api.DELETE("/:id", requireSession, ticketHandler.Delete)
	}

	log.Printf("router: registered %d page routes", len(routes))
	return r
}
