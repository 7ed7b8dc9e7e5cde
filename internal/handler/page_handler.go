package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ticket-app/internal/services"
)

// PageHandler serves the page routes as minimal JSON payloads. The
// dashboard and tickets pages consult the ticket store for the session
// user, the way the browser views did after navigation was allowed.
type PageHandler struct {
	sessions *services.SessionService
	tickets  *services.TicketService
}

func NewPageHandler(sessions *services.SessionService, tickets *services.TicketService) *PageHandler {
	return &PageHandler{sessions: sessions, tickets: tickets}
}

func (h *PageHandler) Static(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"page": name})
	}
}

func (h *PageHandler) Dashboard(c *gin.Context) {
	user, ok := h.sessions.CurrentUser()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"page": "dashboard"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"page":  "dashboard",
		"user":  user,
		"stats": h.tickets.Stats(user.ID),
	})
}

func (h *PageHandler) Tickets(c *gin.Context) {
	user, ok := h.sessions.CurrentUser()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"page": "tickets"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"page":    "tickets",
		"user":    user,
		"tickets": h.tickets.GetUserTickets(user.ID),
	})
}
