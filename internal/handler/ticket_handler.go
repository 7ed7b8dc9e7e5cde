package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ticket-app/internal/models"
	"ticket-app/internal/services"
)

type TicketHandler struct {
	tickets *services.TicketService
}

func NewTicketHandler(tickets *services.TicketService) *TicketHandler {
	return &TicketHandler{tickets: tickets}
}

func (h *TicketHandler) List(c *gin.Context) {
	userID := c.GetString("userID")
	c.JSON(http.StatusOK, h.tickets.GetUserTickets(userID))
}

func (h *TicketHandler) Stats(c *gin.Context) {
	userID := c.GetString("userID")
	c.JSON(http.StatusOK, h.tickets.Stats(userID))
}

func (h *TicketHandler) Create(c *gin.Context) {
	var input models.TicketInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	userID := c.GetString("userID")
	ticket, err := h.tickets.CreateTicket(c, userID, input)
	if err != nil {
		if errors.Is(err, models.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create ticket"})
		return
	}
	c.JSON(http.StatusCreated, ticket)
}

func (h *TicketHandler) Get(c *gin.Context) {
	ticket, err := h.tickets.GetTicketByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
		return
	}
	c.JSON(http.StatusOK, ticket)
}

func (h *TicketHandler) Update(c *gin.Context) {
	var updates models.TicketUpdate
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	ticket, err := h.tickets.UpdateTicket(c, c.Param("id"), updates)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
		case errors.Is(err, models.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update ticket"})
		}
		return
	}
	c.JSON(http.StatusOK, ticket)
}

func (h *TicketHandler) Delete(c *gin.Context) {
	removed, err := h.tickets.DeleteTicket(c, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete ticket"})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ticket deleted"})
}
