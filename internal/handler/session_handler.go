package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ticket-app/internal/services"
)

type SessionHandler struct {
	sessions *services.SessionService
}

func NewSessionHandler(sessions *services.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

func (h *SessionHandler) Login(c *gin.Context) {
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&credentials); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	if !h.sessions.Login(c, credentials.Email, credentials.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "email and password are required"})
		return
	}

	user, _ := h.sessions.CurrentUser()
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *SessionHandler) Signup(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	if !h.sessions.Signup(c, req.Name, req.Email, req.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, email and password are required"})
		return
	}

	user, _ := h.sessions.CurrentUser()
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *SessionHandler) Logout(c *gin.Context) {
	h.sessions.Logout(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *SessionHandler) Session(c *gin.Context) {
	user, ok := h.sessions.CurrentUser()
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no active session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
