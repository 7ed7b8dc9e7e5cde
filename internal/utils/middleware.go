package utils

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"ticket-app/internal/models"
	"ticket-app/internal/storage"
)

// RequireSession guards the JSON API. It reads the persisted session record
// and puts the user id into the gin context.
func RequireSession(store storage.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, exists, err := store.Get(c.Request.Context(), storage.SessionKey)
		if err != nil || !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		var user models.User
		if err := json.Unmarshal(data, &user); err != nil || user.ID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
			return
		}

		c.Set("userID", user.ID)
		c.Next()
	}
}
