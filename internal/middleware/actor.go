package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// actorIDKey is the key used to store the acting user's ID in the Gin context.
const actorIDKey = contextKey("actorID")

// ActorHeader is the request header carrying the acting user's ID.
const ActorHeader = "X-User-ID"

// ActorMiddleware extracts the acting user's ID from the request header and
// stores it in the context. Requests without it are rejected; every write
// is attributed to a user.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := c.GetHeader(ActorHeader)
		if actorID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing " + ActorHeader + " header"})
			return
		}
		c.Set(string(actorIDKey), actorID)
		c.Next()
	}
}

// GetActorFromContext retrieves the acting user's ID from the Gin context.
func GetActorFromContext(c *gin.Context) (string, bool) {
	actorVal, exists := c.Get(string(actorIDKey))
	if !exists {
		return "", false
	}
	actorID, ok := actorVal.(string)
	if !ok {
		return "", false
	}
	return actorID, true
}
