package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"supermarket-pos/internal/session"
)

const sessionKey = "pos.session"

// authRequired validates the Bearer session token and stores the session in
// the request context.
func authRequired(store sessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if header == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		s, ok := store.Validate(token)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}
		c.Set(sessionKey, s)
		c.Next()
	}
}

// adminRequired gates admin-only routes on the operator's role.
func adminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentSession(c).Role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin role required"})
			return
		}
		c.Next()
	}
}

func currentSession(c *gin.Context) session.Session {
	v, _ := c.Get(sessionKey)
	s, _ := v.(session.Session)
	return s
}
