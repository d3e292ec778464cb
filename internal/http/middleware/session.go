package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionCookie = "planner_session"
	sessionKey    = "sessionID"
)

// Session makes sure every request carries a workspace id. A missing or
// malformed cookie is replaced with a fresh UUID; the cookie is refreshed on
// each request so it lives as long as the stored workspace.
func Session(ttl time.Duration, secure bool) gin.HandlerFunc {
	maxAge := int(ttl / time.Second)
	return func(c *gin.Context) {
		id, err := c.Cookie(SessionCookie)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, id, maxAge, "/", "", secure, true)
		c.Set(sessionKey, id)
		c.Next()
	}
}

// GetSessionID retrieves the workspace id set by Session.
func GetSessionID(c *gin.Context) (string, bool) {
	v, exists := c.Get(sessionKey)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}
