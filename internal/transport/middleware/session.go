package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// SessionCookie identifies an anonymous visitor; anti-forgery
	// tokens are bound to it.
	SessionCookie = "en_session"

	// SessionKey is the gin context key holding the session id.
	SessionKey = "session"
)

// Session makes sure every visitor carries a session cookie and
// exposes its value on the request context.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := c.Cookie(SessionCookie)
		if err != nil || session == "" {
			session = uuid.NewString()
			c.SetCookie(SessionCookie, session, 0, "/", "", false, true)
		}

		c.Set(SessionKey, session)
		c.Next()
	}
}

// SessionFrom returns the visitor session id set by Session.
func SessionFrom(c *gin.Context) string {
	if session, ok := c.Get(SessionKey); ok {
		if s, ok := session.(string); ok {
			return s
		}
	}
	return ""
}
