package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminTokenCookie is the cookie alternative to the X-Admin-Token
// header.
const AdminTokenCookie = "en_admin_token"

// RequireEditPermission gates the admin surface: requests must present
// the configured admin token in a header or cookie. Failures abort
// with a bare status and no body; an unset token fails everything
// closed.
func RequireEditPermission(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		presented := c.GetHeader("X-Admin-Token")
		if presented == "" {
			presented, _ = c.Cookie(AdminTokenCookie)
		}

		if presented != token {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		c.Next()
	}
}
