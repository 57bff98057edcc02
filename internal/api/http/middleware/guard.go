package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/belmobile/belmobile-backend/internal/platform"
)

const (
	// CtxSession is the Gin context key the guard stores the verified
	// session under.
	CtxSession = "session"

	// LoginPath is where unauthenticated admin traffic is redirected.
	LoginPath = "/admin/login"
)

// AdminGuard gates admin routes on a verifiable session. Any token the
// provider accepts counts as admin; there is no role check. An absent or
// invalid token gets a 401 carrying the login redirect; a provider that
// cannot currently answer gets a 503 with no redirect decision.
func AdminGuard(provider platform.IdentityProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":    "missing authorization token",
				"redirect": LoginPath,
			})
			c.Abort()
			return
		}

		sess, err := provider.VerifyToken(c.Request.Context(), token)
		if err != nil {
			if platform.KindOf(err) == platform.KindUnavailable {
				// Session state unknown; no redirect decision.
				c.JSON(http.StatusServiceUnavailable, gin.H{"state": "loading"})
				c.Abort()
				return
			}
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":    "invalid token",
				"redirect": LoginPath,
			})
			c.Abort()
			return
		}

		c.Set(CtxSession, sess)
		c.Next()
	}
}

// SessionFrom extracts the verified session set by AdminGuard.
func SessionFrom(c *gin.Context) *platform.Session {
	if v, ok := c.Get(CtxSession); ok {
		if s, ok := v.(*platform.Session); ok {
			return s
		}
	}
	return nil
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return bearerToken[7:]
	}
	return ""
}
