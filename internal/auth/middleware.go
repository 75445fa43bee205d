package auth

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ikeike55momo/schedule/internal/domain"
)

const contextKeySession = "session"

// SessionFromContext returns the session set by RequireSession.
func SessionFromContext(c *gin.Context) (domain.Session, bool) {
	v, ok := c.Get(contextKeySession)
	if !ok {
		return domain.Session{}, false
	}
	s, ok := v.(domain.Session)
	return s, ok
}

// UserIDFromContext returns the current user ID set by RequireSession. "" if not set.
func UserIDFromContext(c *gin.Context) string {
	s, _ := SessionFromContext(c)
	return s.UserID
}

// RequireSession returns a middleware that checks the bearer token and sets
// the session in context. If missing, invalid or revoked, responds with 401.
func RequireSession(v *Verifier, revoked *Store) gin.HandlerFunc {
	return requireSession(v, revoked, false)
}

// RequireSocketSession is RequireSession for websocket routes: browsers cannot
// set headers on the upgrade request, so the access_token query parameter is
// accepted as well. Keep these routes out of the request log.
func RequireSocketSession(v *Verifier, revoked *Store) gin.HandlerFunc {
	return requireSession(v, revoked, true)
}

func requireSession(v *Verifier, revoked *Store, query bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearer(c.GetHeader("Authorization"))
		if token == "" && query {
			token = c.Query("access_token")
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		s, err := v.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		if revoked != nil {
			gone, err := revoked.Revoked(c.Request.Context(), s.TokenID)
			if err != nil {
				log.Printf("session lookup: %v", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session lookup failed"})
				return
			}
			if gone {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
				return
			}
		}
		c.Set(contextKeySession, s)
		c.Next()
	}
}

// AdminChecker reports whether a user administers the team.
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// RequireAdmin must run after RequireSession.
func RequireAdmin(admins AdminChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := admins.IsAdmin(c.Request.Context(), UserIDFromContext(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin only"})
			return
		}
		c.Next()
	}
}

func bearer(h string) string {
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}
