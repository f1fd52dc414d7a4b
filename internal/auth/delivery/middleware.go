package delivery

import (
	"net/http"
	"strings"

	authdomain "replydesk-backend/internal/auth/domain"
	authdto "replydesk-backend/internal/auth/dto"
	"replydesk-backend/internal/auth/usecase"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// AuthMiddleware resolves the session from a bearer token or, failing that,
// the session cookie set at login.
func AuthMiddleware(authUsecase usecase.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := sessionToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			c.Abort()
			return
		}

		sess, err := authUsecase.ValidateToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			c.Abort()
			return
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// SessionFromContext returns the session stored by AuthMiddleware.
func SessionFromContext(c *gin.Context) (*authdomain.Session, bool) {
	v, exists := c.Get(sessionKey)
	if !exists {
		return nil, false
	}
	sess, ok := v.(*authdomain.Session)
	return sess, ok
}

func sessionToken(c *gin.Context) (string, bool) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}

	cookie, err := c.Cookie(authdto.SessionCookieName)
	if err != nil || cookie == "" {
		return "", false
	}
	return cookie, true
}
