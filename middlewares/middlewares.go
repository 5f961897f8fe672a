package middlewares

import (
	"net/http"

	"adminconsole/models"
	"adminconsole/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Auth resolves the token cookie, or the Authorization header, to a live session.
func Auth(sessions *session.Service, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie("token")
		if token == "" {
			token = c.GetHeader("Authorization")
		}

		sess, err := sessions.Current(c.Request.Context(), token)
		if err != nil {
			if err == session.ErrUnauthorized {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
				return
			}
			log.Error("reading session", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}

		c.Set(session.ContextKey, sess)
		c.Next()
	}
}

// RequireRole lets admins and the listed roles through.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, _ := c.Get(session.ContextKey)
		sess, ok := v.(*session.Session)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
			return
		}

		if sess.User.Role == models.Admin {
			c.Next()
			return
		}
		for _, r := range roles {
			if sess.User.Role == r {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "forbidden"})
	}
}
