package middleware

import (
	"net/http"
	"strings"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "ft_session"

// Context keys set for downstream handlers.
const (
	CtxUser    = "currentUser"
	CtxSession = "currentSession"
)

// AuthMiddleware verifies the session token and puts the current user and
// session id into the context. A missing or invalid session redirects to
// the login page rather than producing an error payload: unauthenticated
// access is an authorization failure, not a defect.
func AuthMiddleware(jwtSecret string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string

		// 1) Header: Authorization: Bearer xxx
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenStr = parts[1]
			}
		}

		// 2) query parameter ?token=xxx (downloads cannot set headers)
		if tokenStr == "" {
			tokenStr = c.Query("token")
		}

		// 3) session cookie
		if tokenStr == "" {
			if cookie, err := c.Cookie(SessionCookie); err == nil {
				tokenStr = cookie
			}
		}

		if tokenStr == "" {
			redirectToLogin(c)
			return
		}

		claims, err := util.ParseToken(jwtSecret, tokenStr)
		if err != nil || claims.ExpiresAt == nil || claims.ExpiresAt.Before(time.Now()) {
			redirectToLogin(c)
			return
		}

		var session models.Session
		if err := db.First(&session, "id = ?", claims.SessionID).Error; err != nil {
			redirectToLogin(c)
			return
		}
		if session.Revoked || session.ExpiresAt.Before(time.Now()) {
			redirectToLogin(c)
			return
		}

		var user models.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				redirectToLogin(c)
			} else {
				util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to load user")
				c.Abort()
			}
			return
		}

		c.Set(CtxUser, &user)
		c.Set(CtxSession, session.ID)
		c.Next()
	}
}

func redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, "/login")
	c.Abort()
}
