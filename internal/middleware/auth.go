package middleware

import (
	"errors"
	"interview_prep_backend/internal/service"
	"interview_prep_backend/internal/util"
	"interview_prep_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionMiddleware 需要登录的页面统一走这里：没有有效会话或会话里没有用户名时跳转到登录页
func SessionMiddleware(sessions *service.SessionManager, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			util.RedirectToLogin(c)
			return
		}

		sessionID, state, err := sessions.Load(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, util.ErrSessionNotFound) && !errors.Is(err, util.ErrInvalidSession) {
				logger.Log.Error("load session failed", zap.Error(err))
			}
			util.RedirectToLogin(c)
			return
		}

		if !state.Authenticated() {
			util.RedirectToLogin(c)
			return
		}

		c.Set(util.ContextSessionIDKey, sessionID)
		c.Set(util.ContextSessionKey, state)
		c.Next()
	}
}
