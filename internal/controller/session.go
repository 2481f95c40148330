package controller

import (
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/service"
	"interview_prep_backend/internal/util"
	"interview_prep_backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CookieOptions 会话 Cookie 设置
type CookieOptions struct {
	Name   string
	MaxAge int
	Secure bool
}

func setSessionCookie(ctx *gin.Context, opts CookieOptions, token string) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(opts.Name, token, opts.MaxAge, "/", "", opts.Secure, true)
}

func clearSessionCookie(ctx *gin.Context, opts CookieOptions) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(opts.Name, "", -1, "/", "", opts.Secure, true)
}

// saveSession 把处理器对会话的修改写回存储，失败时已渲染错误页
func saveSession(ctx *gin.Context, sessions *service.SessionManager, state *model.SessionState) bool {
	if err := sessions.Save(ctx.Request.Context(), util.GetSessionIDFromContext(ctx), state); err != nil {
		logger.Log.Error("save session failed", zap.String("user", state.UserName), zap.Error(err))
		renderError(ctx, http.StatusInternalServerError, "Your session could not be saved, please try again.")
		return false
	}
	return true
}

func renderError(ctx *gin.Context, status int, message string) {
	ctx.HTML(status, "error.html", gin.H{
		"Title":   "Error",
		"Message": message,
	})
}
