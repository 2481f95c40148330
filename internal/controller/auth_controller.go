package controller

import (
	"errors"
	"interview_prep_backend/internal/model"
	"interview_prep_backend/internal/service"
	"interview_prep_backend/internal/util"
	"interview_prep_backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthController struct {
	AuthService *service.AuthService
	Sessions    *service.SessionManager
	Cookie      CookieOptions
}

func NewAuthController(authService *service.AuthService, sessions *service.SessionManager, cookie CookieOptions) *AuthController {
	useFormFieldNames()
	return &AuthController{
		AuthService: authService,
		Sessions:    sessions,
		Cookie:      cookie,
	}
}

type RegisterRequest struct {
	FullName string `form:"full_name" binding:"required,max=100"`
	Mobile   string `form:"mobile" binding:"required,max=20"`
	Email    string `form:"email" binding:"required,email,max=120"`
	Password string `form:"password" binding:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

// LoginPage godoc
// @Summary 登录/注册页
// @Produce html
// @Router / [get]
func (c *AuthController) LoginPage(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "login.html", gin.H{"Title": "Welcome"})
}

// Register godoc
// @Summary 注册新用户
// @Description 创建用户并登录，失败时返回纯文本 "Registration Error: ..."
// @Accept  x-www-form-urlencoded
// @Param full_name formData string true "姓名"
// @Param mobile formData string true "手机号"
// @Param email formData string true "邮箱"
// @Param password formData string true "密码"
// @Success 302 "跳转到 /dashboard"
// @Failure 400 {string} string "字段校验失败"
// @Failure 409 {string} string "邮箱已被注册"
// @Failure 500 {string} string "保存失败"
// @Router /register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBind(&req); err != nil {
		c.registrationFailed(ctx, toValidationError(err))
		return
	}

	user, err := c.AuthService.Register(ctx.Request.Context(), service.RegisterInput{
		FullName: req.FullName,
		Mobile:   req.Mobile,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.registrationFailed(ctx, err)
		return
	}

	if err := c.startSession(ctx, user); err != nil {
		logger.Log.Error("start session after registration failed", zap.Uint("user_id", user.ID), zap.Error(err))
		ctx.String(http.StatusInternalServerError, "Registration Error: your account was created but you could not be signed in, please log in")
		return
	}

	ctx.Redirect(http.StatusFound, util.DashboardPath)
}

func (c *AuthController) registrationFailed(ctx *gin.Context, err error) {
	status := util.RegistrationStatus(err)
	if status == http.StatusInternalServerError {
		logger.Log.Error("registration failed", zap.Error(err))
	} else {
		logger.Log.Info("registration rejected", zap.Error(err))
	}
	ctx.String(status, util.RegistrationMessage(err))
}

// Login godoc
// @Summary 用户登录
// @Accept  x-www-form-urlencoded
// @Param email formData string true "邮箱"
// @Param password formData string true "密码"
// @Success 302 "跳转到 /dashboard"
// @Failure 401 "重新显示登录页"
// @Router /login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.HTML(http.StatusBadRequest, "login.html", gin.H{
			"Title": "Welcome",
			"Error": "Please enter your email and password.",
		})
		return
	}

	user, err := c.AuthService.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		if !errors.Is(err, util.ErrInvalidCredentials) {
			logger.Log.Error("login failed", zap.Error(err))
		}
		ctx.HTML(http.StatusUnauthorized, "login.html", gin.H{
			"Title": "Welcome",
			"Error": "Invalid email or password.",
		})
		return
	}

	if err := c.startSession(ctx, user); err != nil {
		logger.Log.Error("start session failed", zap.Uint("user_id", user.ID), zap.Error(err))
		renderError(ctx, http.StatusInternalServerError, "Could not sign you in, please try again.")
		return
	}

	ctx.Redirect(http.StatusFound, util.DashboardPath)
}

// Logout godoc
// @Summary 退出登录
// @Success 302 "跳转到 /"
// @Router /logout [get]
func (c *AuthController) Logout(ctx *gin.Context) {
	if token, err := ctx.Cookie(c.Cookie.Name); err == nil && token != "" {
		if err := c.Sessions.Destroy(ctx.Request.Context(), token); err != nil {
			logger.Log.Warn("destroy session failed", zap.Error(err))
		}
	}
	clearSessionCookie(ctx, c.Cookie)
	ctx.Redirect(http.StatusFound, util.LoginPath)
}

// startSession 丢弃旧会话并为用户创建新会话
func (c *AuthController) startSession(ctx *gin.Context, user *model.User) error {
	if old, err := ctx.Cookie(c.Cookie.Name); err == nil && old != "" {
		_ = c.Sessions.Destroy(ctx.Request.Context(), old)
	}

	token, err := c.Sessions.Start(ctx.Request.Context(), model.NewSessionState(user))
	if err != nil {
		return err
	}
	setSessionCookie(ctx, c.Cookie, token)
	return nil
}
