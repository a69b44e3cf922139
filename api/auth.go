package api

import (
	"ispend/config"
	"ispend/database"
	"ispend/middleware"
	"ispend/models"
	"ispend/repository"
	"ispend/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	cfg      *config.Config
	verifier service.IDTokenVerifier
	users    repository.UserRepo
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		cfg:      cfg,
		verifier: service.NewGoogleVerifier(cfg.Google.ClientID),
		users:    repository.NewUserRepo(database.DB),
	}
}

// NewAuthHandlerWith 注入校验器与用户存储的构造函数（测试用）
func NewAuthHandlerWith(cfg *config.Config, verifier service.IDTokenVerifier, users repository.UserRepo) *AuthHandler {
	return &AuthHandler{cfg: cfg, verifier: verifier, users: users}
}

// LoginRequest 登录请求
type LoginRequest struct {
	GoogleIDToken string `json:"google_id_token" binding:"required"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Token    string      `json:"token"`
	UserInfo models.User `json:"user_info"`
}

// Login Google 登录
// @Summary Google 登录
// @Description 校验 Google ID token 后签发会话 JWT。首次登录的 Google 账号会自动创建用户。
// @Description token 同时写入 httpOnly Cookie（供浏览器）并在响应体返回（供 App 放入 Authorization 头）。
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Google ID token"
// @Success 200 {object} Response{data=LoginResponse} "登录成功"
// @Failure 400 {object} Response "请求参数错误"
// @Failure 403 {object} Response "Google token 校验失败"
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	// 1. 校验 Google ID token
	info, err := h.verifier.Verify(c.Request.Context(), req.GoogleIDToken)
	if err != nil {
		Forbidden(c, "Google 登录校验失败")
		return
	}

	// 2. 按 google_id 查找用户，首次登录自动建档
	user, err := h.users.FindByGoogleID(c.Request.Context(), info.GoogleID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询用户失败"))
		return
	}
	if user == nil {
		user = &models.User{
			GoogleID:    info.GoogleID,
			DisplayName: info.Name,
			Email:       info.Email,
		}
		if err := h.users.Create(c.Request.Context(), user); err != nil {
			InternalError(c, SafeErrorMessage(err, "创建用户失败"))
			return
		}
	}

	// 3. 签发会话 JWT 并写入 httpOnly Cookie
	token, err := middleware.GenerateToken(user.ID, user.DisplayName, h.cfg.JWT.ExpireTime)
	if err != nil {
		InternalError(c, "生成 token 失败")
		return
	}
	setSessionCookie(c, h.cfg, token)

	Success(c, LoginResponse{
		Token:    token,
		UserInfo: *user,
	})
}

// Logout 注销登录
// @Summary 注销登录
// @Description 让会话 Cookie 立即过期
// @Tags 认证
// @Produce json
// @Success 200 {object} Response "注销成功"
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	clearSessionCookie(c, h.cfg)
	SuccessWithMessage(c, "注销成功", nil)
}

// GetProfile 获取用户信息
// @Summary 获取当前用户信息
// @Description 获取当前登录用户的详细信息
// @Tags 认证
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=models.User} "获取成功"
// @Failure 401 {object} Response "未授权"
// @Failure 404 {object} Response "用户不存在"
// @Router /api/v1/auth/profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	user, err := h.users.FindByID(c.Request.Context(), userID)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "查询用户失败"))
		return
	}
	if user == nil {
		NotFound(c, "用户不存在")
		return
	}

	Success(c, user)
}
