package api

import (
	"net/http"

	"ispend/config"

	"github.com/gin-gonic/gin"
)

// getCookieOptions 根据运行模式返回 Cookie 的安全选项
// release 模式下启用 Secure（仅 HTTPS 传输），并设置 SameSite 以防止 CSRF
func getCookieOptions() (secure bool, sameSite http.SameSite) {
	cfg := config.GetConfig()
	if cfg != nil && cfg.Server.Mode == "release" {
		secure = true
	}
	// SameSite=Lax: 防止跨站 POST 请求携带 Cookie，同时允许同站导航
	sameSite = http.SameSiteLaxMode
	return
}

// setSessionCookie 登录成功后写入会话 Cookie
// 值带 Bearer 前缀，与 Authorization 头的格式保持一致
func setSessionCookie(c *gin.Context, cfg *config.Config, token string) {
	secure, sameSite := getCookieOptions()
	c.SetSameSite(sameSite)
	c.SetCookie(cfg.Cookie.Name, "Bearer "+token, cfg.Cookie.MaxAgeSeconds, "/", cfg.Cookie.Domain, secure, true)
}

// clearSessionCookie 注销时让会话 Cookie 立即过期
func clearSessionCookie(c *gin.Context, cfg *config.Config) {
	secure, sameSite := getCookieOptions()
	c.SetSameSite(sameSite)
	c.SetCookie(cfg.Cookie.Name, "", -1, "/", cfg.Cookie.Domain, secure, true)
}
