package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"ispend/config"
	"ispend/database"
	"ispend/middleware"
	"ispend/repository"
	"ispend/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	oldDB := database.DB
	database.DB = gormDB
	return mock, func() {
		database.DB = oldDB
		sqlDB.Close()
	}
}

// setupTestConfig 初始化测试配置并返回清理函数
func setupTestConfig() (*config.Config, func()) {
	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
		JWT: config.JWTConfig{
			Secret:     "test-jwt-secret-key",
			ExpireTime: 15 * time.Minute,
		},
		Cookie: config.CookieConfig{
			Name:          "ACCESS_TOKEN",
			Domain:        "localhost",
			MaxAgeSeconds: 900,
		},
		Database: config.DatabaseConfig{QueryTimeout: time.Second},
	}
	config.GlobalConfig = cfg
	middleware.InitJWT(cfg)
	return cfg, func() { config.GlobalConfig = nil }
}

// fakeVerifier 预置校验结果的 IDTokenVerifier
type fakeVerifier struct {
	info *service.GoogleUserInfo
	err  error
}

func (f *fakeVerifier) Verify(ctx context.Context, rawToken string) (*service.GoogleUserInfo, error) {
	return f.info, f.err
}

func TestAuthHandler_Login_FirstTimeCreatesUser(t *testing.T) {
	cfg, restore := setupTestConfig()
	defer restore()
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	gin.SetMode(gin.TestMode)

	// 按 google_id 查找未命中
	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("g-123", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "google_id", "display_name", "email", "created_at", "updated_at", "deleted_at"}))

	// 自动建档
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	verifier := &fakeVerifier{info: &service.GoogleUserInfo{GoogleID: "g-123", Name: "Alice", Email: "alice@example.com"}}
	handler := NewAuthHandlerWith(cfg, verifier, repository.NewUserRepo(database.DB))

	router := gin.New()
	router.POST("/login", handler.Login)

	body := `{"google_id_token":"fake-google-token"}`
	req := httptest.NewRequest("POST", "/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)

	var resp struct {
		Code int `json:"code"`
		Data struct {
			Token    string `json:"token"`
			UserInfo struct {
				ID          uint   `json:"id"`
				DisplayName string `json:"display_name"`
			} `json:"user_info"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.Token)
	assert.Equal(t, uint(1), resp.Data.UserInfo.ID)
	assert.Equal(t, "Alice", resp.Data.UserInfo.DisplayName)

	// token 可被本服务解析
	claims, err := middleware.ParseToken(resp.Data.Token)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)

	// 会话 Cookie 已写入且为 httpOnly
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "ACCESS_TOKEN", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, 900, cookies[0].MaxAge)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_Login_ExistingUser(t *testing.T) {
	cfg, restore := setupTestConfig()
	defer restore()
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	gin.SetMode(gin.TestMode)

	now := time.Now()
	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("g-123", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "google_id", "display_name", "email", "created_at", "updated_at", "deleted_at"}).
			AddRow(5, "g-123", "Alice", "alice@example.com", now, now, nil))

	verifier := &fakeVerifier{info: &service.GoogleUserInfo{GoogleID: "g-123", Name: "Alice"}}
	handler := NewAuthHandlerWith(cfg, verifier, repository.NewUserRepo(database.DB))

	router := gin.New()
	router.POST("/login", handler.Login)

	req := httptest.NewRequest("POST", "/login", bytes.NewBufferString(`{"google_id_token":"fake"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	claimsFromCookie := w.Result().Cookies()
	require.Len(t, claimsFromCookie, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_Login_InvalidGoogleToken(t *testing.T) {
	cfg, restore := setupTestConfig()
	defer restore()
	gin.SetMode(gin.TestMode)

	verifier := &fakeVerifier{err: errors.New("invalid token")}
	handler := NewAuthHandlerWith(cfg, verifier, nil)

	router := gin.New()
	router.POST("/login", handler.Login)

	req := httptest.NewRequest("POST", "/login", bytes.NewBufferString(`{"google_id_token":"bad"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 403, w.Code)
}

func TestAuthHandler_Login_MissingToken(t *testing.T) {
	cfg, restore := setupTestConfig()
	defer restore()
	gin.SetMode(gin.TestMode)

	handler := NewAuthHandlerWith(cfg, &fakeVerifier{}, nil)

	router := gin.New()
	router.POST("/login", handler.Login)

	req := httptest.NewRequest("POST", "/login", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}

func TestAuthHandler_Logout(t *testing.T) {
	cfg, restore := setupTestConfig()
	defer restore()
	gin.SetMode(gin.TestMode)

	handler := NewAuthHandlerWith(cfg, &fakeVerifier{}, nil)

	router := gin.New()
	router.POST("/logout", handler.Logout)

	req := httptest.NewRequest("POST", "/logout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)

	// Cookie 被置空并立即过期
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "ACCESS_TOKEN", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestAuthHandler_GetProfile_NotFound(t *testing.T) {
	cfg, restore := setupTestConfig()
	defer restore()
	mock, cleanup := setupMockDB(t)
	defer cleanup()
	gin.SetMode(gin.TestMode)

	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "google_id", "display_name", "email", "created_at", "updated_at", "deleted_at"}))

	handler := NewAuthHandlerWith(cfg, &fakeVerifier{}, repository.NewUserRepo(database.DB))

	router := gin.New()
	router.Use(setUserIDMiddleware(42))
	router.GET("/profile", handler.GetProfile)

	req := httptest.NewRequest("GET", "/profile", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
