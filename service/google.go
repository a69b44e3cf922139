package service

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"
)

// GoogleUserInfo Google ID token 中我们关心的身份信息
type GoogleUserInfo struct {
	GoogleID string // token 的 sub 字段，用户在 Google 侧的唯一标识
	Name     string
	Email    string
}

// IDTokenVerifier Google ID token 校验契约（定义接口，方便 Mock）
type IDTokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (*GoogleUserInfo, error)
}

// googleVerifier 基于 google.golang.org/api/idtoken 的实现
// 签名校验、过期校验与 audience 校验都由该库完成
type googleVerifier struct {
	clientID string
}

// NewGoogleVerifier 构造函数，clientID 为本应用在 Google 注册的 OAuth client ID
func NewGoogleVerifier(clientID string) IDTokenVerifier {
	return &googleVerifier{clientID: clientID}
}

func (v *googleVerifier) Verify(ctx context.Context, rawToken string) (*GoogleUserInfo, error) {
	payload, err := idtoken.Validate(ctx, rawToken, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("Google ID token 校验失败: %w", err)
	}
	if payload.Subject == "" {
		return nil, fmt.Errorf("Google ID token 中缺少 sub")
	}

	info := &GoogleUserInfo{GoogleID: payload.Subject}
	if name, ok := payload.Claims["name"].(string); ok {
		info.Name = name
	}
	if email, ok := payload.Claims["email"].(string); ok {
		info.Email = email
	}
	return info, nil
}
