package ioc

import (
	"strings"
	"time"

	"carpetqr/internal/app"
	"carpetqr/internal/auth"
)

// ReadAuth 包装匿名登录的 TokenSource，供 wire 区分注入点。
type ReadAuth struct {
	auth.TokenSource
}

// AdminAuth 包装管理员登录的 TokenSource。
type AdminAuth struct {
	auth.TokenSource
}

// InitReadAuth 构建查询侧的匿名登录。endpoint 未配置时不做登录门禁。
func InitReadAuth(cfg app.Config) (ReadAuth, error) {
	endpoint := strings.TrimSpace(cfg.Auth.AnonymousEndpoint)
	if endpoint == "" {
		return ReadAuth{}, nil
	}
	ts, err := auth.NewAnonymousTokenSource(endpoint, time.Duration(cfg.Auth.TimeoutSecond)*time.Second)
	if err != nil {
		return ReadAuth{}, err
	}
	return ReadAuth{TokenSource: ts}, nil
}

// InitAdminAuth 构建导入侧的管理员登录：优先邮箱/密码，
// 次选固定 token，都未配置时导入不做门禁。
func InitAdminAuth(cfg app.Config) (AdminAuth, error) {
	if cfg.Auth.TokenEndpoint != "" && cfg.Auth.Email != "" {
		ts, err := auth.NewPasswordTokenSource(auth.PasswordTokenConfig{
			Endpoint: cfg.Auth.TokenEndpoint,
			Email:    cfg.Auth.Email,
			Password: cfg.Auth.Password,
			Timeout:  time.Duration(cfg.Auth.TimeoutSecond) * time.Second,
		})
		if err != nil {
			return AdminAuth{}, err
		}
		return AdminAuth{TokenSource: ts}, nil
	}
	if cfg.Auth.StaticToken != "" {
		return AdminAuth{TokenSource: &auth.StaticTokenSource{Value: cfg.Auth.StaticToken}}, nil
	}
	return AdminAuth{}, nil
}
