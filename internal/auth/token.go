package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

// TokenSource 提供访问远端服务所需的 token。
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticTokenSource 返回固定 Token，适用于测试或简易场景。
type StaticTokenSource struct {
	Value string
}

// Token 返回固定值。
func (s *StaticTokenSource) Token(context.Context) (string, error) {
	return s.Value, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// AnonymousTokenSource 调匿名登录接口换取只读 token，带简单缓存。
// 匿名身份只开放查询能力。
type AnonymousTokenSource struct {
	endpoint   string
	httpClient *http.Client

	mu     sync.Mutex
	token  string
	expiry time.Time
}

// NewAnonymousTokenSource 创建匿名登录 TokenSource。
func NewAnonymousTokenSource(endpoint string, timeout time.Duration) (*AnonymousTokenSource, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, errors.New("匿名登录 endpoint 不能为空")
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &AnonymousTokenSource{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Token 实现 TokenSource 接口，必要时刷新。
func (s *AnonymousTokenSource) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != "" && time.Until(s.expiry) > 30*time.Second {
		return s.token, nil
	}
	token, expiry, err := requestToken(ctx, s.httpClient, s.endpoint, map[string]string{})
	if err != nil {
		return "", err
	}
	s.token, s.expiry = token, expiry
	return s.token, nil
}

// PasswordTokenSource 通过邮箱/密码调用认证接口换取管理员 token，
// 带简单缓存。导入能力只对管理员身份开放。
type PasswordTokenSource struct {
	endpoint   string
	email      string
	password   string
	httpClient *http.Client

	mu     sync.Mutex
	token  string
	expiry time.Time
}

// PasswordTokenConfig 配置基于邮箱/密码的 TokenSource。
type PasswordTokenConfig struct {
	Endpoint   string
	Email      string
	Password   string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// NewPasswordTokenSource 创建一个 PasswordTokenSource。
func NewPasswordTokenSource(cfg PasswordTokenConfig) (*PasswordTokenSource, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, errors.New("token endpoint 不能为空")
	}
	if cfg.Email == "" || cfg.Password == "" {
		return nil, errors.New("邮箱和密码不能为空")
	}
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &PasswordTokenSource{
		endpoint:   cfg.Endpoint,
		email:      cfg.Email,
		password:   cfg.Password,
		httpClient: client,
	}, nil
}

// Token 实现 TokenSource 接口，必要时刷新 Token。
func (s *PasswordTokenSource) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != "" && time.Until(s.expiry) > 30*time.Second {
		return s.token, nil
	}
	token, expiry, err := requestToken(ctx, s.httpClient, s.endpoint, map[string]string{
		"email":    s.email,
		"password": s.password,
	})
	if err != nil {
		return "", err
	}
	s.token, s.expiry = token, expiry
	return s.token, nil
}

func requestToken(ctx context.Context, client *http.Client, endpoint string, body map[string]string) (string, time.Time, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("编码 token 请求失败: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("构建 token 请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("获取 token 失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", time.Time{}, fmt.Errorf("token 接口返回状态码 %d", resp.StatusCode)
	}

	var tokenResp tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", time.Time{}, fmt.Errorf("解析 token 响应失败: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return "", time.Time{}, errors.New("token 响应中缺少 access_token")
	}
	expires := time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)
	if tokenResp.ExpiresIn == 0 {
		expires = time.Now().Add(30 * time.Minute)
	}
	return tokenResp.AccessToken, expires, nil
}
