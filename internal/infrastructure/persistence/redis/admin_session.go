package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/xiaolin/libfund/pkg/errors"
)

// AdminSessionStore 管理端会话存储
// 设计说明：
// 1. JWT是无状态的,登出后的Token通过Redis黑名单主动失效
// 2. 管理端只有一个账号,会话记录登录时间和IP供审计
// 3. Key设计：admin:session、admin:blacklist:{token}
type AdminSessionStore struct {
	client *redis.Client
}

// NewAdminSessionStore 创建管理端会话存储
func NewAdminSessionStore(client *redis.Client) *AdminSessionStore {
	return &AdminSessionStore{client: client}
}

const sessionKey = "admin:session"

// SaveSession 保存登录会话
// ttl与Refresh Token有效期一致,过期自动删除
func (s *AdminSessionStore) SaveSession(ctx context.Context, loginIP string, ttl time.Duration) error {
	data := map[string]interface{}{
		"login_at": time.Now().Format(time.RFC3339),
		"login_ip": loginIP,
	}

	if err := s.client.HSet(ctx, sessionKey, data).Err(); err != nil {
		return apperrors.Wrap(err, "保存会话失败")
	}

	if err := s.client.Expire(ctx, sessionKey, ttl).Err(); err != nil {
		return apperrors.Wrap(err, "设置会话过期时间失败")
	}

	return nil
}

// GetSession 获取登录会话
func (s *AdminSessionStore) GetSession(ctx context.Context) (map[string]string, error) {
	result, err := s.client.HGetAll(ctx, sessionKey).Result()
	if err != nil {
		return nil, apperrors.Wrap(err, "获取会话失败")
	}

	if len(result) == 0 {
		return nil, apperrors.ErrUnauthorized
	}

	return result, nil
}

// DeleteSession 删除登录会话（用于登出）
func (s *AdminSessionStore) DeleteSession(ctx context.Context) error {
	if err := s.client.Del(ctx, sessionKey).Err(); err != nil {
		return apperrors.Wrap(err, "删除会话失败")
	}

	return nil
}

// AddToBlacklist 将Token加入黑名单
// 使用场景：管理员登出、Token泄露后强制失效
// ttl取Access Token剩余有效期,过期后黑名单自动清理
func (s *AdminSessionStore) AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error {
	key := fmt.Sprintf("admin:blacklist:%s", token)

	if err := s.client.Set(ctx, key, "revoked", ttl).Err(); err != nil {
		return apperrors.Wrap(err, "添加Token到黑名单失败")
	}

	return nil
}

// IsInBlacklist 检查Token是否在黑名单中
func (s *AdminSessionStore) IsInBlacklist(ctx context.Context, token string) (bool, error) {
	key := fmt.Sprintf("admin:blacklist:%s", token)

	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, apperrors.Wrap(err, "检查黑名单失败")
	}

	return exists > 0, nil
}
