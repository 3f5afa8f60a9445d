package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xiaolin/libfund/internal/infrastructure/persistence/redis"
	"github.com/xiaolin/libfund/pkg/jwt"
	"github.com/xiaolin/libfund/pkg/response"
)

// AuthMiddleware 管理端JWT认证中间件
// 设计说明：
// 1. 从Header提取Token
// 2. 检查Token黑名单(登出后的Token主动失效)
// 3. 验证Token有效性和管理员角色
// 4. 将Token和角色注入Context
type AuthMiddleware struct {
	jwtManager   *jwt.Manager
	sessionStore *redis.AdminSessionStore
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager, sessionStore *redis.AdminSessionStore) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
	}
}

// RequireAdmin 要求管理员登录
// 使用方式：
//
//	admin := r.Group("/api/v1/admin")
//	admin.Use(authMiddleware.RequireAdmin())
//	admin.GET("/reports/demand", handler.DemandReport)
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 从Header提取Token
		// 格式：Authorization: Bearer <token>
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.ErrorWithCode(c, 40100, "请先登录")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.ErrorWithCode(c, 40101, "Token格式错误")
			c.Abort()
			return
		}

		tokenString := parts[1]

		// 2. 检查Token是否在黑名单中(已登出或被强制失效)
		isBlacklisted, err := m.sessionStore.IsInBlacklist(c.Request.Context(), tokenString)
		if err != nil {
			response.ErrorWithCode(c, 50000, "验证Token失败")
			c.Abort()
			return
		}
		if isBlacklisted {
			response.ErrorWithCode(c, 40102, "Token已失效，请重新登录")
			c.Abort()
			return
		}

		// 3. 验证Token并解析Claims
		claims, err := m.jwtManager.ParseToken(tokenString)
		if err != nil {
			response.Error(c, err) // 自动处理ErrTokenExpired、ErrInvalidToken
			c.Abort()
			return
		}

		// 4. 校验角色
		if claims.Role != "admin" {
			response.ErrorWithCode(c, 40100, "需要管理员权限")
			c.Abort()
			return
		}

		// 5. 将Token注入Context(登出时需要原始Token加黑名单)
		c.Set("role", claims.Role)
		c.Set("token", tokenString)
		c.Set("token_claims", claims)

		c.Next()
	}
}

// =========================================
// Context辅助函数（供Handler使用）
// =========================================

// GetToken 从Context获取当前请求的原始Token
func GetToken(c *gin.Context) string {
	if token, exists := c.Get("token"); exists {
		if t, ok := token.(string); ok {
			return t
		}
	}
	return ""
}

// GetClaims 从Context获取当前请求的Token Claims
func GetClaims(c *gin.Context) *jwt.Claims {
	if claims, exists := c.Get("token_claims"); exists {
		if cl, ok := claims.(*jwt.Claims); ok {
			return cl
		}
	}
	return nil
}
