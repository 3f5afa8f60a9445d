package handler

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/xiaolin/libfund/internal/infrastructure/config"
	"github.com/xiaolin/libfund/internal/infrastructure/persistence/redis"
	"github.com/xiaolin/libfund/internal/interface/http/dto"
	"github.com/xiaolin/libfund/internal/interface/http/middleware"
	"github.com/xiaolin/libfund/pkg/jwt"
	"github.com/xiaolin/libfund/pkg/response"
)

// AuthHandler 管理端认证HTTP处理器
// 设计说明:
// 1. 管理端只有一个账号,用户名和bcrypt密码哈希来自配置
// 2. 登录签发双Token,登出把Access Token加入Redis黑名单
type AuthHandler struct {
	cfg          *config.Config
	jwtManager   *jwt.Manager
	sessionStore *redis.AdminSessionStore
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(cfg *config.Config, jwtManager *jwt.Manager, sessionStore *redis.AdminSessionStore) *AuthHandler {
	return &AuthHandler{
		cfg:          cfg,
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
	}
}

// Login 管理员登录
// @Summary      管理员登录
// @Description  校验用户名和密码（bcrypt），签发Access/Refresh Token
// @Tags         认证模块
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "登录信息"
// @Success      200 {object} response.Response{data=dto.LoginResponse} "登录成功"
// @Failure      200 {object} response.Response "40103 用户名或密码错误"
// @Router       /admin/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40901, "参数错误: "+err.Error())
		return
	}

	// 用户名不匹配和密码错误返回同一错误,不泄露账号是否存在
	if req.Username != h.cfg.Admin.Username {
		response.ErrorWithCode(c, 40103, "用户名或密码错误")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.cfg.Admin.PasswordHash), []byte(req.Password)); err != nil {
		response.ErrorWithCode(c, 40103, "用户名或密码错误")
		return
	}

	pair, err := h.jwtManager.GenerateToken("admin")
	if err != nil {
		response.Error(c, err)
		return
	}

	// 会话记录仅作审计,保存失败不阻断登录
	_ = h.sessionStore.SaveSession(c.Request.Context(), c.ClientIP(), h.cfg.JWT.RefreshTokenExpire)

	response.Success(c, &dto.LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
	})
}

// Logout 管理员登出
// @Summary      管理员登出
// @Description  将当前Token加入黑名单并清除会话（需要管理员权限）
// @Tags         认证模块
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response "登出成功"
// @Router       /admin/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.GetToken(c)
	if token == "" {
		response.ErrorWithCode(c, 40100, "请先登录")
		return
	}

	// 黑名单ttl取Access Token有效期:过期的Token本身就无效,无需更长
	if err := h.sessionStore.AddToBlacklist(c.Request.Context(), token, h.cfg.JWT.AccessTokenExpire); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.sessionStore.DeleteSession(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// Refresh 刷新Access Token
// @Summary      刷新Token
// @Description  使用Refresh Token换取新的Access Token
// @Tags         认证模块
// @Accept       json
// @Produce      json
// @Param        request body dto.RefreshRequest true "Refresh Token"
// @Success      200 {object} response.Response{data=dto.RefreshResponse} "刷新成功"
// @Failure      200 {object} response.Response "40101 Token无效 / 40102 Token过期"
// @Router       /admin/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40901, "参数错误: "+err.Error())
		return
	}

	accessToken, err := h.jwtManager.RefreshAccessToken(req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.RefreshResponse{AccessToken: accessToken})
}
