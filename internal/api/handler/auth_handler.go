package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/dto"
	"github.com/elfeezee02/exam-supervision-scheduler-pro/internal/service"
	"github.com/elfeezee02/exam-supervision-scheduler-pro/pkg/redis"
	"github.com/elfeezee02/exam-supervision-scheduler-pro/pkg/response"
)

// AuthHandler 认证模块 HTTP 处理器
type AuthHandler struct {
	authSvc service.AuthService
	rdb     *redis.Client
}

// NewAuthHandler 创建 AuthHandler
func NewAuthHandler(authSvc service.AuthService, rdb *redis.Client) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, rdb: rdb}
}

// Login 用户登录
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, 11001, "用户名或密码错误")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// RefreshToken 刷新 Token
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.authSvc.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Unauthorized(c, 10002, "Token 无效或已过期")
		return
	}

	response.OK(c, result)
}

// Logout 用户登出
// POST /api/v1/auth/logout
// 将当前 Access Token 的 jti 写入黑名单直至其自然过期
func (h *AuthHandler) Logout(c *gin.Context) {
	if h.rdb != nil {
		jti := c.GetString("token_jti")
		if jti != "" {
			ttl := 24 * time.Hour
			if v, exists := c.Get("token_ttl"); exists {
				if d, ok := v.(time.Duration); ok && d > 0 {
					ttl = d
				}
			}
			_ = h.rdb.BlacklistToken(c.Request.Context(), jti, ttl)
		}
	}
	response.OK(c, nil)
}

// Register 创建账号（仅管理员）
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.authSvc.Register(c.Request.Context(), &req, callerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameExists):
			response.BadRequest(c, 11002, "用户名已存在")
		case errors.Is(err, service.ErrEmailExists):
			response.BadRequest(c, 11003, "邮箱已存在")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// Me 获取当前登录用户信息
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.authSvc.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 12001, "用户不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
