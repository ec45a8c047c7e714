package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// RefreshTokenRequest 刷新 Token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RegisterRequest 注册请求（管理员创建账号）
type RegisterRequest struct {
	Username   string `json:"username"   binding:"required,min=2,max=100"`
	Email      string `json:"email"      binding:"required,email"`
	Department string `json:"department" binding:"required,max=100"`
	Role       string `json:"role"       binding:"omitempty,oneof=admin supervisor"`
	Password   string `json:"password"   binding:"required,min=6,max=72"`
}

// RegisterResponse 注册成功响应
type RegisterResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}
