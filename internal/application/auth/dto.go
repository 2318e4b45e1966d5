package auth

import "github.com/mediverse/backend/internal/domain/account"

// LoginDTO 登录请求
type LoginDTO struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// LoginResultDTO 登录结果
type LoginResultDTO struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	User    *account.Profile `json:"user,omitempty"`
}
