package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mediverse/backend/internal/application/auth"
	"github.com/mediverse/backend/internal/domain/account"
	"github.com/mediverse/backend/internal/interfaces/http/response"
)

// AuthHandler 登录处理器
type AuthHandler struct {
	service *auth.Service
}

// NewAuthHandler 创建登录处理器
func NewAuthHandler(service *auth.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login 静态账号登录
// @Summary 登录
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body auth.LoginDTO true "登录信息"
// @Success 200 {object} response.Response{data=auth.LoginResultDTO}
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var dto auth.LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.Error(c, http.StatusBadRequest, 110001, "Invalid request: "+err.Error())
		return
	}

	result, err := h.service.Login(c.Request.Context(), &dto)
	switch {
	case err == nil:
		response.Success(c, result)
	case errors.Is(err, account.ErrWrongPassword):
		response.Error(c, http.StatusUnauthorized, 110003, "Invalid password")
	case errors.Is(err, auth.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, 110002, "Invalid email or role")
	default:
		response.Error(c, http.StatusInternalServerError, 110004, "Credentials unavailable")
	}
}
