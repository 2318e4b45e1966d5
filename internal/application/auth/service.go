// Package auth 静态账号登录
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mediverse/backend/internal/domain/account"
	"github.com/mediverse/backend/internal/infrastructure/log"
)

// ErrInvalidCredentials 账号或密码不匹配，具体原因通过 errors.Is 区分
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service 登录服务
type Service struct {
	source account.CredentialSource
	logger *slog.Logger
}

// NewService 创建登录服务
func NewService(source account.CredentialSource) *Service {
	return &Service{
		source: source,
		logger: log.NewModuleLogger("auth", "service"),
	}
}

// Login 校验账号，成功返回不含密码的用户信息
// 账号文件不可读时返回普通错误，校验失败时返回包装了 ErrInvalidCredentials 的错误
func (s *Service) Login(ctx context.Context, dto *LoginDTO) (*LoginResultDTO, error) {
	creds, err := s.source.Credentials()
	if err != nil {
		return nil, fmt.Errorf("load credentials: %w", err)
	}

	user, err := creds.Authenticate(dto.Email, dto.Password, account.Role(dto.Role))
	if err != nil {
		log.FromContext(ctx, s.logger).Info("Login rejected",
			"role", dto.Role,
			"reason", err,
		)
		return nil, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}

	profile := user.Profile()
	log.FromContext(log.WithUserID(ctx, user.ID), s.logger).Info("Login successful",
		"role", user.Role,
	)
	return &LoginResultDTO{
		Success: true,
		Message: "Login successful",
		User:    &profile,
	}, nil
}
