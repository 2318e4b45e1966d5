//go:build wireinject
// +build wireinject

package wire

import (
	"github.com/google/wire"
	"github.com/mediverse/backend/internal/application"
	"github.com/mediverse/backend/internal/infrastructure"
	"github.com/mediverse/backend/internal/interfaces"
)

// InitializeAll 初始化所有服务（HTTP + MCP + 后台任务）
func InitializeAll() (*App, error) {
	wire.Build(
		// 按层组合 ProviderSet
		infrastructure.ProviderSet, // 基础设施层
		application.ProviderSet,    // 应用层
		interfaces.ProviderSet,     // 接口层
		NewApp,                     // 组合所有服务的应用结构
	)
	return nil, nil
}
