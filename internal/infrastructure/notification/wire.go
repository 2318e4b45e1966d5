package notification

import (
	"github.com/google/wire"
	appNotification "github.com/mediverse/backend/internal/application/notification"
	"github.com/mediverse/backend/internal/domain/notification"
)

// ProviderSet 通知基础设施层 ProviderSet
var ProviderSet = wire.NewSet(
	NewMemoryRepository,
	NewWebSocketPusher,
	// 接口绑定：domain.Repository -> infrastructure.Repository
	wire.Bind(
		new(notification.Repository),
		new(*MemoryRepository),
	),
	wire.Bind(
		new(appNotification.Pusher),
		new(*WebSocketPusher),
	),
)
