package notification

import (
	"github.com/google/wire"
	"github.com/mediverse/backend/internal/domain/notification"
)

// ProviderSet 通知应用层 ProviderSet
var ProviderSet = wire.NewSet(
	NewService,
	notification.NewService,
	// 注意：Pusher 接口绑定在基础设施层 ProviderSet 中处理
)
