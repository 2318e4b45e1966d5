package notification

import (
	"github.com/mediverse/backend/internal/application/notification"
	domainNotification "github.com/mediverse/backend/internal/domain/notification"
	"github.com/mediverse/backend/internal/infrastructure/websocket"
)

// WebSocketPusher WebSocket 推送实现
type WebSocketPusher struct {
	hub *websocket.Hub
}

// NewWebSocketPusher 创建 WebSocket 推送器
func NewWebSocketPusher(hub *websocket.Hub) *WebSocketPusher {
	return &WebSocketPusher{hub: hub}
}

// PushToDoctor 推送到医生的所有连接
func (p *WebSocketPusher) PushToDoctor(doctorID string, n *domainNotification.Notification) error {
	return p.hub.BroadcastToDoctor(doctorID, n)
}

// 编译时检查接口实现
var _ notification.Pusher = (*WebSocketPusher)(nil)
