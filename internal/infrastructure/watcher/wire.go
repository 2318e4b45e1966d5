package watcher

import (
	"github.com/google/wire"
	"github.com/mediverse/backend/internal/domain/events"
)

// ProvideEventBus 提供事件总线实例
func ProvideEventBus() events.EventBus {
	return NewEventBus()
}

// ProvideFileWatcher 提供文件监听器实例
func ProvideFileWatcher() (*FileWatcher, error) {
	return NewFileWatcher(DefaultWatchConfig())
}

// ProviderSet 监听与事件总线 ProviderSet
var ProviderSet = wire.NewSet(
	ProvideEventBus,
	ProvideFileWatcher,
)
