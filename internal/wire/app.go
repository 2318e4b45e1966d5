package wire

import (
	"net"

	"log/slog"

	appNotification "github.com/mediverse/backend/internal/application/notification"
	"github.com/mediverse/backend/internal/application/summary"
	"github.com/mediverse/backend/internal/domain/events"
	"github.com/mediverse/backend/internal/infrastructure/directory"
	applog "github.com/mediverse/backend/internal/infrastructure/log"
	"github.com/mediverse/backend/internal/infrastructure/watcher"
	"github.com/mediverse/backend/internal/infrastructure/websocket"
	"github.com/mediverse/backend/internal/interfaces"
)

// App 应用主结构，组合所有服务
type App struct {
	HTTPServer    *interfaces.HTTPServer
	MCPServer     *interfaces.MCPServer
	wsHub         *websocket.Hub
	notifications *appNotification.Service
	precompute    *summary.PrecomputeJob
	loader        *directory.Loader
	logger        *slog.Logger

	// 文件监听相关
	eventBus    events.EventBus
	fileWatcher *watcher.FileWatcher
	unsubscribe func()
}

// NewApp 创建应用实例
func NewApp(
	httpServer *interfaces.HTTPServer,
	mcpServer *interfaces.MCPServer,
	wsHub *websocket.Hub,
	notifications *appNotification.Service,
	precompute *summary.PrecomputeJob,
	loader *directory.Loader,
	fileWatcher *watcher.FileWatcher,
	eventBus events.EventBus,
) *App {
	return &App{
		HTTPServer:    httpServer,
		MCPServer:     mcpServer,
		wsHub:         wsHub,
		notifications: notifications,
		precompute:    precompute,
		loader:        loader,
		logger:        applog.NewModuleLogger("app", "main"),
		eventBus:      eventBus,
		fileWatcher:   fileWatcher,
	}
}

// Start 启动所有服务，listener 为单例锁持有的端口
func (a *App) Start(listener net.Listener) error {
	a.logger.Info("Starting MediVerse backend application")

	// 启动 WebSocket Hub，之后才能订阅队列事件
	a.wsHub.Start()
	a.unsubscribe = a.notifications.Subscribe(a.eventBus)

	// 医生目录与账号文件热加载
	if a.fileWatcher != nil {
		if err := a.loader.Watch(a.fileWatcher); err != nil {
			a.logger.Warn("Failed to watch directory files",
				"error", err,
			)
		}
		if err := a.fileWatcher.Start(); err != nil {
			a.logger.Error("Failed to start file watcher",
				"error", err,
			)
		} else {
			a.logger.Info("File watcher started successfully")
		}
	}

	if err := a.precompute.Start(); err != nil {
		a.logger.Error("Failed to start summary precompute job",
			"error", err,
		)
	}

	// 启动 HTTP 服务器（goroutine）
	go func() {
		if err := a.HTTPServer.Start(listener); err != nil {
			a.logger.Error("HTTP server stopped with error",
				"error", err,
			)
		}
	}()

	a.logger.Info("MediVerse backend application started successfully")
	return nil
}

// Stop 停止所有服务
func (a *App) Stop() error {
	a.logger.Info("Stopping MediVerse backend application")

	// 先停止接收请求
	if err := a.HTTPServer.Stop(); err != nil {
		a.logger.Error("Failed to stop HTTP server",
			"error", err,
		)
		return err
	}

	if err := a.precompute.Stop(); err != nil {
		a.logger.Error("Failed to stop summary precompute job",
			"error", err,
		)
	}

	if a.fileWatcher != nil {
		a.fileWatcher.Stop()
		a.logger.Info("File watcher stopped")
	}

	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	if a.eventBus != nil {
		a.eventBus.Close()
		a.logger.Info("Event bus closed")
	}

	a.wsHub.Stop()

	a.logger.Info("MediVerse backend application stopped successfully")
	return nil
}
