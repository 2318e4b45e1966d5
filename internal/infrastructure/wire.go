package infrastructure

import (
	"github.com/google/wire"
	"github.com/mediverse/backend/internal/infrastructure/config"
	"github.com/mediverse/backend/internal/infrastructure/directory"
	"github.com/mediverse/backend/internal/infrastructure/llm"
	"github.com/mediverse/backend/internal/infrastructure/metrics"
	"github.com/mediverse/backend/internal/infrastructure/notification"
	"github.com/mediverse/backend/internal/infrastructure/storage"
	"github.com/mediverse/backend/internal/infrastructure/watcher"
	"github.com/mediverse/backend/internal/infrastructure/websocket"
)

// ProviderSet Infrastructure 层总 ProviderSet
var ProviderSet = wire.NewSet(
	config.ProviderSet,
	metrics.ProviderSet,
	storage.ProviderSet,
	llm.ProviderSet,
	watcher.ProviderSet,
	directory.ProviderSet,
	websocket.ProviderSet,
	notification.ProviderSet,
)
