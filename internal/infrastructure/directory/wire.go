package directory

import (
	"github.com/google/wire"
	"github.com/mediverse/backend/internal/domain/account"
	"github.com/mediverse/backend/internal/domain/doctor"
	"github.com/mediverse/backend/internal/domain/events"
)

// ProvidePublisher 事件总线只以发布方身份注入
func ProvidePublisher(bus events.EventBus) events.Publisher {
	return bus
}

// ProviderSet 静态数据加载 ProviderSet
var ProviderSet = wire.NewSet(
	NewLoader,
	ProvidePublisher,
	wire.Bind(new(doctor.DirectoryProvider), new(*Loader)),
	wire.Bind(new(account.CredentialSource), new(*Loader)),
)
