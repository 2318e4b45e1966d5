package appointment

import (
	"github.com/google/wire"
	summaryApp "github.com/mediverse/backend/internal/application/summary"
)

// ProviderSet 预约应用服务 ProviderSet
var ProviderSet = wire.NewSet(
	NewService,
	wire.Bind(new(SummaryGenerator), new(*summaryApp.Generator)),
)
