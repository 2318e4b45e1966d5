package consultation

import "github.com/google/wire"

// ProviderSet 问诊应用服务 ProviderSet
var ProviderSet = wire.NewSet(NewService)
