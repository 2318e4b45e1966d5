package records

import "github.com/google/wire"

// ProviderSet 病历应用服务 ProviderSet
var ProviderSet = wire.NewSet(NewService)
