package doctorchat

import "github.com/google/wire"

// ProviderSet 医生助手 ProviderSet
var ProviderSet = wire.NewSet(NewService)
