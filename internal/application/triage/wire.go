package triage

import "github.com/google/wire"

// ProviderSet 分诊应用服务 ProviderSet
var ProviderSet = wire.NewSet(NewService)
