package auth

import "github.com/google/wire"

// ProviderSet 登录服务 ProviderSet
var ProviderSet = wire.NewSet(NewService)
