package storage

import "errors"

// ErrStorage 写入失败，读取失败不返回错误而是降级为空集合
var ErrStorage = errors.New("storage error")
