package triage

import "errors"

var (
	// ErrSessionNotFound 会话不存在
	ErrSessionNotFound = errors.New("session not found")

	// ErrMalformedReply 模型回复不是合法的结构化数据
	ErrMalformedReply = errors.New("malformed agent reply")

	// ErrEmptyMessage 用户消息为空
	ErrEmptyMessage = errors.New("message is empty")
)
