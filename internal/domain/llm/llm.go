// Package llm 定义外部文本生成与语音转写服务的窄接口
package llm

import (
	"context"
	"errors"
	"io"
)

// Role 消息角色
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message 角色标记的对话消息
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// NotRespondingSentinel 外部服务失败时约定的哨兵文本
const NotRespondingSentinel = "Azure OpenAI Not Responding"

var (
	// ErrNotResponding 外部服务调用失败或超时
	ErrNotResponding = errors.New("text generation service not responding")

	// ErrMalformedResponse 结构化模式下返回了无法解析的内容
	ErrMalformedResponse = errors.New("malformed response from text generation service")

	// ErrTranscription 语音转写失败
	ErrTranscription = errors.New("transcription failed")
)

// Mode 生成模式
type Mode int

const (
	// ModeText 自由文本
	ModeText Mode = iota
	// ModeJSON 要求返回可解析的 JSON
	ModeJSON
)

// TextGenerator 文本生成服务
// 失败时返回包装了 ErrNotResponding 的错误，调用方负责降级
type TextGenerator interface {
	Complete(ctx context.Context, messages []Message, mode Mode) (string, error)
}

// Transcriber 语音转写服务
type Transcriber interface {
	Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error)
}

// IsSentinel 判断返回值是否为失败哨兵
func IsSentinel(s string) bool {
	return s == NotRespondingSentinel
}
