package summary

import (
	"github.com/google/wire"
	infraLLM "github.com/mediverse/backend/internal/infrastructure/llm"
)

// ProvideTokenWindow 使用 tiktoken 计数器截取对话
func ProvideTokenWindow(counter *infraLLM.TokenCounter) TokenWindow {
	return counter
}

// ProviderSet 摘要 ProviderSet
var ProviderSet = wire.NewSet(
	NewGenerator,
	NewPatientService,
	NewPrecomputeJob,
	ProvideTokenWindow,
)
