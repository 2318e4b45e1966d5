package llm

import (
	"github.com/google/wire"

	domainllm "github.com/mediverse/backend/internal/domain/llm"
)

// ProviderSet 大模型 ProviderSet
var ProviderSet = wire.NewSet(
	NewOpenAIClient,
	NewWhisperTranscriber,
	NewTokenCounter,
	wire.Bind(new(domainllm.TextGenerator), new(*OpenAIClient)),
	wire.Bind(new(domainllm.Transcriber), new(*WhisperTranscriber)),
)
