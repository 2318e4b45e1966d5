// Package llm 基于 OpenAI 兼容接口实现文本生成与语音转写
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	domainllm "github.com/mediverse/backend/internal/domain/llm"
	"github.com/mediverse/backend/internal/infrastructure/config"
	"github.com/mediverse/backend/internal/infrastructure/log"
	"github.com/mediverse/backend/internal/infrastructure/metrics"
)

// OpenAIClient 文本生成客户端
type OpenAIClient struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	timeout     time.Duration
	limiter     *rate.Limiter
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

// NewOpenAIClient 创建文本生成客户端
// 未配置 API Key 时仍返回客户端，调用时统一返回 ErrNotResponding
func NewOpenAIClient(cfg *config.LLMConfig, m *metrics.Metrics) *OpenAIClient {
	c := &OpenAIClient{
		model:       cfg.ChatModel,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		timeout:     cfg.Timeout,
		limiter:     newLimiter(cfg.RequestsPerSecond),
		metrics:     m,
		logger:      log.NewModuleLogger("llm", "openai"),
	}
	if cfg.APIKey != "" {
		c.client = newOpenAI(cfg)
	} else {
		c.logger.Warn("OPENAI_API_KEY not set, text generation disabled")
	}
	return c
}

func newOpenAI(cfg *config.LLMConfig) *openai.Client {
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	return openai.NewClientWithConfig(oc)
}

func newLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

// Complete 发送对话并返回助手回复
func (c *OpenAIClient) Complete(ctx context.Context, messages []domainllm.Message, mode domainllm.Mode) (string, error) {
	if c.client == nil {
		return "", fmt.Errorf("%w: api key not configured", domainllm.ErrNotResponding)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("%w: %v", domainllm.ErrNotResponding, err)
		}
	}

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    toOpenAIMessages(messages),
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}
	if mode == domainllm.ModeJSON {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	logger := log.FromContext(ctx, c.logger)
	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, req)
	elapsed := time.Since(start)
	if err != nil {
		c.metrics.ObserveExternalCall(metrics.ServiceChat, metrics.OutcomeError, elapsed)
		logger.Warn("chat completion failed",
			"model", c.model,
			"duration", elapsed,
			"error", err,
		)
		return "", fmt.Errorf("%w: %v", domainllm.ErrNotResponding, err)
	}
	if len(resp.Choices) == 0 {
		c.metrics.ObserveExternalCall(metrics.ServiceChat, metrics.OutcomeError, elapsed)
		return "", fmt.Errorf("%w: no choices returned", domainllm.ErrNotResponding)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" || domainllm.IsSentinel(content) {
		c.metrics.ObserveExternalCall(metrics.ServiceChat, metrics.OutcomeError, elapsed)
		return "", fmt.Errorf("%w: empty response", domainllm.ErrNotResponding)
	}

	if mode == domainllm.ModeJSON {
		content = stripCodeFence(content)
		if !json.Valid([]byte(content)) {
			c.metrics.ObserveExternalCall(metrics.ServiceChat, metrics.OutcomeMalformed, elapsed)
			return "", domainllm.ErrMalformedResponse
		}
	}

	c.metrics.ObserveExternalCall(metrics.ServiceChat, metrics.OutcomeSuccess, elapsed)
	logger.Debug("chat completion succeeded",
		"model", c.model,
		"duration", elapsed,
		"tokens", resp.Usage.TotalTokens,
	)
	return content, nil
}

func toOpenAIMessages(messages []domainllm.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		role := openai.ChatMessageRoleUser
		switch m.Role {
		case domainllm.RoleSystem:
			role = openai.ChatMessageRoleSystem
		case domainllm.RoleAssistant:
			role = openai.ChatMessageRoleAssistant
		}
		out = append(out, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	return out
}

// stripCodeFence 去掉模型偶尔包裹的 ```json 代码块
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// isTimeout 判断是否为超时
func isTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}
