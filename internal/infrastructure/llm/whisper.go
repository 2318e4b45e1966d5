package llm

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	domainllm "github.com/mediverse/backend/internal/domain/llm"
	"github.com/mediverse/backend/internal/infrastructure/config"
	"github.com/mediverse/backend/internal/infrastructure/log"
	"github.com/mediverse/backend/internal/infrastructure/metrics"
)

// WhisperTranscriber 语音转写客户端
type WhisperTranscriber struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewWhisperTranscriber 创建语音转写客户端
func NewWhisperTranscriber(cfg *config.LLMConfig, m *metrics.Metrics) *WhisperTranscriber {
	t := &WhisperTranscriber{
		model:   cfg.TranscribeModel,
		timeout: cfg.Timeout,
		metrics: m,
		logger:  log.NewModuleLogger("llm", "whisper"),
	}
	if cfg.APIKey != "" {
		t.client = newOpenAI(cfg)
	}
	return t
}

// Transcribe 转写音频
func (t *WhisperTranscriber) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	if t.client == nil {
		return "", fmt.Errorf("%w: api key not configured", domainllm.ErrTranscription)
	}
	if t.timeout > 0 {
		var cancel context.CancelFunc
		// 录音上传比普通对话慢
		ctx, cancel = context.WithTimeout(ctx, 2*t.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    t.model,
		FilePath: filename,
		Reader:   audio,
	})
	elapsed := time.Since(start)
	if err != nil {
		t.metrics.ObserveExternalCall(metrics.ServiceTranscription, metrics.OutcomeError, elapsed)
		log.FromContext(ctx, t.logger).Warn("transcription failed",
			"file", filename,
			"timeout", isTimeout(err),
			"error", err,
		)
		return "", fmt.Errorf("%w: %v", domainllm.ErrTranscription, err)
	}

	t.metrics.ObserveExternalCall(metrics.ServiceTranscription, metrics.OutcomeSuccess, elapsed)
	return strings.TrimSpace(resp.Text), nil
}
