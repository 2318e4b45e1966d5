// Package summary 候诊队列摘要生成、队列条目组装与患者摘要
package summary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mediverse/backend/internal/domain/appointment"
	domainllm "github.com/mediverse/backend/internal/domain/llm"
	"github.com/mediverse/backend/internal/domain/triage"
	"github.com/mediverse/backend/internal/infrastructure/config"
	"github.com/mediverse/backend/internal/infrastructure/log"
	"github.com/mediverse/backend/internal/infrastructure/metrics"
)

// Source 摘要来源
type Source string

const (
	SourcePrecomputed Source = "precomputed"
	SourcePersisted   Source = "persisted"
	SourceModel       Source = "model"
	SourceTemplate    Source = "template"
)

var errEmptySummary = errors.New("summary is empty")

// TokenWindow 按 token 预算截取对话片段
type TokenWindow interface {
	TailWithinBudget(lines []string, budget int) []string
}

// Request 摘要生成输入
type Request struct {
	PatientID    string
	PatientName  string
	Symptoms     string
	PainRating   string
	Duration     string
	DoctorName   string
	Conversation []triage.Message
	// Precomputed 调用方提供的预生成摘要，优先级最高
	Precomputed []string
	// Appointment 已持久化的预约，其 ai_summary 次优先
	Appointment *appointment.Appointment
}

// Summary 摘要结果
type Summary struct {
	Lines       []string
	KeyPoints   []string
	TriageScore appointment.TriageScore
	Source      Source
}

// Text 换行拼接的摘要文本
func (s Summary) Text() string {
	return strings.Join(s.Lines, "\n")
}

// modelSummary 模型返回的结构
type modelSummary struct {
	Summary     string          `json:"summary"`
	TriageScore string          `json:"triage_score"`
	KeyPoints   json.RawMessage `json:"key_points"`
}

// Generator 摘要生成器
type Generator struct {
	llm     domainllm.TextGenerator
	records appointment.RecordRepository
	window  TokenWindow
	budget  int
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewGenerator 创建摘要生成器
func NewGenerator(
	llm domainllm.TextGenerator,
	records appointment.RecordRepository,
	window TokenWindow,
	cfg *config.LLMConfig,
	m *metrics.Metrics,
) *Generator {
	return &Generator{
		llm:     llm,
		records: records,
		window:  window,
		budget:  cfg.TranscriptTokenBudget,
		metrics: m,
		logger:  log.NewModuleLogger("summary", "generator"),
	}
}

// Generate 生成摘要，任何失败都降级为模板摘要，不返回错误
//
// 优先级：调用方预生成摘要 > 预约上已持久化的摘要 > 模型生成 > 模板。
func (g *Generator) Generate(ctx context.Context, req Request) Summary {
	score := appointment.TriageScoreFromPain(req.PainRating)

	if lines := dropBlank(req.Precomputed); len(lines) > 0 {
		return Summary{Lines: lines, KeyPoints: lines, TriageScore: score, Source: SourcePrecomputed}
	}
	if req.Appointment != nil && req.Appointment.HasSummary() {
		lines := dropBlank(req.Appointment.AISummary)
		return Summary{Lines: lines, KeyPoints: lines, TriageScore: score, Source: SourcePersisted}
	}

	s, err := g.fromModel(ctx, &req, score)
	if err != nil {
		log.FromContext(ctx, g.logger).Warn("summary generation failed, using template",
			"patient_id", req.PatientID,
			"error", err,
		)
		g.metrics.RecordFallback("summary", fallbackReason(err))
		return Template(req)
	}
	return s
}

func (g *Generator) fromModel(ctx context.Context, req *Request, score appointment.TriageScore) (Summary, error) {
	transcript := transcriptLines(req.Conversation)
	if g.window != nil {
		transcript = g.window.TailWithinBudget(transcript, g.budget)
	}

	var digest string
	if g.records != nil && req.PatientID != "" {
		digest = historyDigest(g.records.FindByPatient(req.PatientID))
	}

	raw, err := g.llm.Complete(ctx, buildQueuePrompt(req, score, transcript, digest), domainllm.ModeJSON)
	if err != nil {
		return Summary{}, err
	}
	return parseModelSummary(raw, score)
}

// parseModelSummary 解析模型摘要；summary 为空视为失败，非法分级使用计算值
func parseModelSummary(raw string, score appointment.TriageScore) (Summary, error) {
	var m modelSummary
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return Summary{}, fmt.Errorf("%w: %v", domainllm.ErrMalformedResponse, err)
	}

	lines := nonBlank(strings.Split(m.Summary, "\n"))
	if len(lines) == 0 {
		return Summary{}, fmt.Errorf("%w: %w", domainllm.ErrMalformedResponse, errEmptySummary)
	}

	s := Summary{
		Lines:       lines,
		KeyPoints:   stringList(m.KeyPoints),
		TriageScore: score,
		Source:      SourceModel,
	}
	if parsed, ok := appointment.ParseTriageScore(m.TriageScore); ok {
		s.TriageScore = parsed
	}
	return s, nil
}

// Template 确定性的两行模板摘要
func Template(req Request) Summary {
	first := orDefault(strings.TrimSpace(req.Symptoms), "General consultation")
	if d := strings.TrimSpace(req.Duration); d != "" {
		first += " for " + d
	}

	second := "Pain level not reported"
	if p := strings.TrimSpace(req.PainRating); p != "" {
		second = "Pain level " + p + "/10"
	}
	if doc := strings.TrimSpace(req.DoctorName); doc != "" {
		second += " - " + doc
	}

	keyPoints := []string{}
	if s := strings.TrimSpace(req.Symptoms); s != "" {
		keyPoints = append(keyPoints, s)
	}

	return Summary{
		Lines:       []string{first, second},
		KeyPoints:   keyPoints,
		TriageScore: appointment.TriageScoreFromPain(req.PainRating),
		Source:      SourceTemplate,
	}
}

func fallbackReason(err error) string {
	if errors.Is(err, domainllm.ErrMalformedResponse) {
		return "malformed"
	}
	return "not_responding"
}

// dropBlank 去掉空白行，其余行原样保留
func dropBlank(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}

func nonBlank(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

// stringList 解析字符串数组，非字符串元素忽略
func stringList(raw json.RawMessage) []string {
	var items []any
	if len(raw) == 0 || json.Unmarshal(raw, &items) != nil {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}
