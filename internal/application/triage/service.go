// Package triage 分诊会话用例：状态机驱动的三问对话与医生推荐
package triage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mediverse/backend/internal/domain/doctor"
	"github.com/mediverse/backend/internal/domain/events"
	domainllm "github.com/mediverse/backend/internal/domain/llm"
	"github.com/mediverse/backend/internal/domain/triage"
	"github.com/mediverse/backend/internal/infrastructure/log"
	"github.com/mediverse/backend/internal/infrastructure/metrics"
)

// symptomPreviewLen 会话列表中症状预览的最大字符数
const symptomPreviewLen = 50

// Outcome 一轮对话的处理结果
type Outcome struct {
	Reply         triage.AgentReply
	CollectedInfo triage.CollectedInfo
	// Degraded 为 true 表示模型不可用，本轮不应写入会话
	Degraded bool
}

// Service 分诊应用服务
type Service struct {
	repo      triage.SessionRepository
	directory doctor.DirectoryProvider
	llm       domainllm.TextGenerator
	publisher events.Publisher
	metrics   *metrics.Metrics
	now       func() time.Time
	logger    *slog.Logger
}

// NewService 创建分诊服务
func NewService(
	repo triage.SessionRepository,
	directory doctor.DirectoryProvider,
	llm domainllm.TextGenerator,
	publisher events.Publisher,
	m *metrics.Metrics,
) *Service {
	return &Service{
		repo:      repo,
		directory: directory,
		llm:       llm,
		publisher: publisher,
		metrics:   m,
		now:       time.Now,
		logger:    log.NewModuleLogger("triage", "service"),
	}
}

// Start 创建会话并写入开场白
func (s *Service) Start(ctx context.Context, userID *string) (*triage.Session, error) {
	now := s.now()
	session := &triage.Session{
		SessionID: uuid.New().String(),
		UserID:    userID,
		CreatedAt: now,
		Status:    triage.StatusActive,
	}
	session.Append(triage.SenderBot, Greeting, &triage.MessageMetadata{
		QuestionType:  triage.QuestionIssue,
		CollectedInfo: &triage.CollectedInfo{},
	}, now)

	if err := s.repo.Create(session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	log.FromContext(log.WithSessionID(ctx, session.SessionID), s.logger).Info("triage session started")
	return session, nil
}

// Process 处理一条用户消息
//
// 模型只负责措辞和字段抽取；收集进度由合并后的 CollectedInfo 决定，
// 完成时推荐医生并改写回复内容。模型失败不会返回错误。
func (s *Service) Process(ctx context.Context, history []triage.Message, userMessage string, current triage.CollectedInfo) Outcome {
	logger := log.FromContext(ctx, s.logger)

	raw, err := s.llm.Complete(ctx, buildMessages(history, userMessage, current), domainllm.ModeJSON)
	if err != nil && !errors.Is(err, domainllm.ErrMalformedResponse) {
		logger.Warn("text generation failed, returning apology",
			"error", err,
		)
		s.metrics.RecordFallback("triage", "not_responding")
		return Outcome{
			Reply: triage.AgentReply{
				Type:          triage.ReplyQuestion,
				Message:       UnavailableMessage,
				CollectedInfo: current,
			},
			CollectedInfo: current,
			Degraded:      true,
		}
	}

	var reply triage.AgentReply
	if err == nil {
		reply, err = triage.ParseAgentReply(raw)
	}
	if err != nil {
		logger.Warn("unusable agent reply, asking user to rephrase",
			"error", err,
		)
		s.metrics.RecordFallback("triage", "malformed")
		reply = triage.AgentReply{Type: triage.ReplyQuestion, Message: RepromptMessage}
	}

	merged := current.Merge(reply.CollectedInfo)
	stage := triage.StageOf(merged)
	reply.CollectedInfo = merged
	reply.QuestionType = stage.QuestionType()
	reply.IsComplete = stage.Done()

	if !stage.Done() {
		reply.Type = triage.ReplyQuestion
		reply.RecommendedDoctor = nil
		if strings.TrimSpace(reply.Message) == "" {
			reply.Message = questionFor(stage)
		}
		return Outcome{Reply: reply, CollectedInfo: merged}
	}

	reply.Type = triage.ReplyRecommendation
	reply.RecommendedDoctor = doctor.Recommend(s.directory.Directory(), merged.IssueText())
	if reply.RecommendedDoctor != nil {
		reply.Message = doctor.FormatRecommendation(reply.RecommendedDoctor, s.now())
	} else {
		logger.Warn("doctor directory is empty, using generic recommendation")
		reply.Message = doctor.GenericRecommendation
	}
	return Outcome{Reply: reply, CollectedInfo: merged}
}

// SendMessage 处理用户消息并把问答写入会话
func (s *Service) SendMessage(ctx context.Context, dto *SendMessageDTO) (*SendMessageResultDTO, error) {
	text := strings.TrimSpace(dto.Message)
	if text == "" {
		return nil, triage.ErrEmptyMessage
	}
	ctx = log.WithSessionID(ctx, dto.SessionID)

	session, err := s.repo.Get(dto.SessionID)
	if err != nil {
		return nil, err
	}

	outcome := s.Process(ctx, session.Messages, text, session.CollectedInfo)
	result := &SendMessageResultDTO{
		Response:          outcome.Reply,
		RecommendedDoctor: outcome.Reply.RecommendedDoctor,
		CollectedInfo:     outcome.CollectedInfo,
	}
	if outcome.Degraded {
		return result, nil
	}

	info := outcome.CollectedInfo
	meta := &triage.MessageMetadata{
		QuestionType:      outcome.Reply.QuestionType,
		CollectedInfo:     &info,
		IsComplete:        outcome.Reply.IsComplete,
		RecommendedDoctor: outcome.Reply.RecommendedDoctor,
	}

	var justCompleted bool
	updated, err := s.repo.Update(dto.SessionID, func(sess *triage.Session) error {
		wasActive := sess.Status == triage.StatusActive
		now := s.now()
		sess.Append(triage.SenderUser, text, nil, now)
		sess.Append(triage.SenderBot, outcome.Reply.Message, meta, now)
		justCompleted = wasActive && sess.Status == triage.StatusCompleted
		return nil
	})
	if err != nil {
		return nil, err
	}

	if justCompleted {
		s.onCompleted(ctx, updated)
	}
	return result, nil
}

// onCompleted 会话首次完成时发布事件
func (s *Service) onCompleted(ctx context.Context, session *triage.Session) {
	s.metrics.RecordTriageCompleted()

	evt := &events.TriageCompletedEvent{
		SessionID:  session.SessionID,
		Issue:      session.CollectedInfo.IssueText(),
		PainRating: session.CollectedInfo.PainRatingText(),
		Duration:   session.CollectedInfo.DurationText(),
		EventTime:  s.now(),
	}
	if session.UserID != nil {
		evt.UserID = *session.UserID
	}
	if doc := session.RecommendedDoctor(); doc != nil {
		evt.DoctorID = doc.ID
	}

	s.publisher.Publish(evt)
	log.FromContext(ctx, s.logger).Info("triage session completed",
		"severity", doctor.SeverityFromPainRating(evt.PainRating),
		"doctor_id", evt.DoctorID,
	)
}

// AddMessage 追加消息
// metadata 中的 collected_info 整体覆盖会话记录
func (s *Service) AddMessage(sessionID string, sender triage.Sender, content string, meta *triage.MessageMetadata) (*triage.Message, error) {
	var msg triage.Message
	_, err := s.repo.Update(sessionID, func(sess *triage.Session) error {
		msg = sess.Append(sender, content, meta, s.now())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// Get 读取会话
func (s *Service) Get(sessionID string) (*triage.Session, error) {
	return s.repo.Get(sessionID)
}

// List 列出会话，userID 为空时返回全部
func (s *Service) List(userID string) []triage.Session {
	return s.repo.List(userID)
}

// Delete 删除会话
func (s *Service) Delete(sessionID string) (bool, error) {
	return s.repo.Delete(sessionID)
}

// SessionSummaries 会话列表视图，按创建时间倒序
func (s *Service) SessionSummaries(userID string) []SessionSummaryDTO {
	sessions := s.repo.List(userID)
	out := make([]SessionSummaryDTO, 0, len(sessions))
	for i := range sessions {
		out = append(out, summarize(&sessions[i]))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func summarize(sess *triage.Session) SessionSummaryDTO {
	dto := SessionSummaryDTO{
		SessionID: sess.SessionID,
		CreatedAt: sess.CreatedAt,
		Status:    sess.Status,
	}

	if issue := sess.CollectedInfo.IssueText(); issue != "" {
		dto.Symptom = &issue
	} else if first, ok := firstUserMessage(sess); ok {
		preview := truncate(first, symptomPreviewLen)
		dto.Symptom = &preview
	}

	// 只看最后一条机器人消息
	for i := len(sess.Messages) - 1; i >= 0; i-- {
		m := sess.Messages[i]
		if m.Sender != triage.SenderBot {
			continue
		}
		if m.Metadata != nil {
			if m.Metadata.RecommendedDoctor != nil {
				name := m.Metadata.RecommendedDoctor.Name
				dto.RecommendedDoctor = &name
			}
			if m.Metadata.CollectedInfo != nil {
				dto.TriageLevel = triageLevel(m.Metadata.CollectedInfo.PainRatingText())
			}
		}
		break
	}
	return dto
}

func firstUserMessage(sess *triage.Session) (string, bool) {
	for _, m := range sess.Messages {
		if m.Sender == triage.SenderUser {
			return m.Content, true
		}
	}
	return "", false
}

// triageLevel 列表中的分诊级别，只接受整数评分
func triageLevel(painRating string) *string {
	n, err := strconv.Atoi(strings.TrimSpace(painRating))
	if err != nil {
		return nil
	}
	level := "high"
	switch {
	case n <= 3:
		level = "low"
	case n <= 6:
		level = "medium"
	}
	return &level
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
