package triage

import (
	"strings"
	"time"

	"github.com/mediverse/backend/internal/domain/doctor"
)

// Status 会话状态
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Sender 消息发送方
type Sender string

const (
	SenderBot  Sender = "bot"
	SenderUser Sender = "user"
)

// CollectedInfo 分诊过程中收集的三项信息
type CollectedInfo struct {
	Issue      *string `json:"issue"`
	PainRating *string `json:"pain_rating"`
	Duration   *string `json:"duration"`
}

// usable 判断抽取值是否可以写入
func usable(v *string) bool {
	if v == nil {
		return false
	}
	s := strings.TrimSpace(*v)
	return s != "" && s != "null"
}

func value(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// IssueText 主诉文本，未收集时为空串
func (c CollectedInfo) IssueText() string { return value(c.Issue) }

// PainRatingText 疼痛评分文本，未收集时为空串
func (c CollectedInfo) PainRatingText() string { return value(c.PainRating) }

// DurationText 持续时间文本，未收集时为空串
func (c CollectedInfo) DurationText() string { return value(c.Duration) }

// IsComplete 三项信息均已收集
func (c CollectedInfo) IsComplete() bool {
	return usable(c.Issue) && usable(c.PainRating) && usable(c.Duration)
}

// Merge 返回合并后的信息：只有非空且不为 "null" 的新值才会写入，已收集字段不会被清空
func (c CollectedInfo) Merge(next CollectedInfo) CollectedInfo {
	merged := c
	if usable(next.Issue) {
		merged.Issue = copyString(next.Issue)
	}
	if usable(next.PainRating) {
		merged.PainRating = copyString(next.PainRating)
	}
	if usable(next.Duration) {
		merged.Duration = copyString(next.Duration)
	}
	return merged
}

func copyString(v *string) *string {
	s := *v
	return &s
}

// StringPtr 便于构造 CollectedInfo
func StringPtr(s string) *string {
	return &s
}

// MessageMetadata 机器人消息附带的结构化信息
type MessageMetadata struct {
	QuestionType      string         `json:"question_type,omitempty"`
	CollectedInfo     *CollectedInfo `json:"collected_info,omitempty"`
	IsComplete        bool           `json:"is_complete,omitempty"`
	RecommendedDoctor *doctor.Doctor `json:"recommended_doctor,omitempty"`
}

// Message 会话中的一条消息
type Message struct {
	ID        int              `json:"id"`
	Sender    Sender           `json:"type"`
	Content   string           `json:"content"`
	Timestamp time.Time        `json:"timestamp"`
	Metadata  *MessageMetadata `json:"metadata,omitempty"`
}

// Session 分诊会话文档，每个会话一个文件
type Session struct {
	SessionID     string        `json:"session_id"`
	UserID        *string       `json:"user_id"`
	CreatedAt     time.Time     `json:"created_at"`
	Messages      []Message     `json:"messages"`
	CollectedInfo CollectedInfo `json:"collected_info"`
	Status        Status        `json:"status"`
}

// Append 追加消息，ID 为已有消息数 + 1
// metadata 中的 collected_info 整体覆盖会话记录（已决议的最终状态），is_complete 时会话置为完成
func (s *Session) Append(sender Sender, content string, meta *MessageMetadata, now time.Time) Message {
	msg := Message{
		ID:        len(s.Messages) + 1,
		Sender:    sender,
		Content:   content,
		Timestamp: now,
		Metadata:  meta,
	}
	s.Messages = append(s.Messages, msg)

	if meta != nil {
		if meta.CollectedInfo != nil {
			s.CollectedInfo = *meta.CollectedInfo
		}
		if meta.IsComplete {
			s.Status = StatusCompleted
		}
	}
	return msg
}

// Stage 当前会话所处阶段
func (s *Session) Stage() Stage {
	return StageOf(s.CollectedInfo)
}

// BelongsTo 按用户过滤，userID 为空表示不过滤
func (s *Session) BelongsTo(userID string) bool {
	if userID == "" {
		return true
	}
	return s.UserID != nil && *s.UserID == userID
}

// FirstUserMessage 第一条用户消息内容
func (s *Session) FirstUserMessage() string {
	for _, m := range s.Messages {
		if m.Sender == SenderUser {
			return m.Content
		}
	}
	return ""
}

// LastBotMetadata 最后一条带 metadata 的机器人消息
func (s *Session) LastBotMetadata() *MessageMetadata {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		m := s.Messages[i]
		if m.Sender == SenderBot && m.Metadata != nil {
			return m.Metadata
		}
	}
	return nil
}

// RecommendedDoctor 会话中最近一次推荐的医生
func (s *Session) RecommendedDoctor() *doctor.Doctor {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if meta := s.Messages[i].Metadata; meta != nil && meta.RecommendedDoctor != nil {
			return meta.RecommendedDoctor
		}
	}
	return nil
}
