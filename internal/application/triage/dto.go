package triage

import (
	"time"

	"github.com/mediverse/backend/internal/domain/doctor"
	"github.com/mediverse/backend/internal/domain/triage"
)

// StartSessionDTO 开始分诊请求
type StartSessionDTO struct {
	UserID *string `json:"user_id"`
}

// StartSessionResultDTO 开始分诊响应
type StartSessionResultDTO struct {
	SessionID      string `json:"session_id"`
	InitialMessage string `json:"initial_message"`
}

// SendMessageDTO 发送消息请求
type SendMessageDTO struct {
	SessionID string `json:"session_id" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

// SendMessageResultDTO 发送消息响应
type SendMessageResultDTO struct {
	Response          triage.AgentReply    `json:"response"`
	RecommendedDoctor *doctor.Doctor       `json:"recommended_doctor"`
	CollectedInfo     triage.CollectedInfo `json:"collected_info"`
}

// SessionSummaryDTO 会话列表项
type SessionSummaryDTO struct {
	SessionID         string        `json:"session_id"`
	CreatedAt         time.Time     `json:"created_at"`
	Status            triage.Status `json:"status"`
	Symptom           *string       `json:"symptom"`
	TriageLevel       *string       `json:"triage_level"`
	RecommendedDoctor *string       `json:"recommended_doctor"`
}
