package events

import "time"

// TriageCompletedEvent 分诊完成事件
type TriageCompletedEvent struct {
	SessionID string
	UserID    string
	Issue     string
	// PainRating 疼痛评分原始文本
	PainRating string
	Duration   string
	// DoctorID 推荐医生，目录为空时为空串
	DoctorID  string
	EventTime time.Time
}

// Type 实现 Event 接口
func (e *TriageCompletedEvent) Type() EventType {
	return TriageSessionCompleted
}

// Timestamp 实现 Event 接口
func (e *TriageCompletedEvent) Timestamp() time.Time {
	return e.EventTime
}
