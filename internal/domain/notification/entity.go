package notification

import (
	"time"

	"github.com/mediverse/backend/internal/domain/appointment"
)

// Notification 推送给医生端的通知
type Notification struct {
	ID            string                  `json:"id"`
	DoctorID      string                  `json:"doctor_id"`
	Type          Type                    `json:"type"`
	Title         string                  `json:"title"`
	Message       string                  `json:"message"`
	AppointmentID string                  `json:"appointment_id,omitempty"`
	Priority      int                     `json:"priority"`
	Entry         *appointment.QueueEntry `json:"entry,omitempty"`
	CreatedAt     time.Time               `json:"created_at"`
}

// Type 通知类型
type Type string

const (
	// TypeQueueEntry 新患者进入候诊队列
	TypeQueueEntry Type = "queue_entry"
	// TypeStatusChange 预约状态变更
	TypeStatusChange Type = "status_change"
)
