package events

import (
	"time"

	"github.com/mediverse/backend/internal/domain/appointment"
)

// QueueEntryEvent 候诊队列新增条目
type QueueEntryEvent struct {
	Entry     appointment.QueueEntry
	EventTime time.Time
}

// Type 实现 Event 接口
func (e *QueueEntryEvent) Type() EventType {
	return QueueEntryCreated
}

// Timestamp 实现 Event 接口
func (e *QueueEntryEvent) Timestamp() time.Time {
	return e.EventTime
}

// AppointmentStatusEvent 预约状态变更
type AppointmentStatusEvent struct {
	AppointmentID string
	DoctorID      string
	From          appointment.Status
	To            appointment.Status
	EventTime     time.Time
}

// Type 实现 Event 接口
func (e *AppointmentStatusEvent) Type() EventType {
	return AppointmentStatusChanged
}

// Timestamp 实现 Event 接口
func (e *AppointmentStatusEvent) Timestamp() time.Time {
	return e.EventTime
}

// DirectoryEvent 医生目录重新加载
type DirectoryEvent struct {
	Path        string
	DoctorCount int
	EventTime   time.Time
}

// Type 实现 Event 接口
func (e *DirectoryEvent) Type() EventType {
	return DirectoryReloaded
}

// Timestamp 实现 Event 接口
func (e *DirectoryEvent) Timestamp() time.Time {
	return e.EventTime
}
