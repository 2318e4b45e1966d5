// Package events 定义领域事件类型和接口
// 分诊、预约与医生目录之间通过事件总线解耦
package events

import "time"

// EventType 事件类型标识
type EventType string

// 分诊相关事件类型
const (
	// TriageSessionCompleted 分诊信息收集完成并给出推荐
	TriageSessionCompleted EventType = "triage.session.completed"
)

// 预约与队列相关事件类型
const (
	// QueueEntryCreated 新患者进入医生候诊队列
	QueueEntryCreated EventType = "queue.entry.created"
	// AppointmentStatusChanged 预约状态变更
	AppointmentStatusChanged EventType = "appointment.status.changed"
)

// 医生目录相关事件类型
const (
	// DirectoryReloaded 医生目录文件变更后重新加载
	DirectoryReloaded EventType = "doctor.directory.reloaded"
)

// Event 领域事件接口
type Event interface {
	// Type 返回事件类型
	Type() EventType
	// Timestamp 返回事件发生时间
	Timestamp() time.Time
}
