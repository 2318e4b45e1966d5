package storage

import (
	"github.com/google/wire"
	"github.com/mediverse/backend/internal/domain/appointment"
	"github.com/mediverse/backend/internal/domain/consultation"
	"github.com/mediverse/backend/internal/domain/triage"
)

// ProviderSet Storage 基础设施层 ProviderSet
var ProviderSet = wire.NewSet(
	NewJSONStore,              // 数据目录与原子写
	NewConversationStore,      // 分诊会话（每会话一个文件）
	NewAppointmentRepository,  // 预约
	NewQueueRepository,        // 候诊队列
	NewRecordRepository,       // 病历
	NewConsultationRepository, // 问诊记录
	wire.Bind(new(triage.SessionRepository), new(*ConversationStore)),
	wire.Bind(new(appointment.Repository), new(*AppointmentRepository)),
	wire.Bind(new(appointment.QueueRepository), new(*QueueRepository)),
	wire.Bind(new(appointment.RecordRepository), new(*RecordRepository)),
	wire.Bind(new(consultation.Repository), new(*ConsultationRepository)),
)
