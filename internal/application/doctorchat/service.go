// Package doctorchat 医生端助手对话，以候诊队列和预约为上下文
package doctorchat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mediverse/backend/internal/domain/appointment"
	domainllm "github.com/mediverse/backend/internal/domain/llm"
	"github.com/mediverse/backend/internal/infrastructure/log"
	"github.com/mediverse/backend/internal/infrastructure/metrics"
)

// Service 医生助手服务
type Service struct {
	appointments appointment.Repository
	queue        appointment.QueueRepository
	llm          domainllm.TextGenerator
	metrics      *metrics.Metrics
	logger       *slog.Logger
}

// NewService 创建医生助手服务
func NewService(
	appointments appointment.Repository,
	queue appointment.QueueRepository,
	llm domainllm.TextGenerator,
	m *metrics.Metrics,
) *Service {
	return &Service{
		appointments: appointments,
		queue:        queue,
		llm:          llm,
		metrics:      m,
		logger:       log.NewModuleLogger("doctorchat", "service"),
	}
}

// load 读取医生的队列与预约，doctorID 为空时读取全部
func (s *Service) load(doctorID string) ([]appointment.QueueEntry, []appointment.Appointment) {
	if doctorID == "" {
		return s.queue.FindAll(), s.appointments.FindAll()
	}
	var apts []appointment.Appointment
	for _, a := range s.appointments.FindAll() {
		if a.DoctorID == doctorID {
			apts = append(apts, a)
		}
	}
	return s.queue.FindByDoctor(doctorID), apts
}

// Chat 回答医生提问；模型不可用时返回固定致歉文本
func (s *Service) Chat(ctx context.Context, dto *ChatDTO) *ChatResultDTO {
	if dto.DoctorID != "" {
		ctx = log.WithDoctorID(ctx, dto.DoctorID)
	}
	queue, apts := s.load(dto.DoctorID)
	messages := []domainllm.Message{
		{Role: domainllm.RoleSystem, Content: fmt.Sprintf(systemPromptTemplate, buildContext(dto.DoctorName, queue, apts))},
		{Role: domainllm.RoleUser, Content: dto.Message},
	}

	reply, err := s.llm.Complete(ctx, messages, domainllm.ModeText)
	if err != nil || strings.TrimSpace(reply) == "" {
		log.FromContext(ctx, s.logger).Warn("Doctor chat failed",
			"error", err,
		)
		s.metrics.RecordFallback("doctor_chat", "not_responding")
		return &ChatResultDTO{Success: false, Response: ApologyMessage, IsMarkdown: false}
	}

	return &ChatResultDTO{Success: true, Response: reply, IsMarkdown: true}
}

// Context 返回助手可见上下文的概览
func (s *Service) Context(doctorID string) *ContextDTO {
	queue, apts := s.load(doctorID)
	return &ContextDTO{
		Success:          true,
		PatientCount:     len(queue),
		AppointmentCount: len(apts),
		ContextPreview:   preview(buildContext("", queue, apts)),
	}
}
