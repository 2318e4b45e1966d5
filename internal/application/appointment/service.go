// Package appointment 预约用例：预约登记、候诊队列与状态流转
package appointment

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	summaryApp "github.com/mediverse/backend/internal/application/summary"
	"github.com/mediverse/backend/internal/domain/appointment"
	"github.com/mediverse/backend/internal/domain/events"
	"github.com/mediverse/backend/internal/domain/triage"
	"github.com/mediverse/backend/internal/infrastructure/log"
	"github.com/mediverse/backend/internal/infrastructure/metrics"
)

// SummaryGenerator 候诊摘要生成
type SummaryGenerator interface {
	Generate(ctx context.Context, req summaryApp.Request) summaryApp.Summary
}

// Service 预约应用服务
type Service struct {
	repo      appointment.Repository
	queue     appointment.QueueRepository
	sessions  triage.SessionRepository
	generator SummaryGenerator
	publisher events.Publisher
	metrics   *metrics.Metrics
	now       func() time.Time
	logger    *slog.Logger
}

// NewService 创建预约服务
func NewService(
	repo appointment.Repository,
	queue appointment.QueueRepository,
	sessions triage.SessionRepository,
	generator SummaryGenerator,
	publisher events.Publisher,
	m *metrics.Metrics,
) *Service {
	return &Service{
		repo:      repo,
		queue:     queue,
		sessions:  sessions,
		generator: generator,
		publisher: publisher,
		metrics:   m,
		now:       time.Now,
		logger:    log.NewModuleLogger("appointment", "service"),
	}
}

func validate(dto *ScheduleDTO) error {
	required := []struct {
		name  string
		value string
	}{
		{"patient_id", dto.PatientID},
		{"patient_name", dto.PatientName},
		{"doctor_id", dto.DoctorID},
		{"appointment_date", dto.AppointmentDate},
		{"appointment_time", dto.AppointmentTime},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s", appointment.ErrMissingField, f.name)
		}
	}
	return nil
}

// Schedule 登记预约并生成候诊队列条目
// 预约写入失败返回错误；队列写入失败只记录日志
func (s *Service) Schedule(ctx context.Context, dto *ScheduleDTO) (*appointment.Appointment, error) {
	if err := validate(dto); err != nil {
		return nil, err
	}

	now := s.now()
	apt := &appointment.Appointment{
		AppointmentID:   uuid.New().String(),
		PatientID:       dto.PatientID,
		PatientName:     dto.PatientName,
		PatientEmail:    dto.PatientEmail,
		DoctorID:        dto.DoctorID,
		DoctorName:      dto.DoctorName,
		AppointmentDate: dto.AppointmentDate,
		AppointmentTime: dto.AppointmentTime,
		Status:          appointment.StatusScheduled,
		Reason:          dto.Reason,
		CreatedAt:       now,
		TriageSessionID: dto.TriageSessionID,
		Symptoms:        dto.Symptoms,
		PainRating:      dto.PainRating,
	}
	for _, line := range dto.AISummary {
		if strings.TrimSpace(line) != "" {
			apt.AISummary = append(apt.AISummary, line)
		}
	}

	if err := s.repo.Create(apt); err != nil {
		return nil, fmt.Errorf("save appointment: %w", err)
	}

	ctx = log.WithAppointmentID(log.WithDoctorID(ctx, apt.DoctorID), apt.AppointmentID)
	log.FromContext(ctx, s.logger).Info("Appointment scheduled",
		"date", apt.AppointmentDate,
		"time", apt.AppointmentTime,
	)

	s.enqueue(ctx, apt, apt.AISummary)
	return apt, nil
}

// enqueue 生成摘要并追加到医生候诊队列，precomputed 为调用方提交的摘要
func (s *Service) enqueue(ctx context.Context, apt *appointment.Appointment, precomputed []string) {
	var session *triage.Session
	if apt.TriageSessionID != "" {
		loaded, err := s.sessions.Get(apt.TriageSessionID)
		if err != nil {
			log.FromContext(ctx, s.logger).Warn("Could not load conversation history",
				"triage_session_id", apt.TriageSessionID,
				"error", err,
			)
		} else {
			session = loaded
		}
	}

	req := summaryApp.RequestFor(apt, session)
	req.Precomputed = precomputed
	sum := s.generator.Generate(ctx, req)
	entry := summaryApp.BuildQueueEntry(apt, sum, s.now())

	if err := s.queue.Append(entry); err != nil {
		log.FromContext(ctx, s.logger).Warn("Failed to add patient to queue",
			"error", err,
		)
		return
	}

	s.metrics.RecordQueueEntry()
	s.publisher.Publish(&events.QueueEntryEvent{Entry: entry, EventTime: s.now()})
	log.FromContext(ctx, s.logger).Debug("Queue entry created",
		"triage_score", entry.TriageScore,
		"summary_source", sum.Source,
	)
}

// ListByPatient 患者的预约，日期倒序
func (s *Service) ListByPatient(patientID string) []appointment.Appointment {
	return s.filter(func(a *appointment.Appointment) bool { return a.PatientID == patientID })
}

// ListByDoctor 医生的预约，日期倒序
func (s *Service) ListByDoctor(doctorID string) []appointment.Appointment {
	return s.filter(func(a *appointment.Appointment) bool { return a.DoctorID == doctorID })
}

func (s *Service) filter(match func(*appointment.Appointment) bool) []appointment.Appointment {
	out := []appointment.Appointment{}
	for _, apt := range s.repo.FindAll() {
		if match(&apt) {
			out = append(out, apt)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].AppointmentDate > out[j].AppointmentDate
	})
	return out
}

// Get 读取预约
func (s *Service) Get(appointmentID string) (*appointment.Appointment, error) {
	return s.repo.Get(appointmentID)
}

// UpdateStatus 更新预约状态
func (s *Service) UpdateStatus(ctx context.Context, appointmentID string, status appointment.Status) (*appointment.Appointment, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", appointment.ErrInvalidStatus, status)
	}

	var from appointment.Status
	updated, err := s.repo.Update(appointmentID, func(a *appointment.Appointment) error {
		from = a.Status
		now := s.now()
		a.Status = status
		a.UpdatedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	if from != status {
		s.publisher.Publish(&events.AppointmentStatusEvent{
			AppointmentID: updated.AppointmentID,
			DoctorID:      updated.DoctorID,
			From:          from,
			To:            status,
			EventTime:     s.now(),
		})
		log.FromContext(log.WithAppointmentID(ctx, appointmentID), s.logger).Info("Appointment status updated",
			"from", from,
			"to", status,
		)
	}
	return updated, nil
}

// DoctorQueue 医生候诊队列，按日期时间升序
func (s *Service) DoctorQueue(doctorID string) []appointment.QueueEntry {
	entries := s.queue.FindByDoctor(doctorID)
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].AppointmentDate != entries[j].AppointmentDate {
			return entries[i].AppointmentDate < entries[j].AppointmentDate
		}
		return entries[i].AppointmentTime < entries[j].AppointmentTime
	})
	return entries
}
