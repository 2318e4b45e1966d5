package summary

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/mediverse/backend/internal/domain/appointment"
	domainllm "github.com/mediverse/backend/internal/domain/llm"
	"github.com/mediverse/backend/internal/domain/triage"
	"github.com/mediverse/backend/internal/infrastructure/log"
	"github.com/mediverse/backend/internal/infrastructure/metrics"
)

// PatientService 问诊前的患者摘要
type PatientService struct {
	llm          domainllm.TextGenerator
	appointments appointment.Repository
	records      appointment.RecordRepository
	sessions     triage.SessionRepository
	metrics      *metrics.Metrics
	logger       *slog.Logger
}

// NewPatientService 创建患者摘要服务
func NewPatientService(
	llm domainllm.TextGenerator,
	appointments appointment.Repository,
	records appointment.RecordRepository,
	sessions triage.SessionRepository,
	m *metrics.Metrics,
) *PatientService {
	return &PatientService{
		llm:          llm,
		appointments: appointments,
		records:      records,
		sessions:     sessions,
		metrics:      m,
		logger:       log.NewModuleLogger("summary", "patient"),
	}
}

// Generate 汇总预约、病历与分诊会话生成自由文本摘要
// 模型失败时 Success 为 false，Summary 为人工复核提示
func (s *PatientService) Generate(ctx context.Context, dto *PatientSummaryDTO) *PatientSummaryResultDTO {
	ctx = log.WithUserID(ctx, dto.PatientID)

	appointments := s.patientAppointments(dto.PatientID)
	records := s.records.FindByPatient(dto.PatientID)
	sort.SliceStable(records, func(i, j int) bool { return records[i].Date > records[j].Date })
	sessions := s.sessions.List(dto.PatientID)

	result := &PatientSummaryResultDTO{
		PatientID:      dto.PatientID,
		PatientName:    fmt.Sprintf("Patient %s", dto.PatientID),
		PatientEmail:   fmt.Sprintf("patient%s@mediverse.com", dto.PatientID),
		MedicalRecords: records,
		Appointments:   appointments,
		TriageSessions: sessionDTOs(sessions),
	}
	// 预约里有真实姓名时优先使用
	if len(appointments) > 0 {
		if appointments[0].PatientName != "" {
			result.PatientName = appointments[0].PatientName
		}
		if appointments[0].PatientEmail != "" {
			result.PatientEmail = appointments[0].PatientEmail
		}
	}

	prompt := buildPatientPrompt(result.PatientName,
		head(appointments, patientAppointmentLimit),
		head(records, patientRecordLimit),
		head(sessions, patientSessionLimit),
	)
	text, err := s.llm.Complete(ctx, prompt, domainllm.ModeText)
	if err != nil {
		log.FromContext(ctx, s.logger).Error("Failed to generate patient summary",
			"error", err,
		)
		s.metrics.RecordFallback("patient_summary", fallbackReason(err))
		result.Error = err.Error()
		result.Summary = fmt.Sprintf("Error generating summary for %s. Please review patient records manually.", result.PatientName)
		return result
	}

	result.Success = true
	result.Summary = text
	return result
}

// patientAppointments 患者的预约，日期倒序
func (s *PatientService) patientAppointments(patientID string) []appointment.Appointment {
	var out []appointment.Appointment
	for _, apt := range s.appointments.FindAll() {
		if apt.PatientID == patientID {
			out = append(out, apt)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortKey() > out[j].SortKey() })
	if out == nil {
		out = []appointment.Appointment{}
	}
	return out
}

func sessionDTOs(sessions []triage.Session) []TriageSessionDTO {
	out := make([]TriageSessionDTO, 0, len(sessions))
	for _, sess := range sessions {
		dto := TriageSessionDTO{
			SessionID: sess.SessionID,
			CreatedAt: sess.CreatedAt,
			Status:    sess.Status,
		}
		if issue := sess.CollectedInfo.IssueText(); issue != "" {
			dto.Symptom = &issue
		}
		out = append(out, dto)
	}
	return out
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
