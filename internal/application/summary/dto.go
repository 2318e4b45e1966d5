package summary

import (
	"time"

	"github.com/mediverse/backend/internal/domain/appointment"
	"github.com/mediverse/backend/internal/domain/triage"
)

// PatientSummaryDTO 患者摘要请求
type PatientSummaryDTO struct {
	PatientID     string `json:"patient_id" binding:"required"`
	AppointmentID string `json:"appointment_id,omitempty"`
}

// TriageSessionDTO 患者摘要中的分诊会话
type TriageSessionDTO struct {
	SessionID string        `json:"session_id"`
	CreatedAt time.Time     `json:"created_at"`
	Status    triage.Status `json:"status"`
	Symptom   *string       `json:"symptom"`
}

// PatientSummaryResultDTO 患者摘要响应
type PatientSummaryResultDTO struct {
	Success        bool                        `json:"success"`
	PatientID      string                      `json:"patient_id"`
	PatientName    string                      `json:"patient_name"`
	PatientEmail   string                      `json:"patient_email"`
	Summary        string                      `json:"summary"`
	MedicalRecords []appointment.MedicalRecord `json:"medical_records"`
	Appointments   []appointment.Appointment   `json:"appointments"`
	TriageSessions []TriageSessionDTO          `json:"triage_sessions"`
	Error          string                      `json:"error,omitempty"`
}
