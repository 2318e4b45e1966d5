package consultation

import "github.com/mediverse/backend/internal/domain/consultation"

// ProcessRecordingDTO 录音处理的表单字段
type ProcessRecordingDTO struct {
	PatientID      string `form:"patient_id" binding:"required"`
	PatientName    string `form:"patient_name" binding:"required"`
	ChiefComplaint string `form:"chief_complaint"`
	Duration       string `form:"duration"`
}

// ProcessRecordingResultDTO 录音处理结果
type ProcessRecordingResultDTO struct {
	Success        bool                    `json:"success"`
	ConsultationID string                  `json:"consultation_id"`
	Transcript     string                  `json:"transcript"`
	AIAnalysis     consultation.AIAnalysis `json:"ai_analysis"`
	Message        string                  `json:"message"`
}

// SaveDTO 保存问诊请求
type SaveDTO struct {
	ConsultationID   string                    `json:"consultation_id" binding:"required"`
	PatientID        string                    `json:"patient_id" binding:"required"`
	PatientName      string                    `json:"patient_name" binding:"required"`
	Date             string                    `json:"date"`
	Duration         string                    `json:"duration"`
	Symptoms         []string                  `json:"symptoms"`
	Diagnosis        string                    `json:"diagnosis"`
	Notes            string                    `json:"notes"`
	Medications      []consultation.Medication `json:"medications"`
	CallSummary      string                    `json:"call_summary"`
	PrescriptionSent bool                      `json:"prescription_sent"`
}
