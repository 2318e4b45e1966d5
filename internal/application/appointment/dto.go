package appointment

// ScheduleDTO 预约请求
type ScheduleDTO struct {
	PatientID       string `json:"patient_id" binding:"required"`
	PatientName     string `json:"patient_name" binding:"required"`
	PatientEmail    string `json:"patient_email"`
	DoctorID        string `json:"doctor_id" binding:"required"`
	DoctorName      string `json:"doctor_name"`
	AppointmentDate string `json:"appointment_date" binding:"required"`
	AppointmentTime string `json:"appointment_time" binding:"required"`
	Reason          string `json:"reason"`
	TriageSessionID string `json:"triage_session_id"`
	Symptoms        string `json:"symptoms"`
	PainRating      string `json:"pain_rating"`
	// AISummary 前端已生成的摘要行，存在时不再调用模型
	AISummary []string `json:"ai_summary"`
}

// UpdateStatusDTO 状态更新请求，兼容 query 参数
type UpdateStatusDTO struct {
	Status string `json:"status" form:"status"`
}
