package doctorchat

// ChatDTO 医生助手对话请求
type ChatDTO struct {
	Message    string `json:"message" binding:"required"`
	DoctorID   string `json:"doctor_id"`
	DoctorName string `json:"doctor_name"`
}

// ChatResultDTO 医生助手回复
type ChatResultDTO struct {
	Success    bool   `json:"success"`
	Response   string `json:"response"`
	IsMarkdown bool   `json:"is_markdown"`
}

// ContextDTO 助手可见上下文概览
type ContextDTO struct {
	Success          bool   `json:"success"`
	PatientCount     int    `json:"patient_count"`
	AppointmentCount int    `json:"appointment_count"`
	ContextPreview   string `json:"context_preview"`
}
