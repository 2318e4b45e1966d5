package records

// CreateRecordDTO 新建病历请求
type CreateRecordDTO struct {
	PatientID   string   `json:"patient_id" binding:"required"`
	RecordType  string   `json:"record_type" binding:"required"`
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Date        string   `json:"date" binding:"required"`
	DoctorID    string   `json:"doctor_id"`
	DoctorName  string   `json:"doctor_name"`
	Attachments []string `json:"attachments"`
}
