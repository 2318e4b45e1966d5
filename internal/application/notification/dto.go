package notification

// NotificationDTO 通知响应
type NotificationDTO struct {
	ID            string `json:"id"`
	DoctorID      string `json:"doctor_id"`
	Type          string `json:"type"`
	Title         string `json:"title"`
	Message       string `json:"message"`
	AppointmentID string `json:"appointment_id,omitempty"`
	Priority      int    `json:"priority"`
	CreatedAt     string `json:"created_at"`
}
