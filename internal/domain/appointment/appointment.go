package appointment

import (
	"strings"
	"time"
)

// Status 预约状态
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Valid 是否为合法状态
func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Appointment 预约
type Appointment struct {
	AppointmentID   string     `json:"appointment_id"`
	PatientID       string     `json:"patient_id"`
	PatientName     string     `json:"patient_name"`
	PatientEmail    string     `json:"patient_email,omitempty"`
	DoctorID        string     `json:"doctor_id"`
	DoctorName      string     `json:"doctor_name,omitempty"`
	AppointmentDate string     `json:"appointment_date"`
	AppointmentTime string     `json:"appointment_time"`
	Status          Status     `json:"status"`
	Reason          string     `json:"reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
	TriageSessionID string     `json:"triage_session_id,omitempty"`
	Symptoms        string     `json:"symptoms,omitempty"`
	PainRating      string     `json:"pain_rating,omitempty"`

	// AISummary 预生成的摘要行，存在时摘要生成直接复用
	AISummary []string `json:"ai_summary,omitempty"`
}

// HasSummary 是否已有预生成摘要
func (a *Appointment) HasSummary() bool {
	for _, line := range a.AISummary {
		if strings.TrimSpace(line) != "" {
			return true
		}
	}
	return false
}

// Document appointments.json 文档结构
type Document struct {
	Appointments []Appointment `json:"appointments"`
}

// SortKey 按日期时间排序使用的键
func (a *Appointment) SortKey() string {
	return a.AppointmentDate + " " + a.AppointmentTime
}
