package summary

import (
	"time"

	"github.com/mediverse/backend/internal/domain/appointment"
)

// BuildQueueEntry 由预约和已决议的摘要组装候诊队列条目，不做任何外部调用
func BuildQueueEntry(apt *appointment.Appointment, s Summary, now time.Time) appointment.QueueEntry {
	score := s.TriageScore
	if score == "" {
		score = appointment.TriageScoreFromPain(apt.PainRating)
	}
	keyPoints := s.KeyPoints
	if keyPoints == nil {
		keyPoints = []string{}
	}
	status := apt.Status
	if status == "" {
		status = appointment.StatusScheduled
	}

	return appointment.QueueEntry{
		AppointmentID:   apt.AppointmentID,
		PatientID:       apt.PatientID,
		PatientName:     apt.PatientName,
		DoctorID:        apt.DoctorID,
		AppointmentDate: apt.AppointmentDate,
		AppointmentTime: apt.AppointmentTime,
		Status:          status,
		TriageScore:     score,
		Summary:         s.Text(),
		KeyPoints:       keyPoints,
		Symptoms:        apt.Symptoms,
		PainRating:      apt.PainRating,
		CreatedAt:       now,
	}
}
