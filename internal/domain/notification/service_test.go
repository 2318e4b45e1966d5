package notification

import (
	"testing"

	"github.com/mediverse/backend/internal/domain/appointment"
	"github.com/stretchr/testify/assert"
)

func TestService_Validate(t *testing.T) {
	svc := NewService()

	assert.ErrorIs(t, svc.Validate(&Notification{Title: "x"}), ErrInvalidDoctorID)
	assert.ErrorIs(t, svc.Validate(&Notification{DoctorID: "D1"}), ErrInvalidTitle)
	assert.NoError(t, svc.Validate(&Notification{DoctorID: "D1", Title: "x"}))
}

func TestService_CalculatePriority(t *testing.T) {
	svc := NewService()
	tests := []struct {
		name     string
		n        Notification
		expected int
	}{
		{"high triage", Notification{Type: TypeQueueEntry, Entry: &appointment.QueueEntry{TriageScore: appointment.TriageHigh}}, 3},
		{"medium triage", Notification{Type: TypeQueueEntry, Entry: &appointment.QueueEntry{TriageScore: appointment.TriageMedium}}, 2},
		{"low triage", Notification{Type: TypeQueueEntry, Entry: &appointment.QueueEntry{TriageScore: appointment.TriageLow}}, 1},
		{"status change", Notification{Type: TypeStatusChange}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, svc.CalculatePriority(&tt.n))
		})
	}
}
