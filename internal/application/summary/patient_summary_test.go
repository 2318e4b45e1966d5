package summary

import (
	"context"
	"testing"
	"time"

	"github.com/mediverse/backend/internal/domain/appointment"
	domainllm "github.com/mediverse/backend/internal/domain/llm"
	"github.com/mediverse/backend/internal/domain/triage"
	"github.com/mediverse/backend/internal/infrastructure/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type patientFixture struct {
	svc          *PatientService
	llm          *MockTextGenerator
	appointments *storage.AppointmentRepository
	records      *storage.RecordRepository
	sessions     *storage.ConversationStore
}

func setupPatientService(t *testing.T) *patientFixture {
	t.Helper()
	js := setupStore(t)
	f := &patientFixture{
		llm:          new(MockTextGenerator),
		appointments: storage.NewAppointmentRepository(js),
		records:      storage.NewRecordRepository(js),
		sessions:     storage.NewConversationStore(js),
	}
	f.svc = NewPatientService(f.llm, f.appointments, f.records, f.sessions, nil)
	return f
}

func TestPatientService_Generate(t *testing.T) {
	f := setupPatientService(t)
	patient := "P1"
	require.NoError(t, f.appointments.Create(&appointment.Appointment{
		AppointmentID: "A1", PatientID: patient, PatientName: "Ravi Kumar", PatientEmail: "ravi@example.com",
		AppointmentDate: "2026-02-01", AppointmentTime: "10:00 AM", Symptoms: "cough", PainRating: "3",
	}))
	require.NoError(t, f.appointments.Create(&appointment.Appointment{AppointmentID: "A2", PatientID: "P2", PatientName: "Other"}))
	require.NoError(t, f.records.Create(&appointment.MedicalRecord{
		RecordID: "R1", PatientID: patient, Title: "X-Ray", RecordType: "imaging", Date: "2026-01-15", Description: "Clear lungs",
	}))
	require.NoError(t, f.sessions.Create(&triage.Session{
		SessionID: "S1", UserID: &patient, CreatedAt: time.Date(2026, 1, 30, 8, 0, 0, 0, time.UTC), Status: triage.StatusCompleted,
		CollectedInfo: triage.CollectedInfo{Issue: triage.StringPtr("cough"), PainRating: triage.StringPtr("3")},
	}))

	var prompt []domainllm.Message
	f.llm.On("Complete", mock.Anything, mock.Anything, domainllm.ModeText).
		Run(func(args mock.Arguments) { prompt = args.Get(1).([]domainllm.Message) }).
		Return("Ravi presents with a mild cough.", nil).Once()

	result := f.svc.Generate(context.Background(), &PatientSummaryDTO{PatientID: patient})

	assert.True(t, result.Success)
	assert.Equal(t, "Ravi presents with a mild cough.", result.Summary)
	assert.Equal(t, "Ravi Kumar", result.PatientName)
	assert.Equal(t, "ravi@example.com", result.PatientEmail)
	assert.Len(t, result.Appointments, 1)
	assert.Len(t, result.MedicalRecords, 1)
	require.Len(t, result.TriageSessions, 1)
	assert.Equal(t, "cough", *result.TriageSessions[0].Symptom)

	require.Len(t, prompt, 2)
	assert.Equal(t, patientSystemPrompt, prompt[0].Content)
	assert.Contains(t, prompt[1].Content, "- 2026-02-01 at 10:00 AM: No reason provided\n  Symptoms: cough\n  Pain Rating: 3/10")
	assert.Contains(t, prompt[1].Content, "- 2026-01-15 - X-Ray (imaging): Clear lungs...")
	assert.Contains(t, prompt[1].Content, "- 2026-01-30: cough (Pain: 3/10, Duration: Unknown)")
}

func TestPatientService_GenerateFailure(t *testing.T) {
	f := setupPatientService(t)
	f.llm.On("Complete", mock.Anything, mock.Anything, domainllm.ModeText).
		Return("", domainllm.ErrNotResponding).Once()

	result := f.svc.Generate(context.Background(), &PatientSummaryDTO{PatientID: "P9"})

	assert.False(t, result.Success)
	assert.Equal(t, "Patient P9", result.PatientName)
	assert.Equal(t, "patientP9@mediverse.com", result.PatientEmail)
	assert.Equal(t, "Error generating summary for Patient P9. Please review patient records manually.", result.Summary)
	assert.NotEmpty(t, result.Error)
	assert.NotNil(t, result.Appointments)
	assert.NotNil(t, result.MedicalRecords)
	assert.NotNil(t, result.TriageSessions)
}
