package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTriageScoreFromPain(t *testing.T) {
	tests := []struct {
		pain     string
		expected TriageScore
	}{
		{"10", TriageHigh},
		{"7", TriageHigh},
		{"6", TriageMedium},
		{"4", TriageMedium},
		{"3", TriageLow},
		{"1", TriageLow},
		{" 8 ", TriageHigh},
		{"6.5", TriageMedium},
		{"severe", TriageLow},
		{"", TriageLow},
	}
	for _, tt := range tests {
		t.Run(tt.pain, func(t *testing.T) {
			assert.Equal(t, tt.expected, TriageScoreFromPain(tt.pain))
		})
	}
}

func TestParseTriageScore(t *testing.T) {
	score, ok := ParseTriageScore(" HIGH ")
	assert.True(t, ok)
	assert.Equal(t, TriageHigh, score)

	_, ok = ParseTriageScore("urgent")
	assert.False(t, ok)
}

func TestStatus_Valid(t *testing.T) {
	assert.True(t, StatusScheduled.Valid())
	assert.True(t, StatusCancelled.Valid())
	assert.False(t, Status("no-show").Valid())
}

func TestAppointment_HasSummary(t *testing.T) {
	assert.False(t, (&Appointment{}).HasSummary())
	assert.False(t, (&Appointment{AISummary: []string{" ", ""}}).HasSummary())
	assert.True(t, (&Appointment{AISummary: []string{"Fever for 3 days"}}).HasSummary())
}

func TestMostRecent(t *testing.T) {
	_, ok := MostRecent(nil)
	assert.False(t, ok)

	rec, ok := MostRecent([]MedicalRecord{
		{Title: "Blood test", Date: "2026-09-01"},
		{Title: "ECG", Date: "2026-10-02"},
		{Title: "X-ray", Date: "2026-03-11"},
	})
	assert.True(t, ok)
	assert.Equal(t, "ECG", rec.Title)
}
