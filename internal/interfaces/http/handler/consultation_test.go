package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	domainllm "github.com/mediverse/backend/internal/domain/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func recordingRequest(t *testing.T, withAudio bool) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("patient_id", "P001"))
	require.NoError(t, mw.WriteField("patient_name", "Ravi"))
	require.NoError(t, mw.WriteField("chief_complaint", "cough"))
	if withAudio {
		part, err := mw.CreateFormFile("audio", "visit.webm")
		require.NoError(t, err)
		_, err = part.Write([]byte("fake audio"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/consultation/process-recording", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestConsultationHandler_ProcessRecording(t *testing.T) {
	env := setupRouter(t)
	env.transcriber.On("Transcribe", mock.Anything, "visit.webm", mock.Anything).
		Return("Patient reports a dry cough for a week.", nil)
	env.llm.On("Complete", mock.Anything, mock.Anything, domainllm.ModeJSON).
		Return(`{"call_summary":"Dry cough for a week.","symptoms":["dry cough"],"diagnosis":"Viral bronchitis","prescriptions":[]}`, nil)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, recordingRequest(t, true))

	require.Equal(t, http.StatusOK, w.Code)
	d := data(t, w)
	assert.Equal(t, true, d["success"])
	assert.Equal(t, "Patient reports a dry cough for a week.", d["transcript"])
	assert.Regexp(t, `^CONS-\d+$`, d["consultation_id"])
	analysis := d["ai_analysis"].(map[string]any)
	assert.Equal(t, "Viral bronchitis", analysis["diagnosis"])
}

func TestConsultationHandler_ProcessRecordingRequiresAudio(t *testing.T) {
	env := setupRouter(t)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, recordingRequest(t, false))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env.transcriber.AssertNotCalled(t, "Transcribe", mock.Anything, mock.Anything, mock.Anything)
}

func TestConsultationHandler_SaveGetList(t *testing.T) {
	env := setupRouter(t)

	w := env.do(t, http.MethodPost, "/api/v1/consultation/save", map[string]any{
		"consultation_id": "CONS-1",
		"patient_id":      "P001",
		"patient_name":    "Ravi",
		"duration":        "12:30",
		"medications": []map[string]string{
			{"name": "Amoxicillin", "dosage": "500mg", "frequency": "3x daily", "duration": "7 days"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "CONS-1", data(t, w)["consultation_id"])

	w = env.do(t, http.MethodGet, "/api/v1/consultation/CONS-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	kpis := data(t, w)["kpis"].(map[string]any)
	assert.Equal(t, "12:30", kpis["consultationTime"])
	assert.Equal(t, float64(1), kpis["medicationsPrescribed"])
	assert.Equal(t, true, kpis["followUpRequired"])

	w = env.do(t, http.MethodGet, "/api/v1/consultation", nil)
	assert.Equal(t, float64(1), data(t, w)["count"])

	w = env.do(t, http.MethodGet, "/api/v1/consultation/CONS-404", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
