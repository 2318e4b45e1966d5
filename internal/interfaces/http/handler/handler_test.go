package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	appAppointment "github.com/mediverse/backend/internal/application/appointment"
	"github.com/mediverse/backend/internal/application/auth"
	appConsultation "github.com/mediverse/backend/internal/application/consultation"
	"github.com/mediverse/backend/internal/application/doctorchat"
	appNotification "github.com/mediverse/backend/internal/application/notification"
	"github.com/mediverse/backend/internal/application/records"
	"github.com/mediverse/backend/internal/application/summary"
	appTriage "github.com/mediverse/backend/internal/application/triage"
	"github.com/mediverse/backend/internal/domain/account"
	"github.com/mediverse/backend/internal/domain/doctor"
	"github.com/mediverse/backend/internal/domain/events"
	domainllm "github.com/mediverse/backend/internal/domain/llm"
	"github.com/mediverse/backend/internal/domain/notification"
	"github.com/mediverse/backend/internal/infrastructure/config"
	infraNotification "github.com/mediverse/backend/internal/infrastructure/notification"
	"github.com/mediverse/backend/internal/infrastructure/storage"
	"github.com/mediverse/backend/internal/infrastructure/websocket"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockTextGenerator 模拟 TextGenerator
type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Complete(ctx context.Context, messages []domainllm.Message, mode domainllm.Mode) (string, error) {
	args := m.Called(ctx, messages, mode)
	return args.String(0), args.Error(1)
}

// MockTranscriber 模拟 Transcriber
type MockTranscriber struct {
	mock.Mock
}

func (m *MockTranscriber) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	args := m.Called(ctx, filename, audio)
	return args.String(0), args.Error(1)
}

type nopPublisher struct{}

func (nopPublisher) Publish(events.Event) {}

type staticDirectory struct{}

func (staticDirectory) Directory() *doctor.Directory {
	return &doctor.Directory{Doctors: []doctor.Doctor{
		{ID: "D001", Name: "Dr. Sharma", Specialty: "General Physician", Rating: 4.5},
	}}
}

type staticCredentials struct{}

func (staticCredentials) Credentials() (*account.Credentials, error) {
	return &account.Credentials{Users: []account.User{
		{ID: "P001", Name: "Ravi", Email: "ravi@example.com", Password: "secret", Role: account.RolePatient},
	}}, nil
}

type testEnv struct {
	router      *gin.Engine
	llm         *MockTextGenerator
	transcriber *MockTranscriber
	queue       *storage.QueueRepository
	dataRoot    string
}

// setupRouter 创建完整的测试路由，服务均基于临时目录存储
func setupRouter(t *testing.T) *testEnv {
	t.Helper()
	js, err := storage.NewJSONStore(&config.StorageConfig{DataDir: t.TempDir()})
	require.NoError(t, err)

	env := &testEnv{
		llm:         new(MockTextGenerator),
		transcriber: new(MockTranscriber),
		queue:       storage.NewQueueRepository(js),
		dataRoot:    js.Root(),
	}
	sessions := storage.NewConversationStore(js)
	apts := storage.NewAppointmentRepository(js)
	recs := storage.NewRecordRepository(js)

	generator := summary.NewGenerator(env.llm, recs, nil, &config.LLMConfig{}, nil)
	hub := websocket.NewHub(&config.WebSocketConfig{ReadBufferSize: 1024, WriteBufferSize: 1024}, nil)
	notifications := appNotification.NewService(
		infraNotification.NewMemoryRepository(),
		notification.NewService(),
		infraNotification.NewWebSocketPusher(hub),
	)

	authH := NewAuthHandler(auth.NewService(staticCredentials{}))
	triageH := NewTriageHandler(appTriage.NewService(sessions, staticDirectory{}, env.llm, nopPublisher{}, nil))
	aptH := NewAppointmentHandler(appAppointment.NewService(apts, env.queue, sessions, generator, nopPublisher{}, nil))
	recH := NewRecordHandler(records.NewService(recs))
	sumH := NewSummaryHandler(summary.NewPatientService(env.llm, apts, recs, sessions, nil))
	consH := NewConsultationHandler(appConsultation.NewService(storage.NewConsultationRepository(js), env.transcriber, env.llm, nil))
	chatH := NewDoctorChatHandler(doctorchat.NewService(apts, env.queue, env.llm, nil))
	notifH := NewNotificationHandler(notifications, hub)

	router := gin.New()
	api := router.Group("/api/v1")
	{
		api.POST("/auth/login", authH.Login)

		api.POST("/triage/start", triageH.Start)
		api.POST("/triage/message", triageH.SendMessage)
		api.GET("/triage/conversation/:session_id", triageH.GetConversation)
		api.GET("/triage/sessions", triageH.ListSessions)
		api.DELETE("/triage/session/:session_id", triageH.DeleteSession)

		api.POST("/appointments/schedule", aptH.Schedule)
		api.GET("/appointments/patient/:patient_id", aptH.ListByPatient)
		api.GET("/appointments/doctor/:doctor_id", aptH.ListByDoctor)
		api.GET("/appointments/queue/doctor/:doctor_id", aptH.DoctorQueue)
		api.GET("/appointments/:appointment_id", aptH.Get)
		api.PATCH("/appointments/:appointment_id/status", aptH.UpdateStatus)

		api.POST("/medical-records", recH.Create)
		api.GET("/medical-records/patient/:patient_id", recH.ListByPatient)
		api.GET("/medical-records/:record_id", recH.Get)

		api.POST("/patient-summary", sumH.PatientSummary)

		api.POST("/consultation/process-recording", consH.ProcessRecording)
		api.POST("/consultation/save", consH.Save)
		api.GET("/consultation", consH.List)
		api.GET("/consultation/:consultation_id", consH.Get)

		api.POST("/doctor-chat/chat", chatH.Chat)
		api.GET("/doctor-chat/context/:doctor_id", chatH.Context)

		api.GET("/notifications/doctor/:doctor_id", notifH.Recent)
	}
	env.router = router
	return env
}

// do 发送请求，body 为 nil 时不带请求体
func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// decode 解析统一响应结构
func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// data 取出 data 字段
func data(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	d, ok := decode(t, w)["data"].(map[string]any)
	require.True(t, ok, "响应应包含 data 对象")
	return d
}
