package notification

import (
	"errors"
	"testing"
	"time"

	"github.com/mediverse/backend/internal/domain/appointment"
	"github.com/mediverse/backend/internal/domain/events"
	"github.com/mediverse/backend/internal/domain/notification"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPusher 模拟推送
type MockPusher struct {
	mock.Mock
}

func (m *MockPusher) PushToDoctor(doctorID string, n *notification.Notification) error {
	args := m.Called(doctorID, n)
	return args.Error(0)
}

// memRepo 测试用仓储
type memRepo struct {
	items []*notification.Notification
}

func (r *memRepo) Save(n *notification.Notification) error {
	r.items = append(r.items, n)
	return nil
}

func (r *memRepo) FindByDoctor(doctorID string) ([]*notification.Notification, error) {
	var out []*notification.Notification
	for i := len(r.items) - 1; i >= 0; i-- {
		if r.items[i].DoctorID == doctorID {
			out = append(out, r.items[i])
		}
	}
	return out, nil
}

func setupService(pusher Pusher) *Service {
	svc := NewService(&memRepo{}, notification.NewService(), pusher)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestService_HandleQueueEntryEvent(t *testing.T) {
	pusher := new(MockPusher)
	pusher.On("PushToDoctor", "D1", mock.AnythingOfType("*notification.Notification")).Return(nil)
	svc := setupService(pusher)

	err := svc.HandleEvent(&events.QueueEntryEvent{Entry: appointment.QueueEntry{
		AppointmentID:   "A1",
		PatientName:     "Ravi",
		DoctorID:        "D1",
		AppointmentDate: "2026-03-05",
		AppointmentTime: "10:00 AM",
		TriageScore:     appointment.TriageHigh,
	}})
	require.NoError(t, err)

	pushed := pusher.Calls[0].Arguments.Get(1).(*notification.Notification)
	assert.Equal(t, notification.TypeQueueEntry, pushed.Type)
	assert.Equal(t, 3, pushed.Priority)
	assert.Equal(t, "Ravi - 2026-03-05 10:00 AM (high)", pushed.Message)

	recent, err := svc.Recent("D1")
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "A1", recent[0].AppointmentID)
	assert.Equal(t, "2026-03-01T09:00:00Z", recent[0].CreatedAt)
}

func TestService_HandleStatusEvent(t *testing.T) {
	pusher := new(MockPusher)
	pusher.On("PushToDoctor", "D1", mock.Anything).Return(errors.New("hub stopped"))
	svc := setupService(pusher)

	// 推送失败仍然保存
	err := svc.HandleEvent(&events.AppointmentStatusEvent{AppointmentID: "A1", DoctorID: "D1", From: appointment.StatusScheduled, To: appointment.StatusCompleted})
	require.NoError(t, err)

	recent, err := svc.Recent("D1")
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "Appointment completed", recent[0].Title)
	assert.Equal(t, 1, recent[0].Priority)
}

func TestService_HandleEvent_Invalid(t *testing.T) {
	pusher := new(MockPusher)
	svc := setupService(pusher)

	err := svc.HandleEvent(&events.AppointmentStatusEvent{AppointmentID: "A1", To: appointment.StatusCancelled})
	assert.ErrorIs(t, err, notification.ErrInvalidDoctorID)

	// 不关心的事件类型直接忽略
	assert.NoError(t, svc.HandleEvent(&events.DirectoryEvent{}))
	pusher.AssertNotCalled(t, "PushToDoctor", mock.Anything, mock.Anything)
}
