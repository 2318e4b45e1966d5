// Package notification 把队列与预约事件转成医生端通知并实时推送
package notification

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mediverse/backend/internal/domain/events"
	"github.com/mediverse/backend/internal/domain/notification"
	"github.com/mediverse/backend/internal/infrastructure/log"
)

// Service 应用服务（用例编排）
type Service struct {
	domainRepo notification.Repository
	domainSvc  *notification.Service
	pusher     Pusher
	now        func() time.Time
	logger     *slog.Logger
}

// NewService 创建应用服务
func NewService(
	domainRepo notification.Repository,
	domainSvc *notification.Service,
	pusher Pusher,
) *Service {
	return &Service{
		domainRepo: domainRepo,
		domainSvc:  domainSvc,
		pusher:     pusher,
		now:        time.Now,
		logger:     log.NewModuleLogger("notification", "service"),
	}
}

// Subscribe 订阅队列与预约状态事件，返回取消订阅函数
func (s *Service) Subscribe(bus events.EventBus) func() {
	return bus.SubscribeMultiple([]events.EventType{
		events.QueueEntryCreated,
		events.AppointmentStatusChanged,
	}, s)
}

// HandleEvent 实现 events.Handler
func (s *Service) HandleEvent(event events.Event) error {
	notif := s.fromEvent(event)
	if notif == nil {
		return nil
	}
	_, err := s.CreateAndPush(notif)
	return err
}

func (s *Service) fromEvent(event events.Event) *notification.Notification {
	switch e := event.(type) {
	case *events.QueueEntryEvent:
		entry := e.Entry
		return &notification.Notification{
			DoctorID:      entry.DoctorID,
			Type:          notification.TypeQueueEntry,
			Title:         "New patient in queue",
			Message:       fmt.Sprintf("%s - %s %s (%s)", entry.PatientName, entry.AppointmentDate, entry.AppointmentTime, entry.TriageScore),
			AppointmentID: entry.AppointmentID,
			Entry:         &entry,
		}
	case *events.AppointmentStatusEvent:
		return &notification.Notification{
			DoctorID:      e.DoctorID,
			Type:          notification.TypeStatusChange,
			Title:         "Appointment " + string(e.To),
			Message:       fmt.Sprintf("Appointment %s changed from %s to %s", e.AppointmentID, e.From, e.To),
			AppointmentID: e.AppointmentID,
		}
	}
	return nil
}

// CreateAndPush 校验、保存并推送通知（用例）
func (s *Service) CreateAndPush(notif *notification.Notification) (*NotificationDTO, error) {
	notif.ID = uuid.New().String()
	notif.CreatedAt = s.now()

	if err := s.domainSvc.Validate(notif); err != nil {
		return nil, err
	}
	notif.Priority = s.domainSvc.CalculatePriority(notif)

	if err := s.domainRepo.Save(notif); err != nil {
		return nil, err
	}

	// 推送失败不影响保存
	if err := s.pusher.PushToDoctor(notif.DoctorID, notif); err != nil {
		s.logger.Warn("failed to push notification",
			"doctor_id", notif.DoctorID,
			"error", err,
		)
	}

	return toDTO(notif), nil
}

// Recent 医生最近的通知
func (s *Service) Recent(doctorID string) ([]*NotificationDTO, error) {
	list, err := s.domainRepo.FindByDoctor(doctorID)
	if err != nil {
		return nil, err
	}
	out := make([]*NotificationDTO, 0, len(list))
	for _, n := range list {
		out = append(out, toDTO(n))
	}
	return out, nil
}

// toDTO 转换为 DTO
func toDTO(n *notification.Notification) *NotificationDTO {
	return &NotificationDTO{
		ID:            n.ID,
		DoctorID:      n.DoctorID,
		Type:          string(n.Type),
		Title:         n.Title,
		Message:       n.Message,
		AppointmentID: n.AppointmentID,
		Priority:      n.Priority,
		CreatedAt:     n.CreatedAt.Format(time.RFC3339),
	}
}
