package notification

import (
	"errors"

	"github.com/mediverse/backend/internal/domain/appointment"
)

var (
	// ErrInvalidDoctorID 缺少医生 ID
	ErrInvalidDoctorID = errors.New("invalid doctor id")
	// ErrInvalidTitle 无效的标题
	ErrInvalidTitle = errors.New("invalid title")
)

// Service 领域服务（纯业务逻辑）
type Service struct{}

// NewService 创建领域服务
func NewService() *Service {
	return &Service{}
}

// Validate 验证通知内容
func (s *Service) Validate(n *Notification) error {
	if n.DoctorID == "" {
		return ErrInvalidDoctorID
	}
	if n.Title == "" {
		return ErrInvalidTitle
	}
	return nil
}

// CalculatePriority 按分诊等级计算优先级，状态变更通知最低
func (s *Service) CalculatePriority(n *Notification) int {
	if n.Type != TypeQueueEntry || n.Entry == nil {
		return 1
	}
	switch n.Entry.TriageScore {
	case appointment.TriageHigh:
		return 3
	case appointment.TriageMedium:
		return 2
	default:
		return 1
	}
}
