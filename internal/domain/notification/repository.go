package notification

// Repository 通知仓储接口
type Repository interface {
	Save(notification *Notification) error
	// FindByDoctor 按时间倒序返回医生最近的通知
	FindByDoctor(doctorID string) ([]*Notification, error)
}
