package notification

import (
	"sync"

	"github.com/mediverse/backend/internal/domain/notification"
)

// recentLimit 每位医生保留的最近通知数
const recentLimit = 50

// MemoryRepository 内存仓储实现，进程重启后清空
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string][]*notification.Notification
}

// NewMemoryRepository 创建内存仓储
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		items: make(map[string][]*notification.Notification),
	}
}

// Save 保存通知，超出上限时丢弃最旧的
func (r *MemoryRepository) Save(n *notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := append(r.items[n.DoctorID], n)
	if len(list) > recentLimit {
		list = list[len(list)-recentLimit:]
	}
	r.items[n.DoctorID] = list
	return nil
}

// FindByDoctor 根据医生 ID 查找通知，最新的在前
func (r *MemoryRepository) FindByDoctor(doctorID string) ([]*notification.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := r.items[doctorID]
	result := make([]*notification.Notification, 0, len(list))
	for i := len(list) - 1; i >= 0; i-- {
		result = append(result, list[i])
	}
	return result, nil
}

// 编译时检查接口实现
var _ notification.Repository = (*MemoryRepository)(nil)
