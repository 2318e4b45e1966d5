package storage

import (
	"github.com/mediverse/backend/internal/domain/consultation"
)

// ConsultationRepository 问诊记录仓储，doctor/consultations.json
type ConsultationRepository struct {
	items *Collection[consultation.Consultation]
}

var _ consultation.Repository = (*ConsultationRepository)(nil)

// NewConsultationRepository 创建问诊记录仓储
func NewConsultationRepository(store *JSONStore) *ConsultationRepository {
	return &ConsultationRepository{items: NewCollection[consultation.Consultation](store, NamespaceConsultations)}
}

// Upsert 按 ID 替换或追加
func (r *ConsultationRepository) Upsert(c *consultation.Consultation) error {
	return r.items.Mutate(func(items []consultation.Consultation) ([]consultation.Consultation, error) {
		for i := range items {
			if items[i].ConsultationID == c.ConsultationID {
				items[i] = *c
				return items, nil
			}
		}
		return append(items, *c), nil
	})
}

// Get 按 ID 查找
func (r *ConsultationRepository) Get(consultationID string) (*consultation.Consultation, error) {
	for _, c := range r.items.Load() {
		if c.ConsultationID == consultationID {
			found := c
			return &found, nil
		}
	}
	return nil, consultation.ErrConsultationNotFound
}

// FindAll 读取全部问诊记录
func (r *ConsultationRepository) FindAll() []consultation.Consultation {
	return r.items.Load()
}
