package consultation

// Repository 问诊记录仓储接口
type Repository interface {
	// Upsert 按 consultation_id 插入或整体替换
	Upsert(c *Consultation) error

	// Get 不存在时返回 ErrConsultationNotFound
	Get(consultationID string) (*Consultation, error)

	// FindAll 读取全部问诊记录
	FindAll() []Consultation
}
