package appointment

// Repository 预约仓储接口
type Repository interface {
	// Create 追加预约
	Create(apt *Appointment) error

	// Get 按 ID 查找，不存在时返回 ErrAppointmentNotFound
	Get(appointmentID string) (*Appointment, error)

	// Update 在集合写锁内修改单个预约
	Update(appointmentID string, fn func(*Appointment) error) (*Appointment, error)

	// FindAll 读取全部预约，读失败时为空
	FindAll() []Appointment
}

// QueueRepository 候诊队列仓储接口
type QueueRepository interface {
	// Append 追加队列条目
	Append(entry QueueEntry) error

	// FindByDoctor 读取医生的全部队列条目
	FindByDoctor(doctorID string) []QueueEntry
	// FindAll 读取全部队列条目
	FindAll() []QueueEntry
}

// RecordRepository 病历仓储接口
type RecordRepository interface {
	Create(record *MedicalRecord) error
	Get(recordID string) (*MedicalRecord, error)
	FindByPatient(patientID string) []MedicalRecord
}
