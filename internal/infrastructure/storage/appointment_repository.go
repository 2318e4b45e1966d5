package storage

import (
	"github.com/mediverse/backend/internal/domain/appointment"
)

// AppointmentRepository 预约仓储，doctor/appointments.json
type AppointmentRepository struct {
	items *Collection[appointment.Appointment]
}

var _ appointment.Repository = (*AppointmentRepository)(nil)

// NewAppointmentRepository 创建预约仓储
func NewAppointmentRepository(store *JSONStore) *AppointmentRepository {
	return &AppointmentRepository{items: NewCollection[appointment.Appointment](store, NamespaceAppointments)}
}

// Create 追加预约
func (r *AppointmentRepository) Create(apt *appointment.Appointment) error {
	return r.items.Mutate(func(items []appointment.Appointment) ([]appointment.Appointment, error) {
		return append(items, *apt), nil
	})
}

// Get 按 ID 查找
func (r *AppointmentRepository) Get(appointmentID string) (*appointment.Appointment, error) {
	for _, apt := range r.items.Load() {
		if apt.AppointmentID == appointmentID {
			found := apt
			return &found, nil
		}
	}
	return nil, appointment.ErrAppointmentNotFound
}

// Update 修改单个预约
func (r *AppointmentRepository) Update(appointmentID string, fn func(*appointment.Appointment) error) (*appointment.Appointment, error) {
	var updated *appointment.Appointment
	err := r.items.Mutate(func(items []appointment.Appointment) ([]appointment.Appointment, error) {
		for i := range items {
			if items[i].AppointmentID != appointmentID {
				continue
			}
			if err := fn(&items[i]); err != nil {
				return nil, err
			}
			apt := items[i]
			updated = &apt
			return items, nil
		}
		return nil, appointment.ErrAppointmentNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// FindAll 读取全部预约
func (r *AppointmentRepository) FindAll() []appointment.Appointment {
	return r.items.Load()
}

// QueueRepository 候诊队列仓储，doctor/patient_queue.json
type QueueRepository struct {
	items *Collection[appointment.QueueEntry]
}

var _ appointment.QueueRepository = (*QueueRepository)(nil)

// NewQueueRepository 创建队列仓储
func NewQueueRepository(store *JSONStore) *QueueRepository {
	return &QueueRepository{items: NewCollection[appointment.QueueEntry](store, NamespaceQueue)}
}

// Append 追加队列条目
func (r *QueueRepository) Append(entry appointment.QueueEntry) error {
	return r.items.Mutate(func(items []appointment.QueueEntry) ([]appointment.QueueEntry, error) {
		return append(items, entry), nil
	})
}

// FindByDoctor 读取医生的队列
func (r *QueueRepository) FindByDoctor(doctorID string) []appointment.QueueEntry {
	out := []appointment.QueueEntry{}
	for _, e := range r.items.Load() {
		if e.DoctorID == doctorID {
			out = append(out, e)
		}
	}
	return out
}

// FindAll 读取全部队列条目
func (r *QueueRepository) FindAll() []appointment.QueueEntry {
	return r.items.Load()
}

// RecordRepository 病历仓储，patient/medical_records.json
type RecordRepository struct {
	items *Collection[appointment.MedicalRecord]
}

var _ appointment.RecordRepository = (*RecordRepository)(nil)

// NewRecordRepository 创建病历仓储
func NewRecordRepository(store *JSONStore) *RecordRepository {
	return &RecordRepository{items: NewCollection[appointment.MedicalRecord](store, NamespaceRecords)}
}

// Create 追加病历
func (r *RecordRepository) Create(record *appointment.MedicalRecord) error {
	return r.items.Mutate(func(items []appointment.MedicalRecord) ([]appointment.MedicalRecord, error) {
		return append(items, *record), nil
	})
}

// Get 按 ID 查找病历
func (r *RecordRepository) Get(recordID string) (*appointment.MedicalRecord, error) {
	for _, rec := range r.items.Load() {
		if rec.RecordID == recordID {
			found := rec
			return &found, nil
		}
	}
	return nil, appointment.ErrRecordNotFound
}

// FindByPatient 读取患者全部病历
func (r *RecordRepository) FindByPatient(patientID string) []appointment.MedicalRecord {
	out := []appointment.MedicalRecord{}
	for _, rec := range r.items.Load() {
		if rec.PatientID == patientID {
			out = append(out, rec)
		}
	}
	return out
}
