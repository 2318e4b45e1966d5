// Package records 病历用例
package records

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/mediverse/backend/internal/domain/appointment"
	"github.com/mediverse/backend/internal/infrastructure/log"
)

// Service 病历应用服务
type Service struct {
	repo   appointment.RecordRepository
	now    func() time.Time
	logger *slog.Logger
}

// NewService 创建病历服务
func NewService(repo appointment.RecordRepository) *Service {
	return &Service{
		repo:   repo,
		now:    time.Now,
		logger: log.NewModuleLogger("records", "service"),
	}
}

// Create 新建病历
func (s *Service) Create(ctx context.Context, dto *CreateRecordDTO) (*appointment.MedicalRecord, error) {
	attachments := dto.Attachments
	if attachments == nil {
		attachments = []string{}
	}
	record := &appointment.MedicalRecord{
		RecordID:    uuid.New().String(),
		PatientID:   dto.PatientID,
		RecordType:  dto.RecordType,
		Title:       dto.Title,
		Description: dto.Description,
		Date:        dto.Date,
		DoctorID:    dto.DoctorID,
		DoctorName:  dto.DoctorName,
		Attachments: attachments,
		CreatedAt:   s.now(),
	}
	if err := s.repo.Create(record); err != nil {
		return nil, fmt.Errorf("save medical record: %w", err)
	}

	log.FromContext(ctx, s.logger).Info("Medical record created",
		"record_id", record.RecordID,
		"patient_id", record.PatientID,
		"record_type", record.RecordType,
	)
	return record, nil
}

// ListByPatient 患者病历，日期倒序
func (s *Service) ListByPatient(patientID string) []appointment.MedicalRecord {
	records := s.repo.FindByPatient(patientID)
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date > records[j].Date
	})
	return records
}

// Get 读取病历
func (s *Service) Get(recordID string) (*appointment.MedicalRecord, error) {
	return s.repo.Get(recordID)
}
