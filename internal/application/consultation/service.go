// Package consultation 问诊录音处理：转写、结构化抽取与保存
package consultation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/mediverse/backend/internal/domain/consultation"
	domainllm "github.com/mediverse/backend/internal/domain/llm"
	"github.com/mediverse/backend/internal/infrastructure/log"
	"github.com/mediverse/backend/internal/infrastructure/metrics"
)

// Service 问诊应用服务
type Service struct {
	repo        consultation.Repository
	transcriber domainllm.Transcriber
	llm         domainllm.TextGenerator
	metrics     *metrics.Metrics
	now         func() time.Time
	logger      *slog.Logger
}

// NewService 创建问诊服务
func NewService(
	repo consultation.Repository,
	transcriber domainllm.Transcriber,
	llm domainllm.TextGenerator,
	m *metrics.Metrics,
) *Service {
	return &Service{
		repo:        repo,
		transcriber: transcriber,
		llm:         llm,
		metrics:     m,
		now:         time.Now,
		logger:      log.NewModuleLogger("consultation", "service"),
	}
}

// ProcessRecording 转写录音并抽取结构化信息
// 转写失败得到空文本，抽取失败使用 DefaultAnalysis，均不返回错误
func (s *Service) ProcessRecording(ctx context.Context, filename string, audio io.Reader, dto *ProcessRecordingDTO) *ProcessRecordingResultDTO {
	transcript, err := s.transcriber.Transcribe(ctx, filename, audio)
	if err != nil {
		log.FromContext(ctx, s.logger).Warn("Transcription failed, continuing with empty transcript",
			"patient_id", dto.PatientID,
			"error", err,
		)
		s.metrics.RecordFallback("transcription", "not_responding")
		transcript = ""
	} else {
		log.FromContext(ctx, s.logger).Info("Transcription completed",
			"patient_id", dto.PatientID,
			"chars", len(transcript),
		)
	}

	analysis := s.Analyze(ctx, dto.PatientName, dto.ChiefComplaint, transcript)

	return &ProcessRecordingResultDTO{
		Success:        true,
		ConsultationID: consultation.NewID(s.now()),
		Transcript:     transcript,
		AIAnalysis:     analysis,
		Message:        "Recording processed successfully",
	}
}

// Analyze 从转写文本抽取问诊要点，失败时回退到确定性结果
func (s *Service) Analyze(ctx context.Context, patientName, chiefComplaint, transcript string) consultation.AIAnalysis {
	raw, err := s.llm.Complete(ctx, buildExtractionPrompt(patientName, chiefComplaint, transcript), domainllm.ModeJSON)
	if err == nil {
		var analysis consultation.AIAnalysis
		if uerr := json.Unmarshal([]byte(raw), &analysis); uerr != nil {
			err = fmt.Errorf("%w: %v", domainllm.ErrMalformedResponse, uerr)
		} else {
			return normalize(analysis)
		}
	}

	reason := "not_responding"
	if errors.Is(err, domainllm.ErrMalformedResponse) {
		reason = "malformed"
	}
	log.FromContext(ctx, s.logger).Warn("Analysis extraction failed, using default analysis",
		"error", err,
	)
	s.metrics.RecordFallback("consultation", reason)
	return consultation.DefaultAnalysis(patientName, chiefComplaint)
}

func normalize(a consultation.AIAnalysis) consultation.AIAnalysis {
	if a.Symptoms == nil {
		a.Symptoms = []string{}
	}
	if a.Prescriptions == nil {
		a.Prescriptions = []consultation.Medication{}
	}
	if strings.TrimSpace(a.Diagnosis) == "" {
		a.Diagnosis = "Pending evaluation"
	}
	return a
}

// Save 保存问诊记录，同 ID 整体替换
func (s *Service) Save(ctx context.Context, dto *SaveDTO) (*consultation.Consultation, error) {
	c := &consultation.Consultation{
		ConsultationID:   dto.ConsultationID,
		PatientID:        dto.PatientID,
		PatientName:      dto.PatientName,
		Date:             dto.Date,
		Duration:         dto.Duration,
		Symptoms:         dto.Symptoms,
		Diagnosis:        dto.Diagnosis,
		Notes:            dto.Notes,
		Medications:      dto.Medications,
		CallSummary:      dto.CallSummary,
		PrescriptionSent: dto.PrescriptionSent,
		CreatedAt:        s.now(),
	}
	if c.Symptoms == nil {
		c.Symptoms = []string{}
	}
	if c.Medications == nil {
		c.Medications = []consultation.Medication{}
	}
	c.ComputeKPIs()

	if err := s.repo.Upsert(c); err != nil {
		return nil, fmt.Errorf("save consultation: %w", err)
	}
	log.FromContext(ctx, s.logger).Info("Consultation saved",
		"consultation_id", c.ConsultationID,
		"patient_id", c.PatientID,
		"medications", c.KPIs.MedicationsPrescribed,
	)
	return c, nil
}

// Get 读取问诊记录
func (s *Service) Get(consultationID string) (*consultation.Consultation, error) {
	return s.repo.Get(consultationID)
}

// List 全部问诊记录，按创建时间倒序
func (s *Service) List() []consultation.Consultation {
	items := s.repo.FindAll()
	if items == nil {
		items = []consultation.Consultation{}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items
}
