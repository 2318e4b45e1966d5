package summary

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/mediverse/backend/internal/domain/appointment"
	"github.com/mediverse/backend/internal/domain/triage"
	"github.com/mediverse/backend/internal/infrastructure/config"
	"github.com/mediverse/backend/internal/infrastructure/log"
)

// PrecomputeJob 定时为待就诊预约预生成摘要，写入 ai_summary
type PrecomputeJob struct {
	generator    *Generator
	appointments appointment.Repository
	sessions     triage.SessionRepository
	interval     time.Duration
	scheduler    gocron.Scheduler
	logger       *slog.Logger
}

// NewPrecomputeJob 创建预生成任务
func NewPrecomputeJob(
	generator *Generator,
	appointments appointment.Repository,
	sessions triage.SessionRepository,
	cfg *config.JobsConfig,
) (*PrecomputeJob, error) {
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	return &PrecomputeJob{
		generator:    generator,
		appointments: appointments,
		sessions:     sessions,
		interval:     cfg.SummaryInterval,
		scheduler:    scheduler,
		logger:       log.NewModuleLogger("summary", "precompute"),
	}, nil
}

// Start 注册并启动定时任务，间隔为 0 时不启动
func (j *PrecomputeJob) Start() error {
	if j.interval <= 0 {
		j.logger.Info("Summary precompute job disabled")
		return nil
	}
	_, err := j.scheduler.NewJob(
		gocron.DurationJob(j.interval),
		gocron.NewTask(func() {
			j.RunOnce(context.Background())
		}),
		gocron.WithName("summary_precompute"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to register precompute job: %w", err)
	}
	j.scheduler.Start()
	j.logger.Info("Summary precompute job started",
		"interval", j.interval,
	)
	return nil
}

// Stop 停止调度器
func (j *PrecomputeJob) Stop() error {
	return j.scheduler.Shutdown()
}

// RunOnce 处理一轮：status 为 scheduled 且没有 ai_summary 的预约
// 只写入模型生成的摘要，模板降级结果不落盘，留给下一轮重试
func (j *PrecomputeJob) RunOnce(ctx context.Context) int {
	filled := 0
	for _, apt := range j.appointments.FindAll() {
		if apt.Status != appointment.StatusScheduled || apt.HasSummary() {
			continue
		}
		if ctx.Err() != nil {
			break
		}

		req := RequestFor(&apt, j.loadSession(apt.TriageSessionID))
		s := j.generator.Generate(log.WithAppointmentID(ctx, apt.AppointmentID), req)
		if s.Source != SourceModel {
			continue
		}

		_, err := j.appointments.Update(apt.AppointmentID, func(a *appointment.Appointment) error {
			// 期间已被其他流程写入则保留原值
			if !a.HasSummary() {
				a.AISummary = s.Lines
			}
			return nil
		})
		if err != nil {
			j.logger.Warn("Failed to persist precomputed summary",
				"appointment_id", apt.AppointmentID,
				"error", err,
			)
			continue
		}
		filled++
	}

	if filled > 0 {
		j.logger.Info("Precomputed appointment summaries",
			"count", filled,
		)
	}
	return filled
}

func (j *PrecomputeJob) loadSession(sessionID string) *triage.Session {
	if sessionID == "" {
		return nil
	}
	session, err := j.sessions.Get(sessionID)
	if err != nil {
		return nil
	}
	return session
}

// RequestFor 由预约与关联的分诊会话构造摘要请求，会话可为空
func RequestFor(apt *appointment.Appointment, session *triage.Session) Request {
	req := Request{
		PatientID:   apt.PatientID,
		PatientName: apt.PatientName,
		Symptoms:    apt.Symptoms,
		PainRating:  apt.PainRating,
		DoctorName:  apt.DoctorName,
		Appointment: apt,
	}
	if session != nil {
		req.Conversation = session.Messages
		req.Duration = session.CollectedInfo.DurationText()
		if req.Symptoms == "" {
			req.Symptoms = session.CollectedInfo.IssueText()
		}
		if req.PainRating == "" {
			req.PainRating = session.CollectedInfo.PainRatingText()
		}
	}
	return req
}
