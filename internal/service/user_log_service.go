package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/automated-attendance/internal/models"
	appErrors "github.com/noah-isme/automated-attendance/pkg/errors"
	"github.com/noah-isme/automated-attendance/pkg/jobs"
)

const userLogJobType = "user_log"

type userLogRepository interface {
	Insert(ctx context.Context, entry *models.UserLog) error
}

// UserLogConfig tunes the background writer.
type UserLogConfig struct {
	Workers    int
	MaxRetries int
	RetryDelay time.Duration
}

// UserLogService records account events. With a repository the entries are
// written asynchronously through a job queue; without one they only reach
// the structured log.
type UserLogService struct {
	repo    userLogRepository
	queue   *jobs.Queue
	metrics *MetricsService
	logger  *zap.Logger
	now     func() time.Time
}

// NewUserLogService constructs the service. repo may be nil.
func NewUserLogService(repo userLogRepository, cfg UserLogConfig, metrics *MetricsService, logger *zap.Logger) *UserLogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &UserLogService{repo: repo, metrics: metrics, logger: logger, now: time.Now}
	if repo != nil {
		s.queue = jobs.NewQueue("user-logs", s.handle, jobs.QueueConfig{
			Workers:    cfg.Workers,
			MaxRetries: cfg.MaxRetries,
			RetryDelay: cfg.RetryDelay,
			Logger:     logger,
		})
	}
	return s
}

// Start launches the writer workers.
func (s *UserLogService) Start(ctx context.Context) {
	if s.queue != nil {
		s.queue.Start(ctx)
	}
}

// Stop flushes buffered entries and stops the workers.
func (s *UserLogService) Stop() {
	if s.queue != nil {
		s.queue.Stop()
	}
}

// Record validates the entry, stamps it and hands it to the writer.
func (s *UserLogService) Record(ctx context.Context, entry models.UserLog) error {
	if err := entry.Validate(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	now := s.now().UTC()
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = now
	}
	entry.CreatedAt = now

	s.logger.Info("user event",
		zap.String("action", string(entry.Action)),
		zap.String("role", string(entry.Role)),
		zap.Stringp("user_id", entry.UserID),
		zap.Stringp("attempted_id", entry.AttemptedID),
		zap.String("ip", entry.IPAddress),
	)

	if s.queue == nil {
		s.metrics.RecordUserLog(entry.Action, "logged")
		return nil
	}
	if err := s.queue.Enqueue(jobs.Job{Type: userLogJobType, Payload: entry}); err != nil {
		s.metrics.RecordUserLog(entry.Action, "dropped")
		s.logger.Warn("user log dropped", zap.String("id", entry.ID), zap.Error(err))
		return nil
	}
	return nil
}

func (s *UserLogService) handle(ctx context.Context, job jobs.Job) error {
	entry, ok := job.Payload.(models.UserLog)
	if !ok {
		return fmt.Errorf("unexpected payload %T", job.Payload)
	}
	start := time.Now()
	err := s.repo.Insert(ctx, &entry)
	s.metrics.ObserveDBQuery("user_logs_insert", time.Since(start))
	if err != nil {
		return err
	}
	s.metrics.RecordUserLog(entry.Action, "stored")
	return nil
}
