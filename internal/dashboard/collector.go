package dashboard

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/automated-attendance/internal/models"
)

// Source lists the records the dashboard counts.
type Source interface {
	ListStudents(ctx context.Context) ([]models.Account, error)
	ListInstructors(ctx context.Context) ([]models.Account, error)
	ListCourses(ctx context.Context) ([]models.Course, error)
}

// Collector builds the dashboard on the client from the three list endpoints.
// A list that fails to load counts as empty.
type Collector struct {
	source Source
	logger *zap.Logger
	now    func() time.Time
}

// NewCollector builds a collector.
func NewCollector(source Source, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{source: source, logger: logger, now: time.Now}
}

// Collect fetches students, instructors and courses in turn.
func (c *Collector) Collect(ctx context.Context) models.DashboardSummary {
	students, err := c.source.ListStudents(ctx)
	if err != nil {
		c.logger.Warn("dashboard: students unavailable", zap.Error(err))
		students = nil
	}
	instructors, err := c.source.ListInstructors(ctx)
	if err != nil {
		c.logger.Warn("dashboard: instructors unavailable", zap.Error(err))
		instructors = nil
	}
	courses, err := c.source.ListCourses(ctx)
	if err != nil {
		c.logger.Warn("dashboard: courses unavailable", zap.Error(err))
		courses = nil
	}
	return Summarize(students, instructors, courses, c.now())
}
